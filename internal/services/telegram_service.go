package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// TelegramService pushes notifications through the Bot API. All methods are
// nil-safe so the integration can be left unconfigured.
type TelegramService struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewTelegramService(botToken string) *TelegramService {
	return &TelegramService{
		token:   botToken,
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", botToken),
		client:  &http.Client{},
	}
}

type tgResp struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (t *TelegramService) SendMessage(chatID int64, text string) error {
	if t == nil || t.token == "" || chatID == 0 {
		return nil
	}
	body := map[string]any{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", t.baseURL+"/sendMessage", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		log.Printf("[tg][send][err] http: %v", err)
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var r tgResp
	if err := json.Unmarshal(raw, &r); err != nil {
		log.Printf("[tg][send][err] decode: %v body=%s", err, raw)
		return err
	}
	if !r.Ok {
		log.Printf("[tg][send][err] api: %s", r.Description)
		return fmt.Errorf("telegram: %s", r.Description)
	}
	return nil
}
