package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"focustrack/internal/models"
)

// Generator renders productivity reports to disk and returns the stored
// file name.
type Generator interface {
	GenerateProductivityReport(username string, report *models.AnalyticsReport, generatedAt time.Time) (string, error)
}

type ReportGenerator struct {
	RootDir string // storage root, e.g. "./reports"
}

func NewReportGenerator(rootDir string) *ReportGenerator {
	return &ReportGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	return filepath.Join(g.RootDir, filepath.Base(filename)), nil
}

func (g *ReportGenerator) GenerateProductivityReport(username string, report *models.AnalyticsReport, generatedAt time.Time) (string, error) {
	filename := fmt.Sprintf("productivity_%s_%s.pdf", username, generatedAt.Format("2006-01-02"))
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Productivity Report", false)
	pdf.SetAuthor("FocusTrack", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "PRODUCTIVITY REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("%s  -  %s", username, generatedAt.Format("02 Jan 2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Overview")
	g.kvLine(pdf, "Total tasks", fmt.Sprintf("%d", report.TotalTasks))
	g.kvLine(pdf, "Completed tasks", fmt.Sprintf("%d", report.CompletedTasks))
	g.kvLine(pdf, "Time tracked", fmt.Sprintf("%.1f h", report.TotalTimeHours))
	g.kvLine(pdf, "Current streak", fmt.Sprintf("%d days", report.CurrentStreak))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Completed tasks by weekday")
	pdf.SetFont("Helvetica", "", 11)
	if len(report.ProductivityByDay) == 0 {
		pdf.MultiCell(0, 6, "No completed tasks yet.", "", "L", false)
	}
	for _, d := range report.ProductivityByDay {
		pdf.CellFormat(60, 6, d.DayName, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("%d", d.TasksCompleted), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Monthly activity")
	pdf.SetFont("Helvetica", "", 11)
	if len(report.MonthlyActivity) == 0 {
		pdf.MultiCell(0, 6, "No activity recorded yet.", "", "L", false)
	}
	for _, m := range report.MonthlyActivity {
		pdf.CellFormat(60, 6, m.Month, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("%d tasks", m.TasksCompleted), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Achievements")
	pdf.SetFont("Helvetica", "", 11)
	for _, a := range report.Achievements {
		mark := "[ ]"
		if a.Unlocked {
			mark = "[x]"
		}
		pdf.MultiCell(0, 6, fmt.Sprintf("%s %s  -  %s", mark, a.Name, a.Description), "", "L", false)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
