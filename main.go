package main

import "focustrack/internal/app"

func main() {
	app.Run()
}
