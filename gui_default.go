//go:build !console

package main

import (
	"fmt"
	"os"

	webview "github.com/webview/webview_go"
)

// runEmbeddedUI starts the web server and shows it in an embedded browser window
func runEmbeddedUI(config *Config) error {
	logger := NewLogger(config.LogLevel, false, os.Stderr)
	app := NewApp(config, nil, logger)
	defer app.Close()

	ws := NewWebServer(app, "localhost:0")
	url, cleanup, err := ws.StartForEmbedded()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer cleanup()

	// false = no debug mode
	w := webview.New(false)
	defer w.Destroy()

	w.SetTitle("WealthLens")
	w.SetSize(1200, 800, webview.HintNone)
	w.Navigate(url)

	// Run blocks until window is closed
	w.Run()

	return nil
}
