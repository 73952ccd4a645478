package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/stylus-cad/stylus/pkg/sketch"
	"github.com/stylus-cad/stylus/pkg/solid"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	sketch.SetLogger(logger)
	solid.SetLogger(logger)

	app := NewApp()

	err := wails.Run(&options.App{
		Title:  "Stylus",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logger.Error("wails run failed", "error", err)
		os.Exit(1)
	}
}
