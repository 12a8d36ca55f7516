package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	rorkApp "rorkforge/internal/app"
	"rorkforge/internal/config"
)

const usage = `usage: rorkforge [command]

commands:
  desktop          open the studio window (default)
  text             print the text spec of the document
  manifest [out]   print the manifest, or write it to out
  mcp              serve MCP tools on stdin/stdout
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cmd := "desktop"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	switch cmd {
	case "desktop":
		runDesktop(cfg)
	case "text":
		if err := rorkApp.PrintTextSpec(ctx, cfg, os.Stdout); err != nil {
			log.Fatalf("text: %v", err)
		}
	case "manifest":
		out := ""
		if len(os.Args) > 2 {
			out = os.Args[2]
		}
		if err := rorkApp.WriteManifest(ctx, cfg, out, os.Stdout); err != nil {
			log.Fatalf("manifest: %v", err)
		}
	case "mcp":
		rorkApp.ServeMCP(cfg)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runDesktop(cfg config.Config) {
	app := rorkApp.New(cfg)

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	err := wails.Run(&options.App{
		Title:     "RorkForge",
		Width:     1440,
		Height:    900,
		MinWidth:  800,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Handler: app.Handler(),
		},
		BackgroundColour: &options.RGBA{R: 15, G: 15, B: 20, A: 1},
		Menu:             appMenu,
		OnStartup:        app.Startup,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				FullSizeContent:            true,
			},
			About: &mac.AboutInfo{
				Title:   "RorkForge",
				Message: "Design an app, export its spec and manifest, preview the build",
			},
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
