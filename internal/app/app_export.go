package app

import (
	"fmt"
	"os"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"rorkforge/internal/export"
)

// ============================================================
// Exports
// ============================================================

// ExportTextSpec renders the text spec and keeps it on display.
func (a *App) ExportTextSpec() string {
	return a.studio.ExportText()
}

// ExportManifest renders the manifest JSON and keeps it on display.
func (a *App) ExportManifest() (string, error) {
	data, err := a.studio.ExportManifest()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CopyTextSpec exports the text spec and puts it on the clipboard.
func (a *App) CopyTextSpec() error {
	return wailsRuntime.ClipboardSetText(a.ctx, a.studio.ExportText())
}

// SaveManifest asks for a destination and writes the manifest there. An
// empty path means the dialog was cancelled.
func (a *App) SaveManifest() (string, error) {
	data, err := a.studio.ExportManifest()
	if err != nil {
		return "", err
	}
	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Save manifest",
		DefaultFilename: export.ManifestFilename,
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "JSON (*.json)", Pattern: "*.json"},
		},
	})
	if err != nil || path == "" {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}
