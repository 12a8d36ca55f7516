package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rorkforge/internal/config"
	"rorkforge/internal/export"
)

// PrintTextSpec writes the text spec of the configured document to w.
func PrintTextSpec(ctx context.Context, cfg config.Config, w io.Writer) error {
	a := New(cfg)
	if err := a.Open(ctx); err != nil {
		return err
	}
	defer a.Close()

	_, err := fmt.Fprintln(w, a.session.TextSpec())
	return err
}

// WriteManifest renders the manifest of the configured document. With an
// empty out it goes to w; otherwise it is written to out, or to
// export.ManifestFilename inside out when out is a directory.
func WriteManifest(ctx context.Context, cfg config.Config, out string, w io.Writer) error {
	a := New(cfg)
	if err := a.Open(ctx); err != nil {
		return err
	}
	defer a.Close()

	data, err := a.session.ManifestJSON()
	if err != nil {
		return err
	}
	if out == "" {
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, export.ManifestFilename)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	fmt.Fprintf(w, "wrote %s\n", out)
	return nil
}
