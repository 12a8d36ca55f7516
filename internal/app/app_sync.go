package app

import (
	"rorkforge/internal/events"
)

// ============================================================
// Sync: staging, navigation and shell state
// ============================================================

func (a *App) ApplyStaging(url string) {
	a.session.ApplyStaging(a.ctx, url)
}

func (a *App) Navigate(page string) (events.PageKey, error) {
	return a.session.Navigate(a.ctx, page)
}

// OpenInPreview stages the current design and switches to the preview.
func (a *App) OpenInPreview() string {
	return a.studio.OpenInPreview()
}

func (a *App) OpenReadme()  { a.shell.OpenReadme() }
func (a *App) CloseReadme() { a.shell.CloseReadme() }

func (a *App) State() StateView {
	return StateView{
		Shell:   a.shell.State(),
		Preview: a.preview.State(),
		Dirty:   a.session.Dirty(),
	}
}
