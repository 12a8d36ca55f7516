package app

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"rorkforge/internal/export"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.Name}} · RorkForge</title></head>
<body>
<h1>{{.Name}}</h1>
<p><a href="/{{.Manifest}}">Download manifest</a> · <a href="/spec.txt">Text spec</a> · <a href="/state">State</a></p>
<pre>{{.Spec}}</pre>
</body>
</html>
`))

// Handler serves the desktop window: an index page, the current exports
// and the surface state.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", a.serveIndex)
	mux.HandleFunc("GET /"+export.ManifestFilename, a.serveManifest)
	mux.HandleFunc("GET /spec.txt", a.serveTextSpec)
	mux.HandleFunc("GET /state", a.serveState)
	return mux
}

func (a *App) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTmpl.Execute(w, map[string]string{
		"Name":     a.session.Document().Meta.Name,
		"Manifest": export.ManifestFilename,
		"Spec":     a.studio.ExportText(),
	})
	if err != nil {
		log.Printf("[assets] render index: %v", err)
	}
}

func (a *App) serveManifest(w http.ResponseWriter, r *http.Request) {
	data, err := a.studio.ExportManifest()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.ManifestFilename+`"`)
	w.Write(data)
}

func (a *App) serveTextSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(a.studio.ExportText()))
}

func (a *App) serveState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.State()); err != nil {
		log.Printf("[assets] encode state: %v", err)
	}
}
