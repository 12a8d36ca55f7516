// Package export derives the two machine-readable artifacts of a studio
// document: a line-oriented text spec and a structured manifest.
//
// Every function here is pure. The document is taken by value and never
// modified, and calling an exporter twice on the same snapshot yields
// byte-identical output.
package export

// ManifestFilename is the name the manifest is offered under for download.
const ManifestFilename = "rorkforge.manifest.json"

// Options holds the static metadata attached to every manifest. None of it
// is derived from the document.
type Options struct {
	Ext       string
	Deps      []string
	Framework string
	Style     string
}

func DefaultOptions() Options {
	return Options{
		Ext:       "tsx",
		Deps:      []string{"tailwindcss"},
		Framework: "nextjs",
		Style:     "tailwind",
	}
}

// Exporter binds a set of Options to the export functions.
type Exporter struct {
	opts Options
}

// New creates an Exporter. Zero-valued fields of opts fall back to the
// defaults.
func New(opts Options) *Exporter {
	def := DefaultOptions()
	if opts.Ext == "" {
		opts.Ext = def.Ext
	}
	if opts.Deps == nil {
		opts.Deps = def.Deps
	}
	if opts.Framework == "" {
		opts.Framework = def.Framework
	}
	if opts.Style == "" {
		opts.Style = def.Style
	}
	opts.Deps = append([]string(nil), opts.Deps...)
	return &Exporter{opts: opts}
}

// Options returns a copy of the exporter's options.
func (e *Exporter) Options() Options {
	out := e.opts
	out.Deps = append([]string(nil), e.opts.Deps...)
	return out
}
