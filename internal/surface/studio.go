package surface

import (
	"regexp"
	"strings"
	"sync"

	"rorkforge/internal/domain"
	"rorkforge/internal/events"
	"rorkforge/internal/export"
)

// DocumentSource returns the current document snapshot.
type DocumentSource func() domain.StudioDocument

// Studio is the editing surface's publisher side: it runs the exports on
// the current snapshot, keeps the last results on display, and hands the
// design to the preview through the bus.
type Studio struct {
	source      DocumentSource
	exporter    *export.Exporter
	bus         *events.Bus
	previewBase string

	mu           sync.Mutex
	lastText     string
	lastManifest []byte
}

func NewStudio(source DocumentSource, exporter *export.Exporter, bus *events.Bus, previewBase string) *Studio {
	return &Studio{
		source:      source,
		exporter:    exporter,
		bus:         bus,
		previewBase: previewBase,
	}
}

// ExportText renders the text spec of the current snapshot and keeps it as
// the displayed result.
func (s *Studio) ExportText() string {
	text := s.exporter.TextSpec(s.source())
	s.mu.Lock()
	s.lastText = text
	s.mu.Unlock()
	return text
}

// ExportManifest renders the manifest JSON of the current snapshot. On
// error the previously displayed manifest is kept.
func (s *Studio) ExportManifest() ([]byte, error) {
	data, err := s.exporter.ManifestJSON(s.source())
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.lastManifest = data
	s.mu.Unlock()
	return data, nil
}

// LastText returns the most recent text export, empty before the first.
func (s *Studio) LastText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastText
}

// LastManifest returns the most recent manifest export, nil before the first.
func (s *Studio) LastManifest() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastManifest
}

// PreviewURL derives the staging address for doc from its name, escaped
// as a single URL component.
func (s *Studio) PreviewURL(doc domain.StudioDocument) string {
	return s.previewBase + EscapeComponent(Slug(doc.Meta.Name))
}

// OpenInPreview publishes the staging address of the current snapshot and
// then asks the shell to show the preview section. It returns the address.
func (s *Studio) OpenInPreview() string {
	target := s.PreviewURL(s.source())
	s.bus.TriggerApply(target)
	s.bus.TriggerNavigate(events.PagePreview)
	return target
}

// whitespace matches the characters JavaScript's \s does, including the
// Unicode space separators.
var whitespace = regexp.MustCompile(`[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}]+`)

// Slug lowercases name and replaces every whitespace run with a dash.
func Slug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), "-")
}

// EscapeComponent percent-encodes s as a single URL component. Letters,
// digits and -_.!~*'() stay as they are; every other byte of the UTF-8
// encoding becomes %XX.
func EscapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
