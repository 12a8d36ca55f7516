package export

import (
	"fmt"
	"strings"

	"rorkforge/internal/domain"
)

const untitled = "Untitled"

// TextSpec renders the document as a human-readable outline:
//
//	App: "Demo App"
//	Theme: dark
//	Pages:
//	- / (Home)
//	  • Hero("Welcome")
//	  • List
//
// Lines are joined with a single newline and there is no trailing newline.
func TextSpec(doc domain.StudioDocument) string {
	lines := make([]string, 0, 3+len(doc.Pages))
	lines = append(lines,
		`App: "`+doc.Meta.Name+`"`,
		"Theme: "+string(doc.Meta.Theme),
		"Pages:",
	)
	for _, p := range doc.Pages {
		lines = append(lines, fmt.Sprintf("- %s (%s)", p.Path, p.TitleOr(untitled)))
		for _, n := range p.Tree {
			lines = append(lines, nodeLine(n))
		}
	}
	return strings.Join(lines, "\n")
}

func nodeLine(n domain.Node) string {
	title, ok := n.DisplayTitle()
	if !ok {
		return "  • " + string(n.Type)
	}
	return "  • " + string(n.Type) + `("` + title + `")`
}

// TextSpec is the method form of the package-level TextSpec, so hosts can
// hold a single *Exporter for both artifacts.
func (e *Exporter) TextSpec(doc domain.StudioDocument) string {
	return TextSpec(doc)
}
