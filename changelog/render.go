package changelog

import (
	"fmt"
	"strings"

	"github.com/kellnr/site-feed/model"
)

// DefaultType is used for entries that have no type.
const DefaultType = "Changed"

// typeOrder is the display order of the Keep a Changelog types. Unknown
// types follow in the order they first appear.
var typeOrder = []string{
	"Added",
	"Changed",
	"Deprecated",
	"Fixed",
	"Removed",
	"Security",
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML replaces the five reserved XML characters with their entities.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// Renderer builds the HTML body of release feed entries.
type Renderer struct {
	product     string
	description string
}

// NewRenderer creates a Renderer for the named product, e.g. "Kellnr" and
// "the private Rust registry".
func NewRenderer(product, description string) *Renderer {
	return &Renderer{
		product:     product,
		description: description,
	}
}

// Render returns the HTML fragment for a release. Entry content is trusted
// changelog markup and is not escaped; link labels and URLs are.
func (r *Renderer) Render(release *model.Release) string {
	lines := []string{r.headline(release.Version)}

	types, groups := groupByType(release.Entries)
	for _, t := range types {
		items := groups[t]
		if len(items) == 0 {
			continue
		}

		lines = append(lines,
			"<br/>",
			fmt.Sprintf("<strong>%s:</strong>", EscapeXML(t)),
			"<ul>",
		)
		for _, entry := range items {
			lines = append(lines, fmt.Sprintf("<li>%s%s</li>", entry.Content, renderLinks(entry.Links)))
		}
		lines = append(lines, "</ul>")
	}

	return strings.Join(lines, "\n")
}

func (r *Renderer) headline(version string) string {
	if r.description == "" {
		return fmt.Sprintf("Version %s of %s is released.", EscapeXML(version), EscapeXML(r.product))
	}
	return fmt.Sprintf("Version %s of %s, %s, is released.", EscapeXML(version), EscapeXML(r.product), EscapeXML(r.description))
}

// groupByType buckets entries by type and returns the types in display order.
func groupByType(entries []model.ChangeLogEntry) ([]string, map[string][]model.ChangeLogEntry) {
	groups := make(map[string][]model.ChangeLogEntry)
	var seen []string

	for _, e := range entries {
		t := e.Type
		if t == "" {
			t = DefaultType
		}
		if _, ok := groups[t]; !ok {
			seen = append(seen, t)
		}
		groups[t] = append(groups[t], e)
	}

	var types []string
	for _, t := range typeOrder {
		if _, ok := groups[t]; ok {
			types = append(types, t)
		}
	}
	for _, t := range seen {
		if !isKnownType(t) {
			types = append(types, t)
		}
	}

	return types, groups
}

func isKnownType(t string) bool {
	for _, known := range typeOrder {
		if known == t {
			return true
		}
	}
	return false
}

func renderLinks(links []model.Link) string {
	var b strings.Builder
	for _, l := range links {
		fmt.Fprintf(&b, ` <a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, EscapeXML(l.URL), EscapeXML(l.Text()))
	}
	return b.String()
}
