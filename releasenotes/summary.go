package releasenotes

import (
	"fmt"
	"strings"

	"github.com/kellnr/site-feed/model"
)

// summaryOrder is the section order of the Markdown summary.
var summaryOrder = []string{"Added", "Changed", "Deprecated", "Fixed", "Removed", "Security"}

// Summary renders a Markdown overview of release for the workflow log.
func Summary(p *Payload, release model.Release) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Release %s\n", release.Version)
	fmt.Fprintf(&b, "- Date: %s\n", release.Date)
	fmt.Fprintf(&b, "- Tag: `%s`\n", p.Tag)
	fmt.Fprintf(&b, "- Source: `%s`\n", p.SourceRepo)

	if len(release.Entries) == 0 {
		b.WriteString("\n_No categorized entries found in payload._\n")
		return b.String()
	}

	groups := make(map[string][]model.ChangeLogEntry)
	for _, e := range release.Entries {
		groups[e.Type] = append(groups[e.Type], e)
	}

	for _, t := range summaryOrder {
		entries := groups[t]
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n", t)
		for _, e := range entries {
			line := "- " + escapeMarkdown(e.Content)
			if len(e.Links) > 0 {
				line += fmt.Sprintf(" ([%s](%s))", escapeMarkdown(e.Links[0].Text()), e.Links[0].URL)
			}
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "`", "\\`")
}
