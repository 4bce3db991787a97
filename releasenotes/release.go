package releasenotes

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/kellnr/site-feed/changelog"
	"github.com/kellnr/site-feed/model"
	"github.com/kellnr/site-feed/source"
)

// trailingRef matches a trailing issue reference like " #123" or "(#123)".
var trailingRef = regexp.MustCompile(`(?:\s|\()#(\d+)\)?\s*$`)

// Release builds the changelog release described by the payload. Its date
// is the payload's calendar day in the payload's own zone.
func (p *Payload) Release() (model.Release, error) {
	r := model.Release{
		Version: p.Version,
		Date:    changelog.FormatDate(p.Date),
		Entries: []model.ChangeLogEntry{},
	}

	published, err := changelog.ParseDate(r.Date)
	if err != nil {
		return model.Release{}, &source.ValidationError{Path: "payload.date", Err: err}
	}
	r.Published = published

	for _, section := range sectionOrder {
		entryType := section
		if section == "Other" {
			entryType = changelog.DefaultType
		}
		for _, line := range p.Sections[section] {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			r.Entries = append(r.Entries, p.entry(entryType, line))
		}
	}

	return r, nil
}

// entry moves a trailing issue reference out of the text into a link to
// the source repository.
func (p *Payload) entry(entryType, text string) model.ChangeLogEntry {
	e := model.ChangeLogEntry{Type: entryType, Content: text}

	m := trailingRef.FindStringSubmatch(text)
	if m == nil {
		return e
	}

	num := m[1]
	e.Links = []model.Link{{
		Label: "#" + num,
		URL:   fmt.Sprintf("https://github.com/%s/issues/%s", p.SourceRepo, num),
	}}
	e.Content = strings.TrimRightFunc(trailingRef.ReplaceAllString(text, ""), unicode.IsSpace)

	return e
}

