// Package atom renders feed entries as an Atom 1.0 document and writes it to disk.
package atom

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/kellnr/site-feed/changelog"
	"github.com/kellnr/site-feed/feed"
	"github.com/kellnr/site-feed/model"
)

const (
	atomNS  = "http://www.w3.org/2005/Atom"
	mediaNS = "http://search.yahoo.com/mrss/"
)

// Feed represents the root Atom structure.
type Feed struct {
	XMLName    xml.Name `xml:"feed"`
	Xmlns      string   `xml:"xmlns,attr"`
	XmlnsMedia string   `xml:"xmlns:media,attr"`
	ID         string   `xml:"id"`
	Title      string   `xml:"title"`
	Subtitle   string   `xml:"subtitle,omitempty"`
	Updated    string   `xml:"updated"`
	Links      []Link   `xml:"link"`
	Icon       string   `xml:"icon,omitempty"`
	Logo       string   `xml:"logo,omitempty"`
	Entries    []Entry  `xml:"entry"`
}

// Link is an Atom link element.
type Link struct {
	Rel  string `xml:"rel,attr,omitempty"`
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr,omitempty"`
}

// Entry is an item within a Feed.
type Entry struct {
	ID        string  `xml:"id"`
	Title     string  `xml:"title"`
	Link      Link    `xml:"link"`
	Published string  `xml:"published"`
	Updated   string  `xml:"updated"`
	Content   Content `xml:"content"`
}

// Content carries HTML in a CDATA section. The encoder splits any "]]>"
// in Body so the section cannot end early.
type Content struct {
	Type string `xml:"type,attr"`
	Body string `xml:",cdata"`
}

// Build assembles the document for entries, which must already be ordered
// newest first. The feed is dated by its first entry, or by now when empty.
func Build(cfg feed.Config, entries []model.FeedEntry, now time.Time) Feed {
	updated := now
	if len(entries) > 0 {
		updated = entries[0].PublishedAt
	}

	doc := Feed{
		Xmlns:      atomNS,
		XmlnsMedia: mediaNS,
		ID:         cfg.ID,
		Title:      cfg.Title,
		Subtitle:   cfg.Subtitle,
		Updated:    changelog.FormatTimestamp(updated),
		Links: []Link{
			{Rel: "self", Href: cfg.SelfURL, Type: "application/atom+xml"},
			{Rel: "alternate", Href: cfg.AlternateURL, Type: "text/html"},
		},
		Icon:    cfg.Icon,
		Logo:    cfg.Logo,
		Entries: make([]Entry, 0, len(entries)),
	}

	for _, e := range entries {
		doc.Entries = append(doc.Entries, Entry{
			ID:        e.ID,
			Title:     e.Title,
			Link:      Link{Href: e.Link},
			Published: changelog.FormatTimestamp(e.PublishedAt),
			Updated:   changelog.FormatTimestamp(e.UpdatedAt),
			Content:   Content{Type: "html", Body: e.ContentHTML},
		})
	}

	return doc
}

// Generate writes the Atom document for entries to w.
func Generate(w io.Writer, cfg feed.Config, entries []model.FeedEntry, now time.Time) error {
	doc := Build(cfg, entries, now)

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}

	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write final newline: %w", err)
	}

	return nil
}

// Marshal returns the Atom document for entries.
func Marshal(cfg feed.Config, entries []model.FeedEntry, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := Generate(&buf, cfg, entries, now); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
