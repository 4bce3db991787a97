// Package model defines the core data structures for the kellnr.io feed generator.
package model

import (
	"errors"
	"time"
)

// ChangelogDocument is the root of src/data/changelog.json.
type ChangelogDocument struct {
	Releases []Release `json:"releases"`
}

// Release is one published version and the changes it introduced.
type Release struct {
	Version  string           `json:"version"`
	Date     string           `json:"date"`
	IsLatest bool             `json:"isLatest,omitempty"`
	Entries  []ChangeLogEntry `json:"entries"`

	// Published is the normalized release date. It is filled in during
	// validation and never read from JSON.
	Published time.Time `json:"-"`
}

// Validate checks if the release has required fields.
func (r *Release) Validate() error {
	if r.Version == "" {
		return errors.New("release version is required")
	}
	return nil
}

// ChangeLogEntry is a single line of a release, e.g. one fix.
type ChangeLogEntry struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Links   []Link `json:"links,omitempty"`
}

// Link is an anchor appended to a changelog entry.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Text returns the label, or the URL if the label is empty.
func (l Link) Text() string {
	if l.Label == "" {
		return l.URL
	}
	return l.Label
}

// BlogPostsDocument is the root of src/data/blog-posts.json.
type BlogPostsDocument struct {
	Posts []BlogPost `json:"posts"`
}

// BlogPost is a published article with a pre-rendered HTML summary.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Published   time.Time `json:"published"`
	SummaryHTML string    `json:"summaryHtml"`
}

// Kind tells which source a feed entry was built from.
type Kind string

const (
	KindRelease Kind = "release"
	KindBlog    Kind = "blog"
)

// FeedEntry is one syndicated item of the output feed.
type FeedEntry struct {
	Kind        Kind
	ID          string
	Title       string
	Link        string
	PublishedAt time.Time
	UpdatedAt   time.Time
	ContentHTML string
}
