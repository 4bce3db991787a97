package feed

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kellnr/site-feed/changelog"
	"github.com/kellnr/site-feed/model"
)

// Builder converts source records to feed entries.
type Builder struct {
	cfg      Config
	renderer *changelog.Renderer
}

// NewBuilder creates a Builder for the given feed identity.
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		cfg:      cfg,
		renderer: changelog.NewRenderer(cfg.Product, cfg.ProductDescription),
	}
}

// Releases returns one entry per release. All of them link to the changelog
// page; the id carries the version as fragment.
func (b *Builder) Releases(releases []model.Release) []model.FeedEntry {
	entries := make([]model.FeedEntry, 0, len(releases))
	for i := range releases {
		r := &releases[i]
		entries = append(entries, model.FeedEntry{
			Kind:        model.KindRelease,
			ID:          fmt.Sprintf("%s#%s", b.cfg.ChangelogURL, r.Version),
			Title:       fmt.Sprintf("%s %s release", b.cfg.Product, r.Version),
			Link:        b.cfg.ChangelogURL,
			PublishedAt: r.Published,
			UpdatedAt:   r.Published,
			ContentHTML: b.renderer.Render(r),
		})
	}
	return entries
}

// Posts returns one entry per blog post. The canonical URL is the id, which
// keeps it unique across the feed.
func (b *Builder) Posts(posts []model.BlogPost) []model.FeedEntry {
	entries := make([]model.FeedEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, model.FeedEntry{
			Kind:        model.KindBlog,
			ID:          p.URL,
			Title:       p.Title,
			Link:        p.URL,
			PublishedAt: p.Published,
			UpdatedAt:   p.Published,
			ContentHTML: p.SummaryHTML,
		})
	}
	return entries
}

// Merge concatenates the entry sets and orders them newest first. Entries
// with the same or an unset publication time are ordered by descending id.
func Merge(sets ...[]model.FeedEntry) []model.FeedEntry {
	var all []model.FeedEntry
	for _, set := range sets {
		all = append(all, set...)
	}
	slices.SortStableFunc(all, compareDesc)
	return all
}

func compareDesc(a, b model.FeedEntry) int {
	if !a.PublishedAt.IsZero() && !b.PublishedAt.IsZero() {
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
	}
	return strings.Compare(b.ID, a.ID)
}
