package source

import (
	"fmt"
	"time"

	"github.com/kellnr/site-feed/changelog"
	"github.com/kellnr/site-feed/model"
)

// publishedLayouts are the accepted formats of BlogPost.published: RFC 3339,
// optionally without seconds or with a space instead of the T. Values without
// a zone are taken as UTC. Fractional seconds are accepted after any seconds field.
var publishedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ValidateChangelog checks v against the changelog schema and converts it to
// a typed document. Release dates are parsed once the whole structure is
// valid, so a bad date is reported with its path but never ahead of a
// structural error. file is only used in error messages.
func ValidateChangelog(v any, file string) (*model.ChangelogDocument, error) {
	w := walker{file: file}

	root, err := w.object(v, "changelog")
	if err != nil {
		return nil, err
	}
	items, err := w.array(root, "releases", "changelog.releases")
	if err != nil {
		return nil, err
	}

	doc := &model.ChangelogDocument{Releases: make([]model.Release, 0, len(items))}
	for i, item := range items {
		release, err := w.release(item, fmt.Sprintf("changelog.releases[%d]", i))
		if err != nil {
			return nil, err
		}
		doc.Releases = append(doc.Releases, release)
	}

	for i := range doc.Releases {
		r := &doc.Releases[i]
		if r.Published, err = changelog.ParseDate(r.Date); err != nil {
			return nil, &ValidationError{File: w.file, Path: fmt.Sprintf("changelog.releases[%d].date", i), Err: err}
		}
	}

	return doc, nil
}

// ValidateBlogPosts checks v against the blog posts schema and converts it to
// a typed document.
func ValidateBlogPosts(v any, file string) (*model.BlogPostsDocument, error) {
	w := walker{file: file}

	root, err := w.object(v, "blog")
	if err != nil {
		return nil, err
	}
	items, err := w.array(root, "posts", "blog.posts")
	if err != nil {
		return nil, err
	}

	doc := &model.BlogPostsDocument{Posts: make([]model.BlogPost, 0, len(items))}
	for i, item := range items {
		post, err := w.post(item, fmt.Sprintf("blog.posts[%d]", i))
		if err != nil {
			return nil, err
		}
		doc.Posts = append(doc.Posts, post)
	}

	return doc, nil
}

type walker struct {
	file string
}

func (w walker) release(v any, path string) (model.Release, error) {
	var r model.Release

	obj, err := w.object(v, path)
	if err != nil {
		return r, err
	}

	if r.Version, err = w.str(obj, "version", path); err != nil {
		return r, err
	}
	if err := r.Validate(); err != nil {
		return r, &ValidationError{File: w.file, Path: path + ".version", Err: err}
	}
	if r.Date, err = w.str(obj, "date", path); err != nil {
		return r, err
	}
	if r.IsLatest, err = w.optionalBool(obj, "isLatest", path); err != nil {
		return r, err
	}

	entries, err := w.array(obj, "entries", path+".entries")
	if err != nil {
		return r, err
	}
	r.Entries = make([]model.ChangeLogEntry, 0, len(entries))
	for j, item := range entries {
		e, err := w.entry(item, fmt.Sprintf("%s.entries[%d]", path, j))
		if err != nil {
			return r, err
		}
		r.Entries = append(r.Entries, e)
	}

	return r, nil
}

func (w walker) entry(v any, path string) (model.ChangeLogEntry, error) {
	var e model.ChangeLogEntry

	obj, err := w.object(v, path)
	if err != nil {
		return e, err
	}
	if e.Type, err = w.str(obj, "type", path); err != nil {
		return e, err
	}
	if e.Content, err = w.str(obj, "content", path); err != nil {
		return e, err
	}

	links, ok, err := w.optionalArray(obj, "links", path+".links")
	if err != nil || !ok {
		return e, err
	}
	e.Links = make([]model.Link, 0, len(links))
	for k, item := range links {
		lp := fmt.Sprintf("%s.links[%d]", path, k)
		lobj, err := w.object(item, lp)
		if err != nil {
			return e, err
		}
		var l model.Link
		if l.Label, err = w.str(lobj, "label", lp); err != nil {
			return e, err
		}
		if l.URL, err = w.str(lobj, "url", lp); err != nil {
			return e, err
		}
		e.Links = append(e.Links, l)
	}

	return e, nil
}

func (w walker) post(v any, path string) (model.BlogPost, error) {
	var p model.BlogPost

	obj, err := w.object(v, path)
	if err != nil {
		return p, err
	}
	if p.ID, err = w.str(obj, "id", path); err != nil {
		return p, err
	}
	if p.Title, err = w.str(obj, "title", path); err != nil {
		return p, err
	}
	if p.URL, err = w.str(obj, "url", path); err != nil {
		return p, err
	}
	published, err := w.str(obj, "published", path)
	if err != nil {
		return p, err
	}
	if p.SummaryHTML, err = w.str(obj, "summaryHtml", path); err != nil {
		return p, err
	}

	p.Published, err = parsePublished(published)
	if err != nil {
		return p, &ValidationError{
			File:     w.file,
			Path:     path + ".published",
			Expected: "RFC 3339 date-time",
			Actual:   fmt.Sprintf("%q", published),
		}
	}

	return p, nil
}

func parsePublished(s string) (time.Time, error) {
	var err error
	for _, layout := range publishedLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func (w walker) mismatch(path, expected string, v any, present bool) error {
	actual := "missing"
	if present {
		actual = TypeName(v)
	}
	return &ValidationError{File: w.file, Path: path, Expected: expected, Actual: actual}
}

func (w walker) object(v any, path string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, w.mismatch(path, "object", v, true)
	}
	return obj, nil
}

func (w walker) array(obj map[string]any, key, path string) ([]any, error) {
	v, present := obj[key]
	items, ok := v.([]any)
	if !ok {
		return nil, w.mismatch(path, "array", v, present)
	}
	return items, nil
}

func (w walker) optionalArray(obj map[string]any, key, path string) ([]any, bool, error) {
	v, present := obj[key]
	if !present {
		return nil, false, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false, w.mismatch(path, "array", v, true)
	}
	return items, true, nil
}

func (w walker) str(obj map[string]any, key, parent string) (string, error) {
	v, present := obj[key]
	s, ok := v.(string)
	if !ok {
		return "", w.mismatch(parent+"."+key, "string", v, present)
	}
	return s, nil
}

func (w walker) optionalBool(obj map[string]any, key, parent string) (bool, error) {
	v, present := obj[key]
	if !present {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, w.mismatch(parent+"."+key, "boolean", v, true)
	}
	return b, nil
}

// TypeName names a decoded JSON value the way JSON itself does.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
