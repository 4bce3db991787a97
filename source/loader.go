// Package source loads and validates the JSON documents the feed is built from.
package source

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kellnr/site-feed/model"
)

// Paths relative to the project root.
var (
	ChangelogPath = filepath.Join("src", "data", "changelog.json")
	BlogPostsPath = filepath.Join("src", "data", "blog-posts.json")
)

// Raw is a decoded JSON file that may not exist. Present is false when the
// file was absent, in which case Value is nil.
type Raw struct {
	Path    string
	Value   any
	Present bool
}

// Load reads and decodes the JSON file at path. A missing file is not an
// error; it yields a Raw with Present set to false.
func Load(path string) (Raw, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Raw{Path: path}, nil
	}
	if err != nil {
		return Raw{}, &ReadError{Path: path, Err: err}
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Raw{}, &ParseError{Path: path, Err: err}
	}

	return Raw{Path: path, Value: v, Present: true}, nil
}

// LoadChangelog loads and validates the changelog below root. The changelog
// is required.
func LoadChangelog(root string) (*model.ChangelogDocument, error) {
	return ReadChangelog(filepath.Join(root, ChangelogPath))
}

// ReadChangelog loads and validates the changelog file at path.
func ReadChangelog(path string) (*model.ChangelogDocument, error) {
	raw, err := Load(path)
	if err != nil {
		return nil, err
	}
	if !raw.Present {
		return nil, &ReadError{Path: path, Err: fs.ErrNotExist}
	}
	return ValidateChangelog(raw.Value, path)
}

// LoadBlogPosts loads and validates the blog posts below root. A missing
// file yields an empty document so the feed can be built before the first post.
func LoadBlogPosts(root string) (*model.BlogPostsDocument, error) {
	raw, err := Load(filepath.Join(root, BlogPostsPath))
	if err != nil {
		return nil, err
	}
	if !raw.Present {
		return &model.BlogPostsDocument{}, nil
	}
	return ValidateBlogPosts(raw.Value, raw.Path)
}
