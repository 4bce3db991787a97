package releasenotes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/Masterminds/semver/v3"

	"github.com/kellnr/site-feed/model"
)

// Apply merges release into doc and reports whether doc changed.
//
// A version not yet in the changelog is inserted at the top and becomes the
// only latest release. An existing version is replaced in place and keeps
// its latest marker.
func Apply(doc *model.ChangelogDocument, release model.Release) bool {
	i := findRelease(doc.Releases, release.Version)
	if i < 0 {
		for j := range doc.Releases {
			doc.Releases[j].IsLatest = false
		}
		release.IsLatest = true
		doc.Releases = slices.Insert(doc.Releases, 0, release)
		return true
	}

	prev := doc.Releases[i]
	if prev.IsLatest {
		release.IsLatest = true
	}
	if sameRelease(prev, release) {
		return false
	}
	doc.Releases[i] = release
	return true
}

// findRelease matches versions by string first and by semantic version
// second, so "v1.2.0" finds "1.2.0".
func findRelease(releases []model.Release, version string) int {
	if i := slices.IndexFunc(releases, func(r model.Release) bool { return r.Version == version }); i >= 0 {
		return i
	}
	want, err := semver.NewVersion(version)
	if err != nil {
		return -1
	}
	return slices.IndexFunc(releases, func(r model.Release) bool {
		v, err := semver.NewVersion(r.Version)
		return err == nil && v.Equal(want)
	})
}

func sameRelease(a, b model.Release) bool {
	return a.Version == b.Version &&
		a.Date == b.Date &&
		a.IsLatest == b.IsLatest &&
		slices.EqualFunc(a.Entries, b.Entries, sameEntry)
}

func sameEntry(a, b model.ChangeLogEntry) bool {
	return a.Type == b.Type && a.Content == b.Content && slices.Equal(a.Links, b.Links)
}

// MarshalChangelog encodes doc the way changelog.json is kept in the
// repository: two-space indent, HTML left unescaped, trailing newline.
func MarshalChangelog(doc *model.ChangelogDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteChangelog replaces the changelog at path with doc.
func WriteChangelog(path string, doc *model.ChangelogDocument) error {
	data, err := MarshalChangelog(doc)
	if err != nil {
		return fmt.Errorf("failed to encode changelog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
