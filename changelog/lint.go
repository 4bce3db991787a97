package changelog

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/kellnr/site-feed/model"
)

// Lint reports release metadata problems that do not break the feed but
// usually mean the changelog was edited by mistake.
func Lint(releases []model.Release) []string {
	var warnings []string

	seen := make(map[string]int)
	var latest []int
	var highest *semver.Version
	highestIdx := -1

	for i, r := range releases {
		if prev, ok := seen[r.Version]; ok {
			warnings = append(warnings, fmt.Sprintf("changelog.releases[%d]: version %q duplicates changelog.releases[%d], feed entry ids will collide", i, r.Version, prev))
		} else {
			seen[r.Version] = i
		}

		if r.IsLatest {
			latest = append(latest, i)
		}

		v, err := semver.NewVersion(r.Version)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("changelog.releases[%d]: version %q is not a semantic version", i, r.Version))
			continue
		}
		if highest == nil || v.GreaterThan(highest) {
			highest = v
			highestIdx = i
		}
	}

	switch {
	case len(latest) > 1:
		warnings = append(warnings, fmt.Sprintf("%d releases are flagged isLatest, expected at most one", len(latest)))
	case len(latest) == 1 && highestIdx >= 0 && latest[0] != highestIdx:
		i := latest[0]
		v, err := semver.NewVersion(releases[i].Version)
		if err == nil && v.LessThan(highest) {
			warnings = append(warnings, fmt.Sprintf("changelog.releases[%d]: version %q is flagged isLatest but %q is higher", i, releases[i].Version, highest.Original()))
		}
	}

	return warnings
}
