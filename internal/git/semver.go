package git

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// SortTagsBySemver orders tags newest version first. Tags that are not
// semantic versions keep their relative order and follow the versioned ones.
func SortTagsBySemver(tags []string) []string {
	type versioned struct {
		name    string
		version *semver.Version
	}

	withVersion := make([]versioned, 0, len(tags))
	var rest []string
	for _, t := range tags {
		v, err := semver.NewVersion(t)
		if err != nil {
			rest = append(rest, t)
			continue
		}
		withVersion = append(withVersion, versioned{name: t, version: v})
	}

	sort.SliceStable(withVersion, func(i, j int) bool {
		return withVersion[i].version.GreaterThan(withVersion[j].version)
	})

	sorted := make([]string, 0, len(tags))
	for _, v := range withVersion {
		sorted = append(sorted, v.name)
	}
	return append(sorted, rest...)
}
