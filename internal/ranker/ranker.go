// Package ranker reduces the collector's output to the bounded working
// set the generator consumes.
package ranker

import (
	"sort"
	"strings"

	"iactu/internal/metrics"
	"iactu/internal/model"
)

// Deduplicate drops candidates whose normalized title was already
// seen. First occurrence wins, so cross-source duplicates collapse to
// whichever source was processed first.
func Deduplicate(candidates []model.Candidate) []model.Candidate {
	seen := map[string]struct{}{}
	unique := make([]model.Candidate, 0, len(candidates))

	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c.Title))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}

	metrics.Global.AddDuplicatesFiltered(int64(len(candidates) - len(unique)))
	return unique
}

// SelectBest orders the deduplicated candidates by recency, then moves
// every image-bearing candidate ahead of every image-less one while
// preserving relative order inside each group, and truncates to count.
// An older story with an image deliberately outranks a newer one
// without.
func SelectBest(candidates []model.Candidate, count int) []model.Candidate {
	unique := Deduplicate(candidates)

	sorted := make([]model.Candidate, len(unique))
	copy(sorted, unique)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	withImages := make([]model.Candidate, 0, len(sorted))
	withoutImages := make([]model.Candidate, 0, len(sorted))
	for _, c := range sorted {
		if c.HasImage() {
			withImages = append(withImages, c)
		} else {
			withoutImages = append(withoutImages, c)
		}
	}

	best := append(withImages, withoutImages...)
	if count < 0 {
		count = 0
	}
	if len(best) > count {
		best = best[:count]
	}
	return best
}
