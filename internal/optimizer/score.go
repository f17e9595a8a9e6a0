package optimizer

import (
	"sort"
	"strings"

	"github.com/guttosm/budget-service/internal/domain/model"
)

const keySeparator = "\x1f"

// Score rates a combination by variety: unique/total*100 + unique*10.
func Score(picks []model.MenuItem) float64 {
	if len(picks) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(picks))
	for _, p := range picks {
		unique[p.ID] = struct{}{}
	}
	u := float64(len(unique))
	return u/float64(len(picks))*100 + u*10
}

// DedupKey identifies the multiset of item IDs, independent of order.
func DedupKey(picks []model.MenuItem) string {
	ids := make([]string, len(picks))
	for i, p := range picks {
		ids[i] = p.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, keySeparator)
}

type scoredHit struct {
	picks []model.MenuItem
	score float64
}

// rank orders hits by score, keeps the first hit of every multiset and
// formats at most maxResults of them. Equal scores keep discovery order.
func rank(hits [][]model.MenuItem, maxResults int, labeler Labeler) []model.Combination {
	scored := make([]scoredHit, len(hits))
	for i, h := range hits {
		scored[i] = scoredHit{picks: h, score: Score(h)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	results := make([]model.Combination, 0, min(maxResults, len(scored)))
	seen := make(map[string]struct{}, len(scored))
	for _, h := range scored {
		if len(results) >= maxResults {
			break
		}
		key := DedupKey(h.picks)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		results = append(results, Format(h.picks, labeler))
	}
	return results
}
