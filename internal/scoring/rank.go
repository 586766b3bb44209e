package scoring

import (
	"sort"

	"github.com/ewint814/ESPN-fantasy-football-live-standings/internal/models"
)

const topCohortSize = 6

// Rank assigns both rankings to every team and returns the list in canonical
// order (live score descending). Stable sorts keep input order on ties, so
// ranks are always a dense 1..N permutation.
func Rank(teams []models.TeamScore) []models.TeamScore {
	ranked := make([]models.TeamScore, len(teams))
	copy(ranked, teams)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LiveScore > ranked[j].LiveScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].IsCurrentTop6 = i < topCohortSize
	}

	order := make([]int, len(ranked))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ranked[order[a]].ProjectedScore > ranked[order[b]].ProjectedScore
	})
	for pos, idx := range order {
		ranked[idx].ProjectedRank = pos + 1
		ranked[idx].IsProjectedTop6 = pos < topCohortSize
	}

	return ranked
}
