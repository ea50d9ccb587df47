package achievements

import (
	"sort"
)

type Summary struct {
	TotalPoints    int                        `json:"totalPoints"`
	PossiblePoints int                        `json:"possiblePoints"`
	UnlockedCount  int                        `json:"unlockedCount"`
	TotalCount     int                        `json:"totalCount"`
	Progress       float64                    `json:"progress"`
	ByCategory     map[Category][]Achievement `json:"byCategory"`
	Recent         []Achievement              `json:"recent"`
}

// Summarize aggregates the joined achievement list. Recent holds at most
// recentLimit unlocked achievements, newest unlock first.
func Summarize(list []Achievement, recentLimit int) Summary {
	s := Summary{
		TotalCount: len(list),
		ByCategory: make(map[Category][]Achievement),
		Recent:     []Achievement{},
	}

	for _, a := range list {
		s.PossiblePoints += a.Points
		s.ByCategory[a.Category] = append(s.ByCategory[a.Category], a)
		if !a.Unlocked {
			continue
		}
		s.UnlockedCount++
		s.TotalPoints += a.Points
		s.Recent = append(s.Recent, a)
	}

	if s.TotalCount > 0 {
		s.Progress = float64(s.UnlockedCount) / float64(s.TotalCount)
	}

	sort.SliceStable(s.Recent, func(i, j int) bool {
		return unlockedAt(s.Recent[i]) > unlockedAt(s.Recent[j])
	})
	if recentLimit >= 0 && len(s.Recent) > recentLimit {
		s.Recent = s.Recent[:recentLimit]
	}

	return s
}

func unlockedAt(a Achievement) int64 {
	if a.UnlockedAt == nil {
		return 0
	}
	return a.UnlockedAt.UnixNano()
}
