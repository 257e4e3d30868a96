package merge

import (
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/classify"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
)

// unionAchievements merges achievement lists across every source.
// Unlike rosters, honours are append-only history: two sources naming
// the same trophy must collapse to a single entry, compared after case
// and diacritic folding.
func unionAchievements(results map[model.SourceID]*model.RawFacts, out *Output, used map[model.SourceID]bool) model.Achievements {
	var worldCup, international, continental, domestic [][]string

	for _, id := range precedence {
		f := results[id]
		if !f.HasTeam() || f.Team.Achievements.Empty() {
			continue
		}
		a := f.Team.Achievements
		worldCup = append(worldCup, a.WorldCup)
		international = append(international, a.International)
		continental = append(continental, a.Continental)
		domestic = append(domestic, a.Domestic)
		used[id] = true
		if _, ok := out.FieldSources["achievements"]; !ok {
			out.FieldSources["achievements"] = string(id)
		}
	}

	return model.Achievements{
		WorldCup:      unionStrings(worldCup),
		International: unionStrings(international),
		Continental:   unionStrings(continental),
		Domestic:      unionStrings(domestic),
	}
}

// unionStrings concatenates lists in order, suppressing duplicates by
// folded comparison. The first spelling seen is the one kept.
func unionStrings(lists [][]string) []string {
	var merged []string
	seen := map[string]bool{}
	for _, list := range lists {
		for _, entry := range list {
			key := classify.Fold(entry)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, entry)
		}
	}
	return merged
}
