// Package merge reconciles the outputs of several source adapters into
// a single record under a fixed field-level precedence order.
package merge

import (
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
)

// precedence is the fixed, total source order. Earlier wins when it
// supplies a non-empty value. The static table sits above the
// community database but is consulted only for immutable facts, and
// never for rosters.
var precedence = []model.SourceID{
	model.SourceSportsAPI,
	model.SourceEncyclopedia,
	model.SourceGenerative,
	model.SourceStaticTable,
	model.SourceCommunityDB,
}

// rosterSources are the only sources allowed to supply a current
// roster. Rosters are season-volatile, so the hand-curated static
// table is excluded outright.
var rosterSources = []model.SourceID{
	model.SourceSportsAPI,
	model.SourceGenerative,
	model.SourceCommunityDB,
}

// Output is the reconciled result plus its provenance trail.
type Output struct {
	Team       *model.TeamRecord
	Players    []model.PlayerRecord
	RosterNote string

	// FieldSources logs which source won each populated field.
	FieldSources map[string]string
	// SourcesUsed lists every source that contributed at least one field.
	SourcesUsed []model.SourceID
	// Issues carries suspicious-match findings and other merge notes.
	Issues []string
}

// Merger combines adapter outputs. The suspicious-surname list is
// injectable because it is curated data that rots; callers load it
// from configuration rather than trusting the built-in default.
type Merger struct {
	suspiciousSurnames []string
}

// Option applies a configuration option to the Merger.
type Option func(*Merger)

// WithSuspiciousSurnames replaces the curated foreign-surname list used
// to filter cross-border community-database matches.
func WithSuspiciousSurnames(surnames []string) Option {
	return func(m *Merger) {
		if len(surnames) > 0 {
			m.suspiciousSurnames = surnames
		}
	}
}

// New creates a Merger with the default curated lists.
func New(opts ...Option) *Merger {
	m := &Merger{
		suspiciousSurnames: defaultSuspiciousSurnames,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge reconciles per-source raw facts for one subject. Absent
// sources appear in results as nil values or are missing entirely;
// both read the same way.
func (m *Merger) Merge(subject model.Subject, results map[model.SourceID]*model.RawFacts) Output {
	out := Output{FieldSources: map[string]string{}}
	used := map[model.SourceID]bool{}

	if subject.Kind == model.KindTeam {
		m.mergeTeam(subject, results, &out, used)
	} else {
		m.mergePlayer(subject, results, &out, used)
	}

	for _, id := range precedence {
		if used[id] {
			out.SourcesUsed = append(out.SourcesUsed, id)
		}
	}
	return out
}

func (m *Merger) mergeTeam(subject model.Subject, results map[model.SourceID]*model.RawFacts, out *Output, used map[model.SourceID]bool) {
	team := &model.TeamRecord{Name: subject.Name}

	pickString(results, out, used, "name", func(f *model.RawFacts) string { return f.Team.Name }, func(v string) { team.Name = v })
	pickString(results, out, used, "coach", func(f *model.RawFacts) string { return f.Team.CurrentCoach }, func(v string) { team.CurrentCoach = v })
	pickString(results, out, used, "country", func(f *model.RawFacts) string { return f.Team.Country }, func(v string) { team.Country = v })
	pickString(results, out, used, "stadium", func(f *model.RawFacts) string { return f.Team.Stadium }, func(v string) { team.Stadium = v })
	pickInt(results, out, used, "founded_year", func(f *model.RawFacts) int { return f.Team.FoundedYear }, func(v int) { team.FoundedYear = v })

	// Team kind: first source with an opinion wins; default by name
	// heuristics is the classifier's job, so fall back to club.
	team.Kind = model.TeamClub
	for _, id := range precedence {
		if f := results[id]; f.HasTeam() && f.Team.Kind != "" {
			team.Kind = f.Team.Kind
			out.FieldSources["kind"] = string(id)
			used[id] = true
			break
		}
	}

	team.Achievements = unionAchievements(results, out, used)
	enforceCategoryExclusivity(team)

	m.mergeRoster(subject, results, out, used)

	out.Team = team
}

// mergeRoster picks the first non-empty roster in precedence order.
// Rosters are never unioned across sources: mixing current-season and
// prior-season squads is worse than showing one source's view.
func (m *Merger) mergeRoster(subject model.Subject, results map[model.SourceID]*model.RawFacts, out *Output, used map[model.SourceID]bool) {
	for _, id := range rosterSources {
		f := results[id]
		if !f.HasRoster() {
			continue
		}
		players := f.Players
		if id == model.SourceCommunityDB {
			players = m.filterSuspicious(subject, players, out)
		}
		if len(players) == 0 {
			continue
		}
		out.Players = players
		out.FieldSources["roster"] = string(id)
		used[id] = true
		return
	}
	out.Players = []model.PlayerRecord{}
	out.RosterNote = model.RosterUnavailable
}

func (m *Merger) mergePlayer(subject model.Subject, results map[model.SourceID]*model.RawFacts, out *Output, used map[model.SourceID]bool) {
	player := model.PlayerRecord{Name: subject.Name}

	primary := func(f *model.RawFacts) *model.PlayerRecord {
		if f == nil || len(f.Players) == 0 {
			return nil
		}
		return &f.Players[0]
	}

	pickPlayerString(results, out, used, primary, "name", func(p *model.PlayerRecord) string { return p.Name }, func(v string) { player.Name = v })
	pickPlayerString(results, out, used, primary, "current_team", func(p *model.PlayerRecord) string { return p.CurrentTeam }, func(v string) { player.CurrentTeam = v })
	pickPlayerString(results, out, used, primary, "position", func(p *model.PlayerRecord) string { return p.Position }, func(v string) { player.Position = v })
	pickPlayerString(results, out, used, primary, "nationality", func(p *model.PlayerRecord) string { return p.Nationality }, func(v string) { player.Nationality = v })
	pickPlayerString(results, out, used, primary, "summary", func(p *model.PlayerRecord) string { return p.Summary }, func(v string) { player.Summary = v })
	pickPlayerInt(results, out, used, primary, "age", func(p *model.PlayerRecord) *int { return p.Age }, func(v *int) { player.Age = v })
	pickPlayerInt(results, out, used, primary, "career_goals", func(p *model.PlayerRecord) *int { return p.CareerGoals }, func(v *int) { player.CareerGoals = v })
	pickPlayerInt(results, out, used, primary, "career_assists", func(p *model.PlayerRecord) *int { return p.CareerAssists }, func(v *int) { player.CareerAssists = v })
	pickPlayerInt(results, out, used, primary, "international_appearances", func(p *model.PlayerRecord) *int { return p.InternationalAppearances }, func(v *int) { player.InternationalAppearances = v })
	pickPlayerInt(results, out, used, primary, "international_goals", func(p *model.PlayerRecord) *int { return p.InternationalGoals }, func(v *int) { player.InternationalGoals = v })

	// Player achievements union across sources, deduplicated.
	var lists [][]string
	for _, id := range precedence {
		if p := primary(results[id]); p != nil && len(p.Achievements) > 0 {
			lists = append(lists, p.Achievements)
			used[id] = true
			if _, ok := out.FieldSources["achievements"]; !ok {
				out.FieldSources["achievements"] = string(id)
			}
		}
	}
	player.Achievements = unionStrings(lists)

	out.Players = []model.PlayerRecord{player}
}

// pickString walks sources in precedence order and takes the first
// non-empty team field value.
func pickString(results map[model.SourceID]*model.RawFacts, out *Output, used map[model.SourceID]bool, field string, get func(*model.RawFacts) string, set func(string)) {
	for _, id := range precedence {
		f := results[id]
		if !f.HasTeam() {
			continue
		}
		if v := get(f); v != "" {
			set(v)
			out.FieldSources[field] = string(id)
			used[id] = true
			return
		}
	}
}

func pickInt(results map[model.SourceID]*model.RawFacts, out *Output, used map[model.SourceID]bool, field string, get func(*model.RawFacts) int, set func(int)) {
	for _, id := range precedence {
		f := results[id]
		if !f.HasTeam() {
			continue
		}
		if v := get(f); v != 0 {
			set(v)
			out.FieldSources[field] = string(id)
			used[id] = true
			return
		}
	}
}

func pickPlayerString(results map[model.SourceID]*model.RawFacts, out *Output, used map[model.SourceID]bool, primary func(*model.RawFacts) *model.PlayerRecord, field string, get func(*model.PlayerRecord) string, set func(string)) {
	for _, id := range precedence {
		p := primary(results[id])
		if p == nil {
			continue
		}
		if v := get(p); v != "" {
			set(v)
			out.FieldSources[field] = string(id)
			used[id] = true
			return
		}
	}
}

func pickPlayerInt(results map[model.SourceID]*model.RawFacts, out *Output, used map[model.SourceID]bool, primary func(*model.RawFacts) *model.PlayerRecord, field string, get func(*model.PlayerRecord) *int, set func(*int)) {
	for _, id := range precedence {
		p := primary(results[id])
		if p == nil {
			continue
		}
		if v := get(p); v != nil {
			set(v)
			out.FieldSources[field] = string(id)
			used[id] = true
			return
		}
	}
}

// enforceCategoryExclusivity drops achievement categories that cannot
// apply to the team kind: national teams have no domestic honours,
// clubs have no World Cups.
func enforceCategoryExclusivity(team *model.TeamRecord) {
	switch team.Kind {
	case model.TeamNational:
		team.Achievements.Domestic = nil
	case model.TeamClub:
		team.Achievements.WorldCup = nil
	}
}
