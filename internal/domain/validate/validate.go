// Package validate applies domain plausibility rules to candidate
// records and produces a confidence score. Pure and deterministic; no
// I/O.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
)

// Scoring starts at maxScore and subtracts a fixed penalty per failed
// check, floored at zero.
const (
	maxScore = 100

	penaltyMissingName     = 40
	penaltyMissingCountry  = 10
	penaltyMissingCoach    = 5
	penaltyAgeRange        = 15
	penaltyPosition        = 10
	penaltyCareerStats     = 15
	penaltyInternationals  = 15
	penaltyFoundedYear     = 15
	penaltyInvalidTeamKind = 15

	minPlayerAge = 16
	maxPlayerAge = 42

	maxCareerGoals   = 900
	maxCareerAssists = 300
	maxAppearances   = 200

	minFoundedYear = 1850
)

// positions is the closed vocabulary accepted for PlayerRecord.Position.
var positions = map[string]bool{
	"goalkeeper": true,
	"defender":   true,
	"midfielder": true,
	"forward":    true,
	"winger":     true,
	"striker":    true,
	"coach":      true,
}

// Report is the outcome of validating one record.
type Report struct {
	Score  int
	Issues []string
}

type reportBuilder struct {
	score  int
	issues []string
}

func (b *reportBuilder) fail(penalty int, format string, args ...any) {
	b.score -= penalty
	b.issues = append(b.issues, fmt.Sprintf(format, args...))
}

func (b *reportBuilder) report() Report {
	if b.score < 0 {
		b.score = 0
	}
	return Report{Score: b.score, Issues: b.issues}
}

// Player checks a player record against the plausibility rules. Each
// check is independent and only subtracts its own penalty.
func Player(rec model.PlayerRecord) Report {
	b := &reportBuilder{score: maxScore}

	if strings.TrimSpace(rec.Name) == "" {
		b.fail(penaltyMissingName, "player name is missing")
	}
	if strings.TrimSpace(rec.Nationality) == "" {
		b.fail(penaltyMissingCountry, "nationality is missing")
	}
	if rec.Age != nil && (*rec.Age < minPlayerAge || *rec.Age > maxPlayerAge) {
		b.fail(penaltyAgeRange, "age %d outside plausible range [%d,%d]", *rec.Age, minPlayerAge, maxPlayerAge)
	}
	if rec.Position != "" && !positions[strings.ToLower(strings.TrimSpace(rec.Position))] {
		b.fail(penaltyPosition, "position %q not in known vocabulary", rec.Position)
	}
	if rec.CareerGoals != nil && (*rec.CareerGoals < 0 || *rec.CareerGoals > maxCareerGoals) {
		b.fail(penaltyCareerStats, "career goals %d implausible", *rec.CareerGoals)
	}
	if rec.CareerAssists != nil && (*rec.CareerAssists < 0 || *rec.CareerAssists > maxCareerAssists) {
		b.fail(penaltyCareerStats, "career assists %d implausible", *rec.CareerAssists)
	}
	if rec.InternationalAppearances != nil && *rec.InternationalAppearances > maxAppearances {
		b.fail(penaltyInternationals, "international appearances %d implausible", *rec.InternationalAppearances)
	}
	if rec.InternationalGoals != nil && rec.InternationalAppearances != nil &&
		*rec.InternationalGoals > *rec.InternationalAppearances {
		b.fail(penaltyInternationals, "international goals %d exceed appearances %d",
			*rec.InternationalGoals, *rec.InternationalAppearances)
	}

	return b.report()
}

// Team checks a team record. A missing coach is a warning-level
// finding: it costs a small penalty but never sinks the record.
func Team(rec model.TeamRecord, now time.Time) Report {
	b := &reportBuilder{score: maxScore}

	if strings.TrimSpace(rec.Name) == "" {
		b.fail(penaltyMissingName, "team name is missing")
	}
	if rec.FoundedYear != 0 && (rec.FoundedYear < minFoundedYear || rec.FoundedYear > now.Year()) {
		b.fail(penaltyFoundedYear, "founded year %d outside [%d,%d]", rec.FoundedYear, minFoundedYear, now.Year())
	}
	if rec.Kind != model.TeamClub && rec.Kind != model.TeamNational {
		b.fail(penaltyInvalidTeamKind, "unknown team kind %q", rec.Kind)
	}
	if strings.TrimSpace(rec.CurrentCoach) == "" {
		b.fail(penaltyMissingCoach, "current coach unknown")
	}

	return b.report()
}

// Resolution scores a whole resolution: the team (when present) and
// every player, returning the lowest score seen with all issues
// concatenated. An empty resolution scores zero.
func Resolution(res model.Resolution, now time.Time) Report {
	lowest := maxScore
	var issues []string
	scored := false

	if res.Team != nil {
		r := Team(*res.Team, now)
		scored = true
		if r.Score < lowest {
			lowest = r.Score
		}
		issues = append(issues, r.Issues...)
	}
	for i := range res.Players {
		r := Player(res.Players[i])
		scored = true
		if r.Score < lowest {
			lowest = r.Score
		}
		issues = append(issues, r.Issues...)
	}

	if !scored {
		return Report{Score: 0, Issues: []string{"no data to validate"}}
	}
	return Report{Score: lowest, Issues: issues}
}
