// Package classify inspects raw query text and decides which subject
// kind it names and which source adapters are worth consulting. It is
// a pure function of the input string and static keyword tables.
package classify

import (
	"regexp"
	"strings"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
)

// nameLikePattern matches a two-token "FirstName LastName" query after
// diacritic folding. Hyphenated and apostrophe surnames count.
var nameLikePattern = regexp.MustCompile(`^[a-z]+ [a-z'\-]+$`)

// Classifier decides routing for raw queries.
type Classifier struct {
	teamFragments []string
	squadWords    []string
	playerWords   []string
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithExtraTeamFragments appends fragments to the known-team table.
func WithExtraTeamFragments(fragments ...string) Option {
	return func(c *Classifier) {
		for _, f := range fragments {
			if folded := Fold(f); folded != "" {
				c.teamFragments = append(c.teamFragments, folded)
			}
		}
	}
}

// New creates a Classifier backed by the static keyword tables.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		teamFragments: teamNameFragments,
		squadWords:    squadKeywords,
		playerWords:   playerKeywords,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Verdict is what the classifier returns: the subject kind, whether
// the generative model can be skipped, and the adapters worth asking
// in preference order.
type Verdict struct {
	Kind           model.Kind
	SkipGenerative bool
	Candidates     []model.SourceID
}

// Classify applies the routing rules in priority order; the first
// matching rule wins.
//
//  1. Known team name fragment or squad keyword -> team; prefer the
//     licensed API and the encyclopedia; skip the generative model.
//  2. "FirstName LastName" shape or player keyword -> player; prefer
//     the encyclopedia; skip the generative model.
//  3. Anything else is treated as a complex/analytical query and goes
//     to the generative model alone.
func (c *Classifier) Classify(query string) Verdict {
	folded := Fold(query)

	if c.matchesTeam(folded) {
		return Verdict{
			Kind:           model.KindTeam,
			SkipGenerative: true,
			Candidates: []model.SourceID{
				model.SourceSportsAPI,
				model.SourceEncyclopedia,
				model.SourceStaticTable,
				model.SourceCommunityDB,
			},
		}
	}

	if c.matchesPlayer(folded) {
		return Verdict{
			Kind:           model.KindPlayer,
			SkipGenerative: true,
			Candidates: []model.SourceID{
				model.SourceEncyclopedia,
				model.SourceSportsAPI,
				model.SourceCommunityDB,
			},
		}
	}

	// Complex/analytical queries default to the player shape; the
	// generative adapter returns whichever shape fits its answer.
	return Verdict{
		Kind:           model.KindPlayer,
		SkipGenerative: false,
		Candidates:     []model.SourceID{model.SourceGenerative},
	}
}

func (c *Classifier) matchesTeam(folded string) bool {
	for _, fragment := range c.teamFragments {
		if strings.Contains(folded, fragment) {
			return true
		}
	}
	for _, kw := range c.squadWords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

func (c *Classifier) matchesPlayer(folded string) bool {
	for _, kw := range c.playerWords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return nameLikePattern.MatchString(folded)
}

// SubjectName strips trailing routing keywords from the query, leaving
// the bare subject name used for adapter lookups and cache keys.
// "Lionel Messi stats" becomes "Lionel Messi"; team names pass through.
func SubjectName(query string) string {
	words := strings.Fields(strings.TrimSpace(query))
	stop := map[string]bool{
		"squad": true, "roster": true, "lineup": true, "line-up": true,
		"plantilla": true,
	}
	for _, kw := range playerKeywords {
		stop[strings.TrimSpace(kw)] = true
	}
	for len(words) > 1 && stop[Fold(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}
