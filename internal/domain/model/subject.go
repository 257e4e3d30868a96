// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Kind tells what sort of subject a query resolves to.
type Kind string

// Subject kinds.
const (
	KindTeam   Kind = "team"
	KindPlayer Kind = "player"
)

// SourceID identifies one external data source adapter.
type SourceID string

// Known source adapters, listed here so the reconciler can rank them
// without importing adapter packages.
const (
	SourceSportsAPI    SourceID = "sports_api"
	SourceEncyclopedia SourceID = "encyclopedia"
	SourceGenerative   SourceID = "generative"
	SourceStaticTable  SourceID = "static_table"
	SourceCommunityDB  SourceID = "community_db"
)

// Subject is the identity being resolved for one query. It is not
// persisted and exists only for the duration of a single resolution.
type Subject struct {
	Name string
	Kind Kind
}

// Key returns the cache key for the subject: normalized name plus kind.
func (s Subject) Key() string {
	return NormalizeName(s.Name) + "|" + string(s.Kind)
}

// NormalizeName lower-cases and trims a subject name for keying and
// comparison. Diacritic folding is handled separately by the classifier.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RawFacts is what a single adapter returns for a subject: whichever of
// the team/player shapes it could populate, plus retrieval metadata.
// A nil *RawFacts means the source was absent for this subject.
type RawFacts struct {
	Source      SourceID
	Team        *TeamRecord
	Players     []PlayerRecord
	RetrievedAt time.Time
}

// HasTeam reports whether the facts carry any team data.
func (r *RawFacts) HasTeam() bool {
	return r != nil && r.Team != nil
}

// HasRoster reports whether the facts carry a non-empty player list.
func (r *RawFacts) HasRoster() bool {
	return r != nil && len(r.Players) > 0
}
