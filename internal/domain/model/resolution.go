package model

import "time"

// RosterUnavailable is the sentinel note set when every consulted
// source came back without a current roster. Rosters are
// season-volatile, so a missing roster surfaces explicitly instead of
// being padded with stale or invented names.
const RosterUnavailable = "no current roster data available"

// Provenance records which adapter supplied a value and with what
// confidence. It is metadata only and never participates in record
// equality.
type Provenance struct {
	Source          SourceID  `json:"source"`
	RetrievedAt     time.Time `json:"retrieved_at"`
	ConfidenceScore int       `json:"confidence_score"`
	Issues          []string  `json:"issues,omitempty"`
}

// Metadata is the envelope attached to every resolution result.
type Metadata struct {
	TraceID          string            `json:"trace_id"`
	SourcesConsulted []string          `json:"sources_consulted"`
	ConfidenceScore  int               `json:"confidence_score"`
	Issues           []string          `json:"issues,omitempty"`
	Season           string            `json:"season"`
	GeneratedAt      time.Time         `json:"generated_at"`
	CacheHit         bool              `json:"cache_hit"`
	FieldSources     map[string]string `json:"field_sources,omitempty"`
}

// Resolution is the boundary contract consumed by the UI and tests.
// Error is set (and the records left structurally valid but empty)
// when every adapter was absent; nothing in the pipeline throws.
type Resolution struct {
	Query           string         `json:"query"`
	Kind            Kind           `json:"kind"`
	Team            *TeamRecord    `json:"team,omitempty"`
	Players         []PlayerRecord `json:"players"`
	RosterNote      string         `json:"roster_note,omitempty"`
	Metadata        Metadata       `json:"metadata"`
	Error           string         `json:"error,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
}
