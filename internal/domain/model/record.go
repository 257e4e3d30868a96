package model

// TeamKind distinguishes club sides from national teams.
type TeamKind string

// Team kinds.
const (
	TeamClub     TeamKind = "club"
	TeamNational TeamKind = "national"
)

// Achievements groups a team's honours by category. Category
// exclusivity is enforced at merge time: national teams never carry
// Domestic entries and clubs never carry WorldCup entries.
type Achievements struct {
	WorldCup      []string `json:"world_cup,omitempty"`
	International []string `json:"international,omitempty"`
	Continental   []string `json:"continental,omitempty"`
	Domestic      []string `json:"domestic,omitempty"`
}

// Empty reports whether no category holds any entry.
func (a Achievements) Empty() bool {
	return len(a.WorldCup) == 0 && len(a.International) == 0 &&
		len(a.Continental) == 0 && len(a.Domestic) == 0
}

// TeamRecord is the canonical merged shape for a team subject.
type TeamRecord struct {
	Name         string       `json:"name"`
	Kind         TeamKind     `json:"kind"`
	Country      string       `json:"country,omitempty"`
	Stadium      string       `json:"stadium,omitempty"`
	CurrentCoach string       `json:"current_coach,omitempty"`
	FoundedYear  int          `json:"founded_year,omitempty"`
	Achievements Achievements `json:"achievements"`
}

// PlayerRecord is the canonical merged shape for a player subject.
// Optional numeric stats use pointers so an absent value is
// distinguishable from a genuine zero.
type PlayerRecord struct {
	Name                     string   `json:"name"`
	CurrentTeam              string   `json:"current_team,omitempty"`
	Position                 string   `json:"position,omitempty"`
	Age                      *int     `json:"age,omitempty"`
	Nationality              string   `json:"nationality,omitempty"`
	CareerGoals              *int     `json:"career_goals,omitempty"`
	CareerAssists            *int     `json:"career_assists,omitempty"`
	InternationalAppearances *int     `json:"international_appearances,omitempty"`
	InternationalGoals       *int     `json:"international_goals,omitempty"`
	Achievements             []string `json:"achievements,omitempty"`
	Summary                  string   `json:"summary,omitempty"`
}

// IntPtr is a convenience for building optional stats.
func IntPtr(v int) *int { return &v }
