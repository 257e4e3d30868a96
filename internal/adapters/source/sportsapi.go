package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/classify"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
)

const defaultSportsAPIBaseURL = "https://api.football-data.org/v4"

const sportsAPITokenHeader = "X-Auth-Token"

// SportsAPIAdapter talks to the licensed sports API: current, verified
// squad and coach data. It is the highest-precedence source for
// anything it covers.
type SportsAPIAdapter struct {
	Base
	baseURL string
	token   string
	http    *http.Client
}

// NewSportsAPIAdapter creates the adapter. Without a token the
// adapter self-disables.
func NewSportsAPIAdapter(baseURL, token string, opts ...BaseOption) *SportsAPIAdapter {
	if baseURL == "" {
		baseURL = defaultSportsAPIBaseURL
	}
	a := &SportsAPIAdapter{
		Base:    NewBase(model.SourceSportsAPI, opts...),
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
	}
	if token == "" {
		a.log.Warn(context.Background(), "sports API adapter disabled: no token configured")
	}
	return a
}

// Enabled reports whether a token was configured.
func (a *SportsAPIAdapter) Enabled() bool { return a.token != "" }

// Fetch looks the team up by name, disambiguates among same-named
// results, then pulls the full squad and coach for the winning ID.
func (a *SportsAPIAdapter) Fetch(ctx context.Context, subject model.Subject) (*model.RawFacts, error) {
	if !a.Enabled() {
		return a.disabled()
	}
	return a.run(ctx, subject, a.fetch)
}

// Wire shapes for the licensed API. They never leak past this file.
type sportsTeamSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type sportsTeamList struct {
	Teams []sportsTeamSummary `json:"teams"`
}

type sportsSquadMember struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Nationality string `json:"nationality"`
	Role        string `json:"role"`
}

type sportsTeamDetail struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Venue   string `json:"venue"`
	Founded int    `json:"founded"`
	Area    struct {
		Name string `json:"name"`
	} `json:"area"`
	Squad []sportsSquadMember `json:"squad"`
	Coach struct {
		Name string `json:"name"`
	} `json:"coach"`
}

func (a *SportsAPIAdapter) fetch(ctx context.Context, subject model.Subject) (*model.RawFacts, error) {
	var list sportsTeamList
	if err := a.get(ctx, "/teams?name="+url.QueryEscape(subject.Name), &list); err != nil {
		return nil, err
	}
	if len(list.Teams) == 0 {
		return nil, nil
	}

	winner := disambiguate(subject, list.Teams)

	var detail sportsTeamDetail
	if err := a.get(ctx, fmt.Sprintf("/teams/%d", winner.ID), &detail); err != nil {
		return nil, err
	}
	return mapSportsDetail(detail), nil
}

// disambiguate prefers an exact (folded) name match, then a national
// team type flag, then the first result.
func disambiguate(subject model.Subject, teams []sportsTeamSummary) sportsTeamSummary {
	want := classify.Fold(subject.Name)
	for _, t := range teams {
		if classify.Fold(t.Name) == want {
			return t
		}
	}
	for _, t := range teams {
		if strings.EqualFold(t.Type, "national") {
			return t
		}
	}
	return teams[0]
}

func mapSportsDetail(detail sportsTeamDetail) *model.RawFacts {
	kind := model.TeamClub
	if strings.EqualFold(detail.Type, "national") {
		kind = model.TeamNational
	}

	facts := &model.RawFacts{
		Team: &model.TeamRecord{
			Name:         detail.Name,
			Kind:         kind,
			Country:      detail.Area.Name,
			Stadium:      detail.Venue,
			FoundedYear:  detail.Founded,
			CurrentCoach: detail.Coach.Name,
		},
	}

	for _, member := range detail.Squad {
		switch {
		case strings.EqualFold(member.Role, "COACH"):
			if facts.Team.CurrentCoach == "" {
				facts.Team.CurrentCoach = member.Name
			}
		case member.Role == "" || strings.EqualFold(member.Role, "PLAYER"):
			facts.Players = append(facts.Players, model.PlayerRecord{
				Name:        member.Name,
				Position:    member.Position,
				Nationality: member.Nationality,
				CurrentTeam: detail.Name,
			})
		}
	}
	return facts
}

func (a *SportsAPIAdapter) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(sportsAPITokenHeader, a.token)

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
