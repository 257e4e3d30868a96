package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/classify"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
)

const defaultCommunityBaseURL = "https://www.thesportsdb.com/api/v1/json/3"

// CommunityDBAdapter queries the community-maintained sports database.
// Same player names are reused across unrelated leagues there, so the
// reconciler ranks this source last and filters suspicious roster
// matches.
type CommunityDBAdapter struct {
	Base
	baseURL string
	http    *http.Client
}

// NewCommunityDBAdapter creates the adapter. baseURL is overridable
// for tests.
func NewCommunityDBAdapter(baseURL string, opts ...BaseOption) *CommunityDBAdapter {
	if baseURL == "" {
		baseURL = defaultCommunityBaseURL
	}
	return &CommunityDBAdapter{
		Base:    NewBase(model.SourceCommunityDB, opts...),
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Enabled is always true: the community database needs no credential.
func (a *CommunityDBAdapter) Enabled() bool { return true }

// Fetch resolves team subjects through search -> lookup -> honours ->
// roster. Player subjects are skipped entirely; the community data is
// too collision-prone to be the source of a player profile.
func (a *CommunityDBAdapter) Fetch(ctx context.Context, subject model.Subject) (*model.RawFacts, error) {
	if subject.Kind != model.KindTeam {
		return nil, ErrNoData
	}
	return a.run(ctx, subject, a.fetch)
}

// Wire shapes for the community API; strings throughout, including
// numerics, per its schema.
type communityTeam struct {
	ID         string `json:"idTeam"`
	Name       string `json:"strTeam"`
	Stadium    string `json:"strStadium"`
	FormedYear string `json:"intFormedYear"`
	Country    string `json:"strCountry"`
	Manager    string `json:"strManager"`
}

type communityTeamList struct {
	Teams []communityTeam `json:"teams"`
}

type communityHonor struct {
	Honour string `json:"strHonour"`
	Season string `json:"strSeason"`
}

type communityHonorList struct {
	Honors []communityHonor `json:"honours"`
}

type communityPlayer struct {
	Name        string `json:"strPlayer"`
	Position    string `json:"strPosition"`
	Nationality string `json:"strNationality"`
	Team        string `json:"strTeam"`
}

type communityPlayerList struct {
	Players []communityPlayer `json:"player"`
}

func (a *CommunityDBAdapter) fetch(ctx context.Context, subject model.Subject) (*model.RawFacts, error) {
	var list communityTeamList
	if err := a.get(ctx, "/searchteams.php?t="+url.QueryEscape(subject.Name), &list); err != nil {
		return nil, err
	}
	if len(list.Teams) == 0 {
		return nil, nil
	}

	team := pickCommunityTeam(subject, list.Teams)
	facts := &model.RawFacts{Team: mapCommunityTeam(team)}

	// Honours and roster are enrichment; their failure does not void
	// the team facts already in hand.
	var honors communityHonorList
	if err := a.get(ctx, "/lookuphonors.php?id="+url.QueryEscape(team.ID), &honors); err == nil {
		facts.Team.Achievements = mapCommunityHonors(honors.Honors)
	}

	var players communityPlayerList
	if err := a.get(ctx, "/searchplayers.php?t="+url.QueryEscape(subject.Name), &players); err == nil {
		for _, p := range players.Players {
			facts.Players = append(facts.Players, model.PlayerRecord{
				Name:        p.Name,
				Position:    p.Position,
				Nationality: p.Nationality,
				CurrentTeam: p.Team,
			})
		}
	}

	return facts, nil
}

func pickCommunityTeam(subject model.Subject, teams []communityTeam) communityTeam {
	want := classify.Fold(subject.Name)
	for _, t := range teams {
		if classify.Fold(t.Name) == want {
			return t
		}
	}
	return teams[0]
}

func mapCommunityTeam(t communityTeam) *model.TeamRecord {
	rec := &model.TeamRecord{
		Name:         t.Name,
		Stadium:      t.Stadium,
		Country:      t.Country,
		CurrentCoach: t.Manager,
	}
	if year, err := strconv.Atoi(strings.TrimSpace(t.FormedYear)); err == nil {
		rec.FoundedYear = year
	}
	return rec
}

// mapCommunityHonors buckets honour names into achievement
// categories by keyword.
func mapCommunityHonors(honors []communityHonor) model.Achievements {
	var out model.Achievements
	for _, h := range honors {
		entry := strings.TrimSpace(h.Honour)
		if entry == "" {
			continue
		}
		if h.Season != "" {
			entry = fmt.Sprintf("%s: %s", entry, h.Season)
		}
		folded := classify.Fold(h.Honour)
		switch {
		case strings.Contains(folded, "world cup"):
			out.WorldCup = append(out.WorldCup, entry)
		case strings.Contains(folded, "champions league"),
			strings.Contains(folded, "europa"),
			strings.Contains(folded, "libertadores"),
			strings.Contains(folded, "uefa"):
			out.Continental = append(out.Continental, entry)
		case strings.Contains(folded, "intercontinental"),
			strings.Contains(folded, "club world"):
			out.International = append(out.International, entry)
		default:
			out.Domestic = append(out.Domestic, entry)
		}
	}
	return out
}

// get runs one community lookup. The API answers 404 for unknown
// subjects; that is an empty result, not a failure.
func (a *CommunityDBAdapter) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
