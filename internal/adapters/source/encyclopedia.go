package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
)

const defaultEncyclopediaBaseURL = "https://en.wikipedia.org/api/rest_v1"

// coachPatterns is the ordered list tried against article prose. The
// extraction is best-effort and may return nothing; it exists to let
// encyclopedia data outrank a generative guess, never the licensed
// API.
// Patterns stay case-sensitive on the captured name: capitalization is
// what bounds the name against the following prose.
var coachPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[Mm]anaged by ([A-ZÀ-Ž][\w'\-]+(?: [A-ZÀ-Ž][\w'\-]+)+)`),
	regexp.MustCompile(`[Cc]oached by ([A-ZÀ-Ž][\w'\-]+(?: [A-ZÀ-Ž][\w'\-]+)+)`),
	regexp.MustCompile(`[Hh]ead coach(?:,? | is )([A-ZÀ-Ž][\w'\-]+(?: [A-ZÀ-Ž][\w'\-]+)+)`),
	regexp.MustCompile(`[Mm]anager(?:,? | is )([A-ZÀ-Ž][\w'\-]+(?: [A-ZÀ-Ž][\w'\-]+)+)`),
}

// EncyclopediaAdapter fetches a summary article for the subject,
// trying progressively looser title variants until one yields a
// non-disambiguation page with a usable extract.
type EncyclopediaAdapter struct {
	Base
	baseURL string
	http    *http.Client
}

// NewEncyclopediaAdapter creates the adapter. baseURL is overridable
// for tests; empty selects the public endpoint.
func NewEncyclopediaAdapter(baseURL string, opts ...BaseOption) *EncyclopediaAdapter {
	if baseURL == "" {
		baseURL = defaultEncyclopediaBaseURL
	}
	return &EncyclopediaAdapter{
		Base:    NewBase(model.SourceEncyclopedia, opts...),
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Enabled is always true: the encyclopedia needs no credential.
func (a *EncyclopediaAdapter) Enabled() bool { return true }

// Fetch resolves the subject through the title-variant ladder.
func (a *EncyclopediaAdapter) Fetch(ctx context.Context, subject model.Subject) (*model.RawFacts, error) {
	return a.run(ctx, subject, a.fetch)
}

// summaryResponse is the slice of the summary endpoint's schema we
// consume. Third-party shapes stay behind this adapter.
type summaryResponse struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

func (a *EncyclopediaAdapter) fetch(ctx context.Context, subject model.Subject) (*model.RawFacts, error) {
	for _, title := range titleVariants(subject) {
		summary, err := a.lookup(ctx, title)
		if err != nil {
			return nil, err
		}
		if summary == nil || summary.Type == "disambiguation" || summary.Extract == "" {
			continue
		}
		return a.toFacts(subject, summary), nil
	}
	return nil, nil
}

// titleVariants returns lookup titles from strictest to loosest:
// exact, underscored, "(footballer)" suffix, first token only.
func titleVariants(subject model.Subject) []string {
	name := strings.TrimSpace(subject.Name)
	variants := []string{
		name,
		strings.ReplaceAll(name, " ", "_"),
	}
	if subject.Kind == model.KindPlayer {
		variants = append(variants, name+" (footballer)")
		if first, _, ok := strings.Cut(name, " "); ok {
			variants = append(variants, first)
		}
	}
	return variants
}

func (a *EncyclopediaAdapter) lookup(ctx context.Context, title string) (*summaryResponse, error) {
	endpoint := a.baseURL + "/page/summary/" + url.PathEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build summary request: %w", err)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summary request: %w", err)
	}
	defer resp.Body.Close()

	// A missing article is a miss for this variant, not a failure.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("summary request: unexpected status %d", resp.StatusCode)
	}

	var summary summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &summary, nil
}

func (a *EncyclopediaAdapter) toFacts(subject model.Subject, summary *summaryResponse) *model.RawFacts {
	if subject.Kind == model.KindPlayer {
		return &model.RawFacts{
			Players: []model.PlayerRecord{{
				Name:    summary.Title,
				Summary: summary.Extract,
			}},
		}
	}

	team := &model.TeamRecord{Name: summary.Title}
	if coach, ok := ExtractCoach(summary.Extract); ok {
		team.CurrentCoach = coach
	}
	return &model.RawFacts{Team: team}
}

// ExtractCoach pulls a coach name out of free-text prose using the
// ordered pattern list. Best effort: the second return value is false
// when no pattern matched.
func ExtractCoach(prose string) (string, bool) {
	for _, pattern := range coachPatterns {
		if m := pattern.FindStringSubmatch(prose); len(m) > 1 {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}
