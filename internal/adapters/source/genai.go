package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
)

// promptVersion tags the system prompt so prompt changes are visible
// in logs and cache behavior discussions.
const promptVersion = "v3"

// systemPrompt is the wire contract with the completion endpoint: the
// model must answer with exactly the JSON shape decoded below.
const systemPrompt = `You are a football data service for the 2025/26 season. ` +
	`Answer with a single JSON object and nothing else. ` +
	`For a team use: {"team":{"name":"","kind":"club|national","country":"","stadium":"",` +
	`"current_coach":"","founded_year":0,"achievements":{"world_cup":[],"international":[],` +
	`"continental":[],"domestic":[]}},"players":[...]}. ` +
	`For a player use: {"players":[{"name":"","current_team":"","position":"","age":0,` +
	`"nationality":"","career_goals":0,"career_assists":0,"international_appearances":0,` +
	`"international_goals":0,"achievements":[],"summary":""}]}. ` +
	`Omit fields you are not confident about. Never invent roster names.`

const (
	genaiTemperature = 0.1
	genaiMaxTokens   = 1024
)

// completionClient is the slice of the go-openai client the adapter
// needs; narrowed for tests.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GenerativeAdapter asks a large-language-model completion endpoint
// for a structured record. It is the most expensive and least
// trustworthy source, consulted only when the classifier could not
// route the query anywhere cheaper, or as gap-fill below the licensed
// API.
type GenerativeAdapter struct {
	Base
	client completionClient
	model  string
}

// GenerativeConfig wires the adapter.
type GenerativeConfig struct {
	APIKey  string
	BaseURL string // empty means the vendor default
	Model   string
}

// NewGenerativeAdapter creates the adapter. With no API key the
// adapter self-disables rather than failing resolutions at runtime.
func NewGenerativeAdapter(cfg GenerativeConfig, opts ...BaseOption) *GenerativeAdapter {
	a := &GenerativeAdapter{
		Base:  NewBase(model.SourceGenerative, opts...),
		model: cfg.Model,
	}
	if a.model == "" {
		a.model = "gpt-4o-mini"
	}
	if cfg.APIKey == "" {
		a.log.Warn(context.Background(), "generative adapter disabled: no API key configured")
		return a
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	a.client = openai.NewClientWithConfig(clientCfg)
	return a
}

// Enabled reports whether a credential was configured.
func (a *GenerativeAdapter) Enabled() bool { return a.client != nil }

// Fetch issues one structured-output completion request and parses
// the answer as the canonical record shape.
func (a *GenerativeAdapter) Fetch(ctx context.Context, subject model.Subject) (*model.RawFacts, error) {
	if !a.Enabled() {
		return a.disabled()
	}
	return a.run(ctx, subject, a.fetch)
}

func (a *GenerativeAdapter) fetch(ctx context.Context, subject model.Subject) (*model.RawFacts, error) {
	userPrompt := fmt.Sprintf("Subject kind: %s. Subject: %s", subject.Kind, subject.Name)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: genaiTemperature,
		MaxTokens:   genaiMaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt + " (prompt " + promptVersion + ")"},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}

	return decodeGenerative(resp.Choices[0].Message.Content)
}

// generativePayload mirrors the JSON contract in systemPrompt.
type generativePayload struct {
	Team    *model.TeamRecord    `json:"team"`
	Players []model.PlayerRecord `json:"players"`
}

// decodeGenerative parses the completion body. A malformed body gets
// one best-effort brace-matching recovery attempt before the adapter
// gives up and reads as absent.
func decodeGenerative(body string) (*model.RawFacts, error) {
	var payload generativePayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		recovered, ok := recoverJSONObject(body)
		if !ok {
			return nil, fmt.Errorf("decode completion: %w", err)
		}
		if err := json.Unmarshal([]byte(recovered), &payload); err != nil {
			return nil, fmt.Errorf("decode recovered completion: %w", err)
		}
	}
	if payload.Team == nil && len(payload.Players) == 0 {
		return nil, nil
	}
	return &model.RawFacts{Team: payload.Team, Players: payload.Players}, nil
}

// recoverJSONObject extracts the first balanced {...} span from a body
// that carries prose around the JSON. String-literal braces are
// skipped.
func recoverJSONObject(body string) (string, bool) {
	start := strings.IndexByte(body, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(body); i++ {
		c := body[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return body[start : i+1], true
			}
		}
	}
	return "", false
}
