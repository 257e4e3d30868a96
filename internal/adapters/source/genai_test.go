package source

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// fakeCompletions replays a canned completion body or error.
type fakeCompletions struct {
	body string
	err  error
	req  openai.ChatCompletionRequest
}

func (f *fakeCompletions) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.body}},
		},
	}, nil
}

func TestGenerativeAdapter(t *testing.T) {
	Convey("Given a generative adapter with a fake completion client", t, func() {
		ctx := context.Background()

		Convey("When the model answers with the team contract", func() {
			fake := &fakeCompletions{body: `{
				"team": {"name":"Real Madrid","kind":"club","current_coach":"Carlo Ancelotti","founded_year":1902,
					"achievements":{"continental":["UEFA Champions League (15 titles)"]}},
				"players": [{"name":"Vinicius Junior","position":"Forward"}]
			}`}
			a := &GenerativeAdapter{Base: NewBase(model.SourceGenerative), client: fake, model: "test-model"}

			facts, err := a.Fetch(ctx, model.Subject{Name: "Real Madrid", Kind: model.KindTeam})

			Convey("Then the payload decodes into raw facts", func() {
				So(err, ShouldBeNil)
				So(facts.Team.CurrentCoach, ShouldEqual, "Carlo Ancelotti")
				So(facts.Team.Achievements.Continental, ShouldHaveLength, 1)
				So(facts.Players, ShouldHaveLength, 1)
				So(facts.Source, ShouldEqual, model.SourceGenerative)
			})

			Convey("Then the request pins the structured-output contract", func() {
				So(fake.req.Model, ShouldEqual, "test-model")
				So(fake.req.ResponseFormat.Type, ShouldEqual, openai.ChatCompletionResponseFormatTypeJSONObject)
				So(fake.req.Messages[0].Content, ShouldContainSubstring, "single JSON object")
				So(fake.req.Messages[1].Content, ShouldContainSubstring, "Real Madrid")
			})
		})

		Convey("When the completion request errors", func() {
			fake := &fakeCompletions{err: errors.New("rate limited")}
			a := &GenerativeAdapter{Base: NewBase(model.SourceGenerative), client: fake, model: "test-model"}

			_, err := a.Fetch(ctx, model.Subject{Name: "Real Madrid", Kind: model.KindTeam})

			Convey("Then the failure degrades to unavailable", func() {
				So(err, ShouldEqual, ErrUnavailable)
			})
		})

		Convey("When no API key is configured", func() {
			a := NewGenerativeAdapter(GenerativeConfig{})

			Convey("Then the adapter self-disables", func() {
				So(a.Enabled(), ShouldBeFalse)
				_, err := a.Fetch(ctx, model.Subject{Name: "anything", Kind: model.KindPlayer})
				So(err, ShouldEqual, ErrDisabled)
			})
		})
	})
}

func TestDecodeGenerative(t *testing.T) {
	Convey("Given completion bodies of varying quality", t, func() {
		Convey("When the body is clean JSON", func() {
			facts, err := decodeGenerative(`{"players":[{"name":"Lionel Messi","nationality":"Argentina"}]}`)

			So(err, ShouldBeNil)
			So(facts.Players, ShouldHaveLength, 1)
		})

		Convey("When the JSON is wrapped in prose", func() {
			body := "Here is the data you asked for:\n" +
				`{"team":{"name":"Argentina","kind":"national"}}` +
				"\nLet me know if you need anything else."
			facts, err := decodeGenerative(body)

			Convey("Then brace-matching recovery salvages the object", func() {
				So(err, ShouldBeNil)
				So(facts.Team.Name, ShouldEqual, "Argentina")
				So(facts.Team.Kind, ShouldEqual, model.TeamNational)
			})
		})

		Convey("When string values contain braces", func() {
			body := `noise {"players":[{"name":"X","summary":"notation like {4-4-2} appears here"}]} noise`
			facts, err := decodeGenerative(body)

			So(err, ShouldBeNil)
			So(facts.Players[0].Summary, ShouldContainSubstring, "{4-4-2}")
		})

		Convey("When the body is beyond recovery", func() {
			_, err := decodeGenerative(`the model refused to answer`)

			So(err, ShouldNotBeNil)
		})

		Convey("When the object carries neither shape", func() {
			facts, err := decodeGenerative(`{}`)

			Convey("Then the source reads as having nothing", func() {
				So(err, ShouldBeNil)
				So(facts, ShouldBeNil)
			})
		})
	})
}

func TestRecoverJSONObject(t *testing.T) {
	Convey("Given bodies with surrounding noise", t, func() {
		Convey("Then a balanced object is extracted", func() {
			got, ok := recoverJSONObject(`prefix {"a":{"b":1}} suffix`)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, `{"a":{"b":1}}`)
		})

		Convey("Then escaped quotes inside strings are handled", func() {
			got, ok := recoverJSONObject(`x {"a":"he said \"hi\" {"} y`)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, `{"a":"he said \"hi\" {"}`)
		})

		Convey("Then an unbalanced body is rejected", func() {
			_, ok := recoverJSONObject(`{"a": 1`)
			So(ok, ShouldBeFalse)
		})

		Convey("Then a body with no object is rejected", func() {
			_, ok := recoverJSONObject(`no json here`)
			So(ok, ShouldBeFalse)
		})
	})
}
