package source_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	source "github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/source"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// sportsServer fakes the licensed API: a search endpoint and a detail
// endpoint per team ID. It also records the auth header it saw.
func sportsServer(search string, details map[string]string, sawToken *string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sawToken != nil {
			*sawToken = r.Header.Get("X-Auth-Token")
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/teams" {
			fmt.Fprint(w, search)
			return
		}
		if detail, ok := details[r.URL.Path]; ok {
			fmt.Fprint(w, detail)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func TestSportsAPIAdapter(t *testing.T) {
	Convey("Given a licensed API adapter against a fake endpoint", t, func() {
		ctx := context.Background()

		detail := `{
			"name": "Real Madrid CF", "type": "club", "venue": "Santiago Bernabeu",
			"founded": 1902, "area": {"name": "Spain"},
			"coach": {"name": "Carlo Ancelotti"},
			"squad": [
				{"name": "Thibaut Courtois", "position": "Goalkeeper", "nationality": "Belgium", "role": "PLAYER"},
				{"name": "Vinicius Junior", "position": "Forward", "nationality": "Brazil"},
				{"name": "Assistant Person", "role": "ASSISTANT_COACH"}
			]
		}`

		Convey("When a team resolves through search and detail", func() {
			var sawToken string
			srv := sportsServer(
				`{"teams":[{"id":86,"name":"Real Madrid CF","type":"club"}]}`,
				map[string]string{"/teams/86": detail},
				&sawToken,
			)
			defer srv.Close()
			a := source.NewSportsAPIAdapter(srv.URL, "secret-token")

			facts, err := a.Fetch(ctx, model.Subject{Name: "Real Madrid", Kind: model.KindTeam})

			Convey("Then the full record comes back with the squad mapped", func() {
				So(err, ShouldBeNil)
				So(facts.Team.Name, ShouldEqual, "Real Madrid CF")
				So(facts.Team.Kind, ShouldEqual, model.TeamClub)
				So(facts.Team.Stadium, ShouldEqual, "Santiago Bernabeu")
				So(facts.Team.FoundedYear, ShouldEqual, 1902)
				So(facts.Team.CurrentCoach, ShouldEqual, "Carlo Ancelotti")
				So(facts.Players, ShouldHaveLength, 2)
				So(facts.Players[0].CurrentTeam, ShouldEqual, "Real Madrid CF")
			})

			Convey("Then the token travels in the auth header", func() {
				So(sawToken, ShouldEqual, "secret-token")
			})
		})

		Convey("When several teams share the searched name", func() {
			search := `{"teams":[
				{"id":1,"name":"Argentina Juniors","type":"club"},
				{"id":2,"name":"Argentina","type":"national"}
			]}`
			srv := sportsServer(search, map[string]string{
				"/teams/2": `{"name":"Argentina","type":"national","area":{"name":"Argentina"},"coach":{"name":"Lionel Scaloni"}}`,
			}, nil)
			defer srv.Close()
			a := source.NewSportsAPIAdapter(srv.URL, "token")

			facts, err := a.Fetch(ctx, model.Subject{Name: "Argentina", Kind: model.KindTeam})

			Convey("Then the exact name match wins the disambiguation", func() {
				So(err, ShouldBeNil)
				So(facts.Team.Name, ShouldEqual, "Argentina")
				So(facts.Team.Kind, ShouldEqual, model.TeamNational)
			})
		})

		Convey("When the search comes back empty", func() {
			srv := sportsServer(`{"teams":[]}`, nil, nil)
			defer srv.Close()
			a := source.NewSportsAPIAdapter(srv.URL, "token")

			_, err := a.Fetch(ctx, model.Subject{Name: "No Such Team", Kind: model.KindTeam})

			Convey("Then the source reads as absent", func() {
				So(err, ShouldEqual, source.ErrNoData)
			})
		})

		Convey("When no token is configured", func() {
			a := source.NewSportsAPIAdapter("http://unused", "")

			Convey("Then the adapter self-disables", func() {
				So(a.Enabled(), ShouldBeFalse)
				_, err := a.Fetch(ctx, model.Subject{Name: "Real Madrid", Kind: model.KindTeam})
				So(err, ShouldEqual, source.ErrDisabled)
				So(source.IsAbsent(err), ShouldBeTrue)
			})
		})

		Convey("When the endpoint fails", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			}))
			defer srv.Close()
			a := source.NewSportsAPIAdapter(srv.URL, "token")

			_, err := a.Fetch(ctx, model.Subject{Name: "Real Madrid", Kind: model.KindTeam})

			Convey("Then the failure degrades to unavailable", func() {
				So(err, ShouldEqual, source.ErrUnavailable)
			})
		})
	})
}
