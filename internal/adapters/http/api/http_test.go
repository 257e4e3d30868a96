package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/http/api"
	service "github.com/rumbita1974/Futbolai-ES-sub000/internal/app"
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

// fakeDeps stubs the service behind the handlers.
type fakeDeps struct {
	lastQuery string
	lastOpts  service.ResolveOptions
	res       model.Resolution
	stats     service.Stats
}

func (d *fakeDeps) Resolve(_ context.Context, query string, opts service.ResolveOptions) model.Resolution {
	d.lastQuery = query
	d.lastOpts = opts
	return d.res
}

func (d *fakeDeps) Snapshot(_ context.Context) service.Stats {
	return d.stats
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func TestResolveEndpoint(t *testing.T) {
	Convey("Given the API routes over a fake service", t, func() {
		deps := &fakeDeps{
			res: model.Resolution{
				Query: "Real Madrid squad",
				Kind:  model.KindTeam,
				Team:  &model.TeamRecord{Name: "Real Madrid CF", Kind: model.TeamClub},
				Metadata: model.Metadata{
					TraceID:         "trace-1",
					ConfidenceScore: 95,
				},
			},
		}
		mux := newMux(deps)

		Convey("When a resolve request carries a query", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resolve?q=Real+Madrid+squad", nil))

			Convey("Then the resolution is returned as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var res model.Resolution
				So(json.Unmarshal(rec.Body.Bytes(), &res), ShouldBeNil)
				So(res.Team.Name, ShouldEqual, "Real Madrid CF")
				So(res.Metadata.TraceID, ShouldEqual, "trace-1")
				So(deps.lastQuery, ShouldEqual, "Real Madrid squad")
				So(deps.lastOpts.BustCache, ShouldBeFalse)
			})
		})

		Convey("When the request asks to bust the cache", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resolve?q=x&bust_cache=true", nil))

			Convey("Then the flag reaches the service", func() {
				So(deps.lastOpts.BustCache, ShouldBeTrue)
			})
		})

		Convey("When the query parameter is missing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resolve", nil))

			Convey("Then the request is rejected with a structured error", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)

				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "bad_request")
				So(body["message"], ShouldContainSubstring, "missing q parameter")
			})
		})

		Convey("When a resolution found no data", func() {
			deps.res = model.Resolution{
				Query:           "Unknown FC",
				Players:         []model.PlayerRecord{},
				Error:           `no data found for "Unknown FC"`,
				Recommendations: []string{"check the spelling of the team or player name"},
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resolve?q=Unknown+FC", nil))

			Convey("Then the body carries the failure but the status stays 200", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var res model.Resolution
				So(json.Unmarshal(rec.Body.Bytes(), &res), ShouldBeNil)
				So(res.Error, ShouldContainSubstring, "no data found")
				So(res.Recommendations, ShouldNotBeEmpty)
			})
		})

		Convey("When the method is not GET", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/resolve?q=x", nil))

			Convey("Then the route does not answer", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the API routes over a fake service", t, func() {
		deps := &fakeDeps{
			stats: service.Stats{
				Season:            "2025/26",
				CachedResolutions: 4,
				Adapters:          map[string]bool{"sports_api": true, "generative": false},
			},
		}
		mux := newMux(deps)

		Convey("When the health endpoint is probed", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then it answers ok", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"status":"ok"`)
			})
		})

		Convey("When stats are requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the snapshot is serialized", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var st service.Stats
				So(json.Unmarshal(rec.Body.Bytes(), &st), ShouldBeNil)
				So(st.Season, ShouldEqual, "2025/26")
				So(st.CachedResolutions, ShouldEqual, 4)
				So(st.Adapters["generative"], ShouldBeFalse)
			})
		})

		Convey("When metrics are scraped", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then the Prometheus endpoint answers", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
