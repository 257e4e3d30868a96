package validate_test

import (
	"testing"
	"time"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	validate "github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/validate"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestPlayer(t *testing.T) {
	Convey("Given a fully plausible player record", t, func() {
		rec := model.PlayerRecord{
			Name:          "Luka Modric",
			Nationality:   "Croatia",
			Position:      "Midfielder",
			Age:           model.IntPtr(39),
			CareerGoals:   model.IntPtr(130),
			CareerAssists: model.IntPtr(120),
		}

		Convey("Then it scores a perfect 100 with no issues", func() {
			r := validate.Player(rec)
			So(r.Score, ShouldEqual, 100)
			So(r.Issues, ShouldBeEmpty)
		})
	})

	Convey("Given a player with an implausible age", t, func() {
		rec := model.PlayerRecord{
			Name:        "Luka Modric",
			Nationality: "Croatia",
			Age:         model.IntPtr(200),
		}

		Convey("Then the age penalty applies and the issue names the range", func() {
			r := validate.Player(rec)
			So(r.Score, ShouldEqual, 85)
			So(r.Issues, ShouldHaveLength, 1)
			So(r.Issues[0], ShouldContainSubstring, "age 200")
		})

		Convey("Then it scores strictly lower than the same record with a sane age", func() {
			sane := rec
			sane.Age = model.IntPtr(25)
			So(validate.Player(rec).Score, ShouldBeLessThan, validate.Player(sane).Score)
		})
	})

	Convey("Given a player with a missing name", t, func() {
		r := validate.Player(model.PlayerRecord{Nationality: "Spain"})

		Convey("Then the heavy name penalty applies", func() {
			So(r.Score, ShouldEqual, 60)
			So(r.Issues[0], ShouldContainSubstring, "name is missing")
		})
	})

	Convey("Given a player with an unknown position", t, func() {
		r := validate.Player(model.PlayerRecord{
			Name:        "Someone",
			Nationality: "Spain",
			Position:    "quarterback",
		})

		Convey("Then the position check fails", func() {
			So(r.Score, ShouldEqual, 90)
			So(r.Issues[0], ShouldContainSubstring, "quarterback")
		})
	})

	Convey("Given international goals exceeding appearances", t, func() {
		r := validate.Player(model.PlayerRecord{
			Name:                     "Someone",
			Nationality:              "Spain",
			InternationalAppearances: model.IntPtr(50),
			InternationalGoals:       model.IntPtr(80),
		})

		Convey("Then the consistency check fails", func() {
			So(r.Score, ShouldEqual, 85)
			So(r.Issues[0], ShouldContainSubstring, "exceed appearances")
		})
	})

	Convey("Given a record failing every check", t, func() {
		r := validate.Player(model.PlayerRecord{
			Age:                      model.IntPtr(7),
			Position:                 "libero-sweeper-keeper",
			CareerGoals:              model.IntPtr(5000),
			CareerAssists:            model.IntPtr(5000),
			InternationalAppearances: model.IntPtr(900),
		})

		Convey("Then the score floors at zero instead of going negative", func() {
			So(r.Score, ShouldEqual, 0)
			So(len(r.Issues), ShouldBeGreaterThanOrEqualTo, 5)
		})
	})
}

func TestTeam(t *testing.T) {
	Convey("Given a complete club record", t, func() {
		rec := model.TeamRecord{
			Name:         "Real Madrid",
			Kind:         model.TeamClub,
			CurrentCoach: "Carlo Ancelotti",
			FoundedYear:  1902,
		}

		Convey("Then it scores 100", func() {
			r := validate.Team(rec, now)
			So(r.Score, ShouldEqual, 100)
			So(r.Issues, ShouldBeEmpty)
		})
	})

	Convey("Given a team with no known coach", t, func() {
		rec := model.TeamRecord{Name: "Cadiz CF", Kind: model.TeamClub}

		Convey("Then only the small coach penalty applies", func() {
			r := validate.Team(rec, now)
			So(r.Score, ShouldEqual, 95)
			So(r.Issues[0], ShouldContainSubstring, "coach")
		})
	})

	Convey("Given an implausible founded year", t, func() {
		Convey("Then founding before 1850 fails", func() {
			r := validate.Team(model.TeamRecord{
				Name: "Ancient FC", Kind: model.TeamClub, CurrentCoach: "X", FoundedYear: 1404,
			}, now)
			So(r.Score, ShouldEqual, 85)
		})

		Convey("Then founding in the future fails", func() {
			r := validate.Team(model.TeamRecord{
				Name: "Future FC", Kind: model.TeamClub, CurrentCoach: "X", FoundedYear: now.Year() + 1,
			}, now)
			So(r.Score, ShouldEqual, 85)
		})

		Convey("Then a zero year means unknown and is not penalized", func() {
			r := validate.Team(model.TeamRecord{
				Name: "Unknown FC", Kind: model.TeamClub, CurrentCoach: "X",
			}, now)
			So(r.Score, ShouldEqual, 100)
		})
	})

	Convey("Given an unknown team kind", t, func() {
		r := validate.Team(model.TeamRecord{Name: "X", Kind: "franchise", CurrentCoach: "Y"}, now)

		Convey("Then the kind check fails", func() {
			So(r.Score, ShouldEqual, 85)
			So(r.Issues[0], ShouldContainSubstring, "franchise")
		})
	})
}

func TestResolution(t *testing.T) {
	Convey("Given a resolution with a team and several players", t, func() {
		res := model.Resolution{
			Team: &model.TeamRecord{
				Name: "Real Madrid", Kind: model.TeamClub, CurrentCoach: "Carlo Ancelotti",
			},
			Players: []model.PlayerRecord{
				{Name: "Vinicius Junior", Nationality: "Brazil"},
				{Name: "Jude Bellingham", Nationality: "England", Age: model.IntPtr(200)},
			},
		}

		Convey("Then the overall score is the lowest individual score", func() {
			r := validate.Resolution(res, now)
			So(r.Score, ShouldEqual, 85)
			So(r.Issues, ShouldHaveLength, 1)
		})
	})

	Convey("Given an empty resolution", t, func() {
		r := validate.Resolution(model.Resolution{}, now)

		Convey("Then it scores zero with an explanatory issue", func() {
			So(r.Score, ShouldEqual, 0)
			So(r.Issues, ShouldResemble, []string{"no data to validate"})
		})
	})
}
