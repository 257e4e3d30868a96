package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	source "github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/source"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStaticTableAdapter(t *testing.T) {
	Convey("Given the embedded static table", t, func() {
		ctx := context.Background()
		a, err := source.NewStaticTableAdapter("")
		So(err, ShouldBeNil)

		Convey("When a listed club is requested", func() {
			facts, err := a.Fetch(ctx, model.Subject{Name: "Real Madrid", Kind: model.KindTeam})

			Convey("Then immutable facts come back without a roster", func() {
				So(err, ShouldBeNil)
				So(facts.Team.Kind, ShouldEqual, model.TeamClub)
				So(facts.Team.Stadium, ShouldEqual, "Santiago Bernabéu")
				So(facts.Team.FoundedYear, ShouldEqual, 1902)
				So(facts.Team.Achievements.Continental, ShouldNotBeEmpty)
				So(facts.Players, ShouldBeEmpty)
			})
		})

		Convey("When the lookup name differs only in accents and case", func() {
			facts, err := a.Fetch(ctx, model.Subject{Name: "atletico madrid", Kind: model.KindTeam})

			Convey("Then the folded lookup still hits", func() {
				So(err, ShouldBeNil)
				So(facts.Team.Name, ShouldEqual, "Atlético Madrid")
			})
		})

		Convey("When a national side is requested", func() {
			facts, err := a.Fetch(ctx, model.Subject{Name: "Argentina", Kind: model.KindTeam})

			Convey("Then the kind and World Cups are present", func() {
				So(err, ShouldBeNil)
				So(facts.Team.Kind, ShouldEqual, model.TeamNational)
				So(facts.Team.Achievements.WorldCup, ShouldNotBeEmpty)
			})
		})

		Convey("When the subject is not in the table", func() {
			_, err := a.Fetch(ctx, model.Subject{Name: "Union Berlin", Kind: model.KindTeam})

			Convey("Then the source reads as absent", func() {
				So(err, ShouldEqual, source.ErrNoData)
			})
		})

		Convey("When the subject is a player", func() {
			_, err := a.Fetch(ctx, model.Subject{Name: "Lionel Messi", Kind: model.KindPlayer})

			Convey("Then the table declines", func() {
				So(err, ShouldEqual, source.ErrNoData)
			})
		})

		Convey("Then the table version is reported", func() {
			So(a.Version(), ShouldEqual, 3)
		})
	})

	Convey("Given an operator-maintained table on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "table.yaml")
		table := `version: 9
teams:
  - name: Testlandia
    kind: national
    country: Testlandia
    world_cup:
      - "2030"
`
		So(os.WriteFile(path, []byte(table), 0o600), ShouldBeNil)

		a, err := source.NewStaticTableAdapter(path)
		So(err, ShouldBeNil)

		Convey("Then the external table replaces the embedded one", func() {
			So(a.Version(), ShouldEqual, 9)

			facts, err := a.Fetch(context.Background(), model.Subject{Name: "Testlandia", Kind: model.KindTeam})
			So(err, ShouldBeNil)
			So(facts.Team.Kind, ShouldEqual, model.TeamNational)
			So(facts.Team.Achievements.WorldCup, ShouldResemble, []string{"2030"})

			_, err = a.Fetch(context.Background(), model.Subject{Name: "Real Madrid", Kind: model.KindTeam})
			So(err, ShouldEqual, source.ErrNoData)
		})
	})

	Convey("Given a path that does not exist", t, func() {
		_, err := source.NewStaticTableAdapter("/nonexistent/table.yaml")

		Convey("Then construction fails loudly", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
