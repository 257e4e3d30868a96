package cache_test

import (
	"testing"
	"time"

	cache "github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/cache"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeClock is a manually advanced clock for TTL tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestStore(t *testing.T) {
	Convey("Given a store with a one-minute TTL and a fake clock", t, func() {
		clock := &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
		s := cache.New[string](
			cache.WithName[string]("test"),
			cache.WithTTL[string](time.Minute),
			cache.WithClock[string](clock.Now),
		)

		Convey("When a value is stored", func() {
			s.Put("key", "value")

			Convey("Then it is returned while fresh", func() {
				v, ok := s.Get("key")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "value")
				So(s.Len(), ShouldEqual, 1)
			})

			Convey("Then it is rejected once the TTL has elapsed", func() {
				clock.Advance(61 * time.Second)
				_, ok := s.Get("key")
				So(ok, ShouldBeFalse)

				Convey("But the stale entry still occupies the map until swept", func() {
					So(s.Len(), ShouldEqual, 1)
				})
			})

			Convey("Then it survives exactly at the TTL boundary", func() {
				clock.Advance(time.Minute)
				_, ok := s.Get("key")
				So(ok, ShouldBeTrue)
			})

			Convey("And a later Put refreshes the entry", func() {
				clock.Advance(50 * time.Second)
				s.Put("key", "newer")
				clock.Advance(50 * time.Second)

				v, ok := s.Get("key")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "newer")
			})
		})

		Convey("When a missing key is requested", func() {
			_, ok := s.Get("absent")

			Convey("Then the lookup misses", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a key is deleted", func() {
			s.Put("key", "value")
			s.Delete("key")

			Convey("Then it is gone", func() {
				_, ok := s.Get("key")
				So(ok, ShouldBeFalse)
				So(s.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the sweeper runs over mixed-age entries", func() {
			s.Put("old-1", "a")
			s.Put("old-2", "b")
			clock.Advance(2 * time.Minute)
			s.Put("fresh", "c")

			evicted := s.Sweep()

			Convey("Then only the stale entries are evicted", func() {
				So(evicted, ShouldEqual, 2)
				So(s.Len(), ShouldEqual, 1)
				_, ok := s.Get("fresh")
				So(ok, ShouldBeTrue)
			})
		})
	})
}
