package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	service "github.com/PolySpeedRunners/INF8808-Project/internal/app"
	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/repository"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/insights"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	sydney = model.YearSeasonKey{Year: 2000, Season: "Summer"}
	salt   = model.YearSeasonKey{Year: 2002, Season: "Winter"}
)

// stubBuilder returns a fixed snapshot tagged with the requested min year.
type stubBuilder struct {
	mu    sync.Mutex
	calls []int
	err   error
	block chan struct{}
}

func (b *stubBuilder) Run(_ context.Context, minYear int) (*model.Snapshot, error) {
	b.mu.Lock()
	block := b.block
	b.mu.Unlock()
	if block != nil {
		<-block
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, minYear)
	if b.err != nil {
		return nil, b.err
	}

	usa := model.NewCountryYearStats("USA")
	usa.AddMedal("Swimming", model.MedalGold, 3)
	usa.GDP = model.Float(10)
	usa.Population = model.Float(5)
	can := model.NewCountryYearStats("Canada")
	can.AddMedal("Rowing", model.MedalBronze, 1)
	can.GDP = model.Float(2)
	can.Population = model.Float(1)
	nor := model.NewCountryYearStats("Norway")
	nor.AddMedal("Biathlon", model.MedalSilver, 2)

	return &model.Snapshot{
		RunID:   "run",
		BuiltAt: time.Now(),
		MinYear: minYear,
		Data: model.Data{
			sydney: {"USA": usa, "CAN": can},
			salt:   {"NOR": nor},
		},
		MedalsVsGDP: map[int][]model.GDPPoint{
			2000: {{Rank: 1, Year: 2000, CountryCode: "USA", Country: "United States", Total: 1, GDP: 10}},
		},
	}, nil
}

func (b *stubBuilder) minYears() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.calls...)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		b := &stubBuilder{}
		svc := service.New(b)
		defer svc.Stop()
		ctx := context.Background()

		Convey("Before Start nothing is published", func() {
			_, err := svc.Latest(ctx)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			_, err = svc.Refresh(ctx, 0)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then the initial snapshot is built with the default min year", func() {
				So(b.minYears(), ShouldResemble, []int{0})
				keys, err := svc.Keys(ctx)
				So(err, ShouldBeNil)
				So(keys, ShouldResemble, []model.YearSeasonKey{sydney, salt})
			})

			Convey("Then stats report the snapshot", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["buckets"], ShouldEqual, 2)
				So(stats["countries"], ShouldEqual, 3)
				So(stats["runId"], ShouldEqual, "run")
			})

			Convey("Then starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(b.minYears(), ShouldHaveLength, 1)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given a failing pipeline", t, func() {
		boom := errors.New("boom")
		svc := service.New(&stubBuilder{err: boom})

		Convey("Start returns the build error", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, boom), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given unknown scale keys", t, func() {
		svc := service.New(&stubBuilder{}, service.WithScaleKeys([]string{"nope"}))

		Convey("Start refuses to run", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
		})
	})
}

func TestService_Refresh(t *testing.T) {
	Convey("Given a started service", t, func() {
		b := &stubBuilder{}
		svc := service.New(b, service.WithQueueSize(2))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a refresh is requested", func() {
			job, err := svc.Refresh(ctx, 2002)
			So(err, ShouldBeNil)
			So(job.ID, ShouldNotBeEmpty)
			So(job.MinYear, ShouldEqual, 2002)

			Convey("Then the worker rebuilds and publishes the snapshot", func() {
				So(waitFor(func() bool {
					snap, err := svc.Latest(ctx)
					return err == nil && snap.MinYear == 2002
				}), ShouldBeTrue)
				So(b.minYears(), ShouldResemble, []int{0, 2002})
				So(waitFor(func() bool { return svc.GetStats()["lastRefresh"] != nil }), ShouldBeTrue)
			})
		})

		Convey("A negative min year is rejected", func() {
			_, err := svc.Refresh(ctx, -1)
			So(errors.Is(err, service.ErrInvalidMinYear), ShouldBeTrue)
		})
	})

	Convey("Given a busy worker and a small queue", t, func() {
		b := &stubBuilder{}
		svc := service.New(b, service.WithQueueSize(1))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		release := make(chan struct{})
		b.mu.Lock()
		b.block = release
		b.mu.Unlock()

		Convey("Then extra refreshes are rejected", func() {
			var rejected bool
			for i := 0; i < 3; i++ {
				if _, err := svc.Refresh(ctx, 0); errors.Is(err, service.ErrQueueFull) {
					rejected = true
				}
			}
			So(rejected, ShouldBeTrue)
			close(release)
			svc.Stop()
		})
	})
}

func TestService_Reads(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(&stubBuilder{})
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("TopN and Rank follow medal score", func() {
			top, err := svc.TopN(ctx, sydney, 10)
			So(err, ShouldBeNil)
			So(top, ShouldHaveLength, 2)
			So(top[0].Code, ShouldEqual, "USA")

			e, err := svc.Rank(ctx, sydney, "CAN")
			So(err, ShouldBeNil)
			So(e.Rank, ShouldEqual, 2)

			_, err = svc.Rank(ctx, sydney, "ZZZ")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Profile scales the bucket", func() {
			profiles, err := svc.Profile(ctx, sydney)
			So(err, ShouldBeNil)
			So(profiles, ShouldContainKey, "USA")
			So(profiles["USA"]["gdpPerCapita"], ShouldEqual, 2.0)
		})

		Convey("Disciplines are listed", func() {
			names, err := svc.Disciplines(ctx, sydney)
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"Rowing", "Swimming"})

			_, err = svc.Disciplines(ctx, model.YearSeasonKey{Year: 1900, Season: "Summer"})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Series filter by season", func() {
			series, err := svc.Series(ctx, insights.SeasonWinter, 0)
			So(err, ShouldBeNil)
			So(series, ShouldHaveLength, 1)
			So(series[0].Country, ShouldEqual, "Norway")

			_, err = svc.Series(ctx, "Autumn", 0)
			So(errors.Is(err, service.ErrInvalidSeason), ShouldBeTrue)
		})

		Convey("MedalsVsGDP is served per year", func() {
			points, err := svc.MedalsVsGDP(ctx, 2000)
			So(err, ShouldBeNil)
			So(points, ShouldHaveLength, 1)

			_, err = svc.MedalsVsGDP(ctx, 2004)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
