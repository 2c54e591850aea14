package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/source"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/pipeline"
	. "github.com/smartystreets/goconvey/convey"
)

// memFetcher serves CSV documents from memory.
type memFetcher struct {
	mu    sync.Mutex
	files map[string]string
	fail  map[string]error
	opens []string
}

func (f *memFetcher) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens = append(f.opens, name)
	if err, ok := f.fail[name]; ok {
		return nil, err
	}
	body, ok := f.files[name]
	if !ok {
		return nil, fmt.Errorf("no such dataset %q", name)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func fixtures() map[string]string {
	return map[string]string{
		"results.csv": "discipline,type,event,year,noc,athlete_id,medal\n" +
			"Archery,Summer,Men's Individual (Olympic),2000,USA,A1,Gold\n" +
			"Rowing,Summer,Men's Eight (Olympic),2000,GBR,R1,Silver\n" +
			"Rowing,Summer,Men's Eight (Olympic),2000,GBR,R2,Silver\n" +
			"Rowing,Summer,Men's Eight (Olympic),2000,GER,G1,\n" +
			"Athletics,Summer,Men's 100m (Olympic),1996,USA,A9,Gold\n" +
			"Art Competitions,Summer,Painting,2000,FRA,F1,Gold\n" +
			"Luge,Winter,Singles (Olympic),2002,USA,A2,Bronze\n",
		"noc_regions.csv": "NOC,region,notes\n" +
			"USA,United States,\n" +
			"GBR,UK,\n" +
			"GER,Germany,\n" +
			"FRA,France,\n",
		"gdp_per_country.csv": "Country Name,Country Code,2000,2002\n" +
			"United States,USA,10250000000000,10930000000000\n" +
			"Germany,DEU,1950000000000,2080000000000\n",
		"population_by_country.csv": "Country Name,Country Code,2000,2002\n" +
			"United States,USA,282000000,287000000\n" +
			"Germany,DEU,82000000,82500000\n" +
			"UK,GBR,58900000,59400000\n",
		"demography.csv": "YEAR,GEO_ID,TFR,POP,POP15_19,POP20_24,DEATHS\n" +
			"2000,US,2.05,282000000,20000000,19000000,2400000\n",
		"genc_region.csv": "COUNTRY NAME,GENC DIGRAPH,LEGACY ISO 3\n" +
			"United States,US,USA\n",
		"medals_2000.csv": "country_code,country,Total\n" +
			"USA,USA,93\n" +
			"GBR,Great Britain,28\n",
	}
}

func newPipeline(f *memFetcher, opts ...pipeline.Option) *pipeline.Pipeline {
	return pipeline.New(source.NewLoader(f), opts...)
}

func TestPipelineRun(t *testing.T) {
	ctx := context.Background()
	built := time.Date(2024, 7, 26, 0, 0, 0, 0, time.UTC)

	Convey("Given every dataset", t, func() {
		f := &memFetcher{files: fixtures()}
		datasets := pipeline.DefaultDatasets()
		datasets.MedalYears = []int{2000}
		p := newPipeline(f, pipeline.WithDatasets(datasets), pipeline.WithClock(func() time.Time { return built }))

		snap, err := p.Run(ctx, 0)
		So(err, ShouldBeNil)
		summer := snap.Data[model.YearSeasonKey{Year: 2000, Season: "Summer"}]

		Convey("Then the snapshot is stamped", func() {
			So(snap.RunID, ShouldNotBeEmpty)
			So(snap.BuiltAt, ShouldEqual, built)
			So(snap.MinYear, ShouldEqual, 2000)
		})

		Convey("And results are filtered and bucketed", func() {
			So(len(snap.Data), ShouldEqual, 2)
			So(summer, ShouldNotContainKey, "FRA")
			So(summer["USA"].TotalGold, ShouldEqual, 1)
			So(summer["USA"].CountryName, ShouldEqual, "United States")
		})

		Convey("And team medals count once", func() {
			So(summer["GBR"].TotalSilver, ShouldEqual, 1)
			So(summer["GBR"].MedalScore, ShouldEqual, 2)
		})

		Convey("And auxiliary values are joined", func() {
			So(*summer["USA"].GDP, ShouldEqual, 10250000000000.0)
			So(*summer["GER"].GDP, ShouldEqual, 1950000000000.0)
			So(summer["GBR"].GDP, ShouldBeNil)
			So(*summer["GBR"].Population, ShouldEqual, 58900000.0)
		})

		Convey("And athlete counts come from raw rows", func() {
			So(*summer["GBR"].AthCount, ShouldEqual, 2.0)
			So(*summer["GER"].AthCount, ShouldEqual, 1.0)
			So(*summer["USA"].AthCount, ShouldEqual, 1.0)
		})

		Convey("And demography is merged", func() {
			So(*summer["USA"].TFR, ShouldEqual, 2.05)
			So(*summer["USA"].Population, ShouldEqual, 282000000.0)
			So(*summer["GER"].TFR, ShouldEqual, 0.0)
			winter := snap.Data[model.YearSeasonKey{Year: 2002, Season: "Winter"}]
			So(winter["USA"].TFR, ShouldBeNil)
		})

		Convey("And the medals-vs-GDP table is built", func() {
			points := snap.MedalsVsGDP[2000]
			So(len(points), ShouldEqual, 1)
			So(points[0].CountryCode, ShouldEqual, "USA")
			So(points[0].Rank, ShouldEqual, 1)
		})
	})

	Convey("Given a later minimum year", t, func() {
		f := &memFetcher{files: fixtures()}
		snap, err := newPipeline(f).Run(ctx, 2002)

		Convey("Then earlier games are dropped", func() {
			So(err, ShouldBeNil)
			So(snap.MinYear, ShouldEqual, 2002)
			So(snap.Data.Keys(), ShouldResemble, []model.YearSeasonKey{{Year: 2002, Season: "Winter"}})
		})
	})

	Convey("Given no demography datasets", t, func() {
		files := fixtures()
		delete(files, "demography.csv")
		delete(files, "genc_region.csv")
		datasets := pipeline.DefaultDatasets()
		datasets.Demography = ""
		f := &memFetcher{files: files}
		snap, err := newPipeline(f, pipeline.WithDatasets(datasets)).Run(ctx, 0)

		Convey("Then demography fields stay nil", func() {
			So(err, ShouldBeNil)
			usa := snap.Data[model.YearSeasonKey{Year: 2000, Season: "Summer"}]["USA"]
			So(usa.TFR, ShouldBeNil)
			So(*usa.Population, ShouldEqual, 282000000.0)
		})

		Convey("And the demography files are not fetched", func() {
			So(f.opens, ShouldNotContain, "genc_region.csv")
			So(f.opens, ShouldContain, "results.csv")
		})
	})

	Convey("Given a dataset that fails to load", t, func() {
		boom := errors.New("connection reset")
		f := &memFetcher{files: fixtures(), fail: map[string]error{"gdp_per_country.csv": boom}}
		snap, err := newPipeline(f).Run(ctx, 0)

		Convey("Then the run fails without a snapshot", func() {
			So(snap, ShouldBeNil)
			So(errors.Is(err, pipeline.ErrLoad), ShouldBeTrue)
			So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})

	Convey("Given the same inputs twice", t, func() {
		f := &memFetcher{files: fixtures()}
		p := newPipeline(f)
		first, err1 := p.Run(ctx, 0)
		second, err2 := p.Run(ctx, 0)

		Convey("Then both runs build the same data", func() {
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(second.Data, ShouldResemble, first.Data)
			So(second.RunID, ShouldNotEqual, first.RunID)
		})
	})
}
