package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	service "github.com/PolySpeedRunners/INF8808-Project/internal/app"
	"github.com/PolySpeedRunners/INF8808-Project/internal/adapters/source"
	"github.com/PolySpeedRunners/INF8808-Project/internal/config"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

var datasets = map[string]string{
	"results.csv": "discipline,type,event,year,noc,athlete_id,medal\n" +
		"Swimming,Summer,100m Freestyle (Olympic),2004,USA,S1,Gold\n" +
		"Swimming,Summer,100m Freestyle (Olympic),2004,AUS,S2,Silver\n" +
		"Luge,Winter,Singles (Olympic),1998,GER,L1,Gold\n",
	"noc_regions.csv":           "NOC,region,notes\nUSA,USA,\nAUS,Australia,\nGER,Germany,\n",
	"gdp_per_country.csv":       "Country Name,Country Code,2004\nAustralia,AUS,600\nUnited States,USA,12000\n",
	"population_by_country.csv": "Country Name,Country Code,2004\nAustralia,AUS,20\nUnited States,USA,290\n",
}

func writeDatasets(t *testing.T) string {
	dir := t.TempDir()
	for name, body := range datasets {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFromConfig(t *testing.T) {
	Convey("Given a config pointing at a data directory", t, func() {
		cfg := config.New()
		cfg.DataDir = writeDatasets(t)
		cfg.DemographyFile = ""
		cfg.GencFile = ""
		cfg.MinYear = 2002
		cfg.MedalValues = map[string]int{"gold": 10}

		svc, err := service.FromConfig(cfg, logger.Discard())
		So(err, ShouldBeNil)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then the service serves the configured data", func() {
			keys, err := svc.Keys(context.Background())
			So(err, ShouldBeNil)
			So(keys, ShouldResemble, []model.YearSeasonKey{{Year: 2004, Season: "Summer"}})

			usa, err := svc.Rank(context.Background(), keys[0], "USA")
			So(err, ShouldBeNil)
			So(usa.MedalScore, ShouldEqual, 10)
		})
	})

	Convey("Given a config with a base URL", t, func() {
		srv := httptest.NewServer(http.FileServer(http.Dir(writeDatasets(t))))
		defer srv.Close()

		cfg := config.New()
		cfg.DataBaseURL = srv.URL
		cfg.DemographyFile = ""
		cfg.GencFile = ""

		Convey("Then datasets are fetched over HTTP", func() {
			fetcher, err := service.NewFetcher(cfg)
			So(err, ShouldBeNil)
			_, ok := fetcher.(*source.HTTPFetcher)
			So(ok, ShouldBeTrue)

			p, err := service.NewPipeline(cfg, logger.Discard())
			So(err, ShouldBeNil)
			snap, err := p.Run(context.Background(), 0)
			So(err, ShouldBeNil)
			So(snap.Data, ShouldContainKey, model.YearSeasonKey{Year: 2004, Season: "Summer"})
			So(snap.Data, ShouldNotContainKey, model.YearSeasonKey{Year: 1998, Season: "Winter"})
		})
	})
}
