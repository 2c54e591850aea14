package aggregate_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/aggregate"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/reconcile"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func result(year int, season, discipline, event, noc, athlete, medal string) model.ResultRow {
	return model.ResultRow{
		Year:       year,
		Season:     season,
		Discipline: discipline,
		Event:      event,
		NOC:        noc,
		AthleteID:  athlete,
		Medal:      medal,
	}
}

func TestAggregator(t *testing.T) {
	ctx := context.Background()
	regions := reconcile.NewRegionMap([]model.NOCRegion{
		{NOC: "USA", Region: "United States"},
		{NOC: "GBR", Region: "UK"},
	})

	Convey("Given a single archery gold", t, func() {
		rows := []model.ResultRow{
			result(2000, "Summer", "Archery", "Men's Individual (Olympic)", "USA", "A1", "Gold"),
		}
		data, rep := aggregate.New().Aggregate(ctx, rows, regions)

		Convey("Then the bucket holds the expected stats", func() {
			stats := data[model.YearSeasonKey{Year: 2000, Season: "Summer"}]["USA"]
			So(stats, ShouldNotBeNil)
			So(stats.CountryName, ShouldEqual, "United States")
			So(stats.TotalGold, ShouldEqual, 1)
			So(stats.TotalMedals, ShouldEqual, 1)
			So(stats.MedalScore, ShouldEqual, 3)
			So(stats.Disciplines["Archery"], ShouldResemble, &model.DisciplineStats{Score: 3, Total: 1, Gold: 1})
			So(rep.Buckets, ShouldEqual, 1)
			So(rep.Counted, ShouldEqual, 1)
		})
	})

	Convey("Given a team event shared by several athletes", t, func() {
		rows := []model.ResultRow{
			result(2004, "Summer", "Rowing", "Men's Eight (Olympic)", "GBR", "R1", "Silver"),
			result(2004, "Summer", "Rowing", "Men's Eight (Olympic)", "GBR", "R2", "Silver"),
			result(2004, "Summer", "Rowing", "Men's Eight (Olympic)", "GBR", "R3", "Silver"),
		}
		data, rep := aggregate.New().Aggregate(ctx, rows, regions)

		Convey("Then the medal counts once for the country", func() {
			stats := data[model.YearSeasonKey{Year: 2004, Season: "Summer"}]["GBR"]
			So(stats.TotalSilver, ShouldEqual, 1)
			So(stats.TotalMedals, ShouldEqual, 1)
			So(stats.MedalScore, ShouldEqual, 2)
			So(rep.Duplicates, ShouldEqual, 2)
		})
	})

	Convey("Given the same event in two different games", t, func() {
		rows := []model.ResultRow{
			result(2000, "Summer", "Rowing", "Men's Eight (Olympic)", "GBR", "R1", "Gold"),
			result(2004, "Summer", "Rowing", "Men's Eight (Olympic)", "GBR", "R1", "Gold"),
		}
		data, _ := aggregate.New().Aggregate(ctx, rows, regions)

		Convey("Then dedup is scoped to each bucket", func() {
			So(data[model.YearSeasonKey{Year: 2000, Season: "Summer"}]["GBR"].TotalGold, ShouldEqual, 1)
			So(data[model.YearSeasonKey{Year: 2004, Season: "Summer"}]["GBR"].TotalGold, ShouldEqual, 1)
		})
	})

	Convey("Given participants without medals and an unmapped NOC", t, func() {
		rows := []model.ResultRow{
			result(2002, "Winter", "Luge", "Singles (Olympic)", "JAM", "J1", ""),
			result(2002, "Winter", "Luge", "Singles (Olympic)", "USA", "U1", "NA"),
		}
		data, rep := aggregate.New().Aggregate(ctx, rows, regions)
		bucket := data[model.YearSeasonKey{Year: 2002, Season: "Winter"}]

		Convey("Then every NOC gets an entry with zero medals", func() {
			So(len(bucket), ShouldEqual, 2)
			So(bucket["JAM"].TotalMedals, ShouldEqual, 0)
			So(bucket["JAM"].Disciplines, ShouldBeEmpty)
			So(bucket["USA"].MedalScore, ShouldEqual, 0)
			So(rep.Unscored, ShouldEqual, 2)
		})

		Convey("And unmapped NOCs are named Unknown", func() {
			So(bucket["JAM"].CountryName, ShouldEqual, model.UnknownCountry)
		})
	})

	Convey("Given a custom medal table", t, func() {
		agg := aggregate.New(aggregate.WithScoring(scoring.New(scoring.WithValuesFromConfig(map[string]int{"bronze": 0}))))
		rows := []model.ResultRow{
			result(2008, "Summer", "Judo", "Men's -60 kg (Olympic)", "USA", "U1", "Bronze"),
			result(2008, "Summer", "Judo", "Men's -66 kg (Olympic)", "USA", "U2", "Gold"),
		}
		data, _ := aggregate.New().Aggregate(ctx, rows, regions)
		custom, _ := agg.Aggregate(ctx, rows, regions)
		key := model.YearSeasonKey{Year: 2008, Season: "Summer"}

		Convey("Then zero-valued tiers are not counted", func() {
			So(data[key]["USA"].TotalMedals, ShouldEqual, 2)
			So(custom[key]["USA"].TotalMedals, ShouldEqual, 1)
			So(custom[key]["USA"].TotalBronze, ShouldEqual, 0)
		})
	})

	Convey("Given a large random set of rows", t, func() {
		rng := rand.New(rand.NewSource(7))
		nocs := []string{"USA", "GBR", "FRA", "CHN"}
		seasons := []string{"Summer", "Winter"}
		medals := []string{"Gold", "Silver", "Bronze", "", "NA"}
		disciplines := []string{"Rowing", "Fencing", "Judo"}
		rows := make([]model.ResultRow, 0, 2000)
		for i := 0; i < 2000; i++ {
			rows = append(rows, result(
				2000+2*rng.Intn(6),
				seasons[rng.Intn(len(seasons))],
				disciplines[rng.Intn(len(disciplines))],
				fmt.Sprintf("Event %d (Olympic)", rng.Intn(5)),
				nocs[rng.Intn(len(nocs))],
				fmt.Sprintf("A%d", rng.Intn(300)),
				medals[rng.Intn(len(medals))],
			))
		}
		data, rep := aggregate.New().Aggregate(ctx, rows, regions)

		Convey("Then every entry is internally consistent", func() {
			for _, bucket := range data {
				for _, s := range bucket {
					So(s.TotalMedals, ShouldEqual, s.TotalGold+s.TotalSilver+s.TotalBronze)
					So(s.MedalScore, ShouldEqual, 3*s.TotalGold+2*s.TotalSilver+s.TotalBronze)

					var sum model.DisciplineStats
					for _, d := range s.Disciplines {
						So(d.Total, ShouldEqual, d.Gold+d.Silver+d.Bronze)
						So(d.Score, ShouldEqual, 3*d.Gold+2*d.Silver+d.Bronze)
						sum.Score += d.Score
						sum.Total += d.Total
						sum.Gold += d.Gold
						sum.Silver += d.Silver
						sum.Bronze += d.Bronze
					}
					So(sum, ShouldResemble, model.DisciplineStats{
						Score:  s.MedalScore,
						Total:  s.TotalMedals,
						Gold:   s.TotalGold,
						Silver: s.TotalSilver,
						Bronze: s.TotalBronze,
					})
				}
			}
		})

		Convey("And every row is accounted for", func() {
			So(rep.Counted+rep.Duplicates+rep.Unscored, ShouldEqual, rep.Rows)
			So(rep.Countries, ShouldEqual, data.Entries())
		})

		Convey("And buckets only hold rows of their own year and season", func() {
			for _, r := range rows {
				So(data[r.Key()], ShouldContainKey, r.NOC)
			}
			So(len(data), ShouldBeLessThanOrEqualTo, 12)
		})
	})
}

func TestAthleteCounts(t *testing.T) {
	Convey("Given raw rows with repeated athletes", t, func() {
		rows := []model.RawResultRow{
			{Year: "2000", NOC: "USA", AthleteID: "A1", Event: "100m"},
			{Year: "2000", NOC: "USA", AthleteID: "A1", Event: "200m"},
			{Year: "2000", NOC: "USA", AthleteID: "A2"},
			{Year: "2004", NOC: "USA", AthleteID: "A1"},
			{Year: "2000", NOC: "FRA", AthleteID: "F1"},
			{Year: "", NOC: "FRA", AthleteID: "F2"},
			{Year: "2000", NOC: "", AthleteID: "F3"},
			{Year: "2000", NOC: "FRA", AthleteID: ""},
		}
		table := aggregate.AthleteCounts(rows)

		Convey("Then each athlete counts once per NOC per year", func() {
			So(len(table.Records), ShouldEqual, 2)
			So(table.Records[0], ShouldResemble, model.Record{"Country Code": "USA", "2000": "2", "2004": "1"})
			So(table.Records[1], ShouldResemble, model.Record{"Country Code": "FRA", "2000": "1"})
		})

		Convey("And the header lists the code then the sorted years", func() {
			So(table.Columns, ShouldResemble, []string{"Country Code", "2000", "2004"})
		})
	})
}
