package types_test

import (
	"testing"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	Convey("Given country stats", t, func() {
		s := model.NewCountryYearStats("Norway")
		s.AddMedal("Biathlon", model.MedalGold, 3)
		s.AddMedal("Biathlon", model.MedalBronze, 1)

		Convey("When creating an entry", func() {
			e := types.NewEntry("NOR", s)

			Convey("Then it copies the medal counters", func() {
				So(e, ShouldResemble, types.Entry{
					Code:        "NOR",
					CountryName: "Norway",
					MedalScore:  4,
					TotalMedals: 2,
					Gold:        1,
					Bronze:      1,
				})
			})
		})
	})
}

func TestEntryOrdering(t *testing.T) {
	Convey("Given entries", t, func() {
		high := types.Entry{Code: "ZZZ", MedalScore: 10}
		low := types.Entry{Code: "AAA", MedalScore: 3}
		tieA := types.Entry{Code: "CAN", MedalScore: 3}

		Convey("Then a higher score ranks first", func() {
			So(high.Before(low), ShouldBeTrue)
			So(low.Before(high), ShouldBeFalse)
		})

		Convey("And ties go to the lower code", func() {
			So(low.Before(tieA), ShouldBeTrue)
			So(tieA.Before(low), ShouldBeFalse)
		})

		Convey("And an entry does not rank before itself", func() {
			So(low.Before(low), ShouldBeFalse)
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given a bucket with a score tie", t, func() {
		bucket := model.Bucket{
			"USA": model.NewCountryYearStats("USA"),
			"CAN": model.NewCountryYearStats("Canada"),
			"AUS": model.NewCountryYearStats("Australia"),
		}
		bucket["USA"].AddMedal("Swimming", model.MedalGold, 3)
		bucket["CAN"].AddMedal("Rowing", model.MedalBronze, 1)
		bucket["AUS"].AddMedal("Diving", model.MedalBronze, 1)

		Convey("Then entries are ordered by score and code", func() {
			ranked := types.Rank(bucket)
			So(ranked, ShouldHaveLength, 3)
			So(ranked[0].Code, ShouldEqual, "USA")
			So(ranked[1].Code, ShouldEqual, "AUS")
			So(ranked[2].Code, ShouldEqual, "CAN")
			So(ranked[2].Rank, ShouldEqual, 3)
		})
	})
}
