package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/PolySpeedRunners/INF8808-Project/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKey(t *testing.T) {
	Convey("Given the fields of a team medal", t, func() {
		key := dedupe.Key("Rowing", "Men's Eight (Olympic)", "GBR", "Gold")

		Convey("Then the key joins them with dashes", func() {
			So(key, ShouldEqual, "Rowing-Men's Eight (Olympic)-GBR-Gold")
		})

		Convey("And the athlete does not take part in the key", func() {
			So(dedupe.Key("Rowing", "Men's Eight (Olympic)", "GBR", "Gold"), ShouldEqual, key)
			So(dedupe.Key("Rowing", "Men's Eight (Olympic)", "GBR", "Silver"), ShouldNotEqual, key)
		})
	})
}

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithSizeHint(16))
		ctx := context.Background()

		Convey("Then it starts empty", func() {
			So(d, ShouldNotBeNil)
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When a key is recorded for the first time", func() {
			seen := d.SeenAndRecord(ctx, "k1")

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And a second record reports it as seen", func() {
				So(d.SeenAndRecord(ctx, "k1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When many keys are recorded", func() {
			for i := 0; i < 1000; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("k-%d", i)), ShouldBeFalse)
			}

			Convey("Then none is evicted", func() {
				So(d.Size(), ShouldEqual, 1000)
				So(d.SeenAndRecord(ctx, "k-0"), ShouldBeTrue)
			})
		})

		Convey("When the deduper is reset", func() {
			d.SeenAndRecord(ctx, "k1")
			d.Reset()

			Convey("Then previous keys are forgotten", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "k1"), ShouldBeFalse)
			})
		})
	})
}

func TestDedupeConcurrency(t *testing.T) {
	Convey("Given a deduper with concurrent access", t, func() {
		d := dedupe.NewInMemoryDeduper()
		const goroutines = 10
		const perGoroutine = 100

		Convey("When goroutines record overlapping keys", func() {
			var wg sync.WaitGroup
			var mu sync.Mutex
			newKeys := 0
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < perGoroutine; j++ {
						if !d.SeenAndRecord(context.Background(), fmt.Sprintf("k-%d", j)) {
							mu.Lock()
							newKeys++
							mu.Unlock()
						}
					}
				}()
			}
			wg.Wait()

			Convey("Then each key is new exactly once", func() {
				So(newKeys, ShouldEqual, perGoroutine)
				So(d.Size(), ShouldEqual, int64(perGoroutine))
			})
		})
	})
}
