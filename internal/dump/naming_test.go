package dump

import (
	"sort"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFilename(t *testing.T) {
	Convey("Given the naming policy", t, func() {
		Convey("When deriving a filename from a timestamp", func() {
			ts := time.Date(2025, 11, 19, 1, 0, 0, 0, time.UTC)

			Convey("It should produce the backup-<sanitized ISO>.sql form", func() {
				So(Filename(ts), ShouldEqual, "backup-2025-11-19T01-00-00-000Z.sql")
			})

			Convey("It should normalize non-UTC input", func() {
				loc := time.FixedZone("UTC+7", 7*3600)
				So(Filename(ts.In(loc)), ShouldEqual, "backup-2025-11-19T01-00-00-000Z.sql")
			})
		})

		Convey("When timestamps increase", func() {
			base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			steps := []time.Duration{
				0,
				time.Millisecond,
				999 * time.Millisecond,
				time.Second,
				time.Hour,
				25 * time.Hour,
				31 * 24 * time.Hour,
				400 * 24 * time.Hour,
			}

			names := make([]string, len(steps))
			for i, d := range steps {
				names[i] = Filename(base.Add(d))
			}

			Convey("String sort order should equal chronological order", func() {
				So(sort.StringsAreSorted(names), ShouldBeTrue)
				for i := 1; i < len(names); i++ {
					So(names[i-1], ShouldBeLessThan, names[i])
				}
			})
		})
	})
}
