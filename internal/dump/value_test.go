package dump

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestValue(t *testing.T) {
	Convey("Given the Value variant", t, func() {
		Convey("SQL method", func() {
			Convey("When rendering NULL", func() {
				So(Null().SQL(), ShouldEqual, "NULL")
			})

			Convey("When rendering text with embedded single quotes", func() {
				So(Text("O'Brien").SQL(), ShouldEqual, "'O''Brien'")
				So(Text("it''s").SQL(), ShouldEqual, "'it''''s'")
				So(Text("plain").SQL(), ShouldEqual, "'plain'")
				So(Text("").SQL(), ShouldEqual, "''")
			})

			Convey("When rendering text no other escaping is applied", func() {
				So(Text(`back\slash`).SQL(), ShouldEqual, `'back\slash'`)
			})

			Convey("When rendering timestamps", func() {
				ts := time.Date(2025, 11, 19, 1, 0, 0, 0, time.UTC)

				Convey("It should use ISO-8601 with millisecond precision and trailing Z", func() {
					So(Timestamp(ts).SQL(), ShouldEqual, "'2025-11-19T01:00:00.000Z'")
				})

				Convey("It should truncate sub-millisecond precision", func() {
					fine := ts.Add(123456789 * time.Nanosecond)
					So(Timestamp(fine).SQL(), ShouldEqual, "'2025-11-19T01:00:00.123Z'")
				})

				Convey("It should normalize to UTC", func() {
					loc := time.FixedZone("UTC+7", 7*3600)
					local := time.Date(2025, 11, 19, 8, 0, 0, 0, loc)
					So(Timestamp(local).SQL(), ShouldEqual, "'2025-11-19T01:00:00.000Z'")
					So(Timestamp(local).SQL(), ShouldEndWith, "Z'")
				})
			})

			Convey("When rendering booleans and numbers", func() {
				So(Bool(true).SQL(), ShouldEqual, "true")
				So(Bool(false).SQL(), ShouldEqual, "false")
				So(Number("42").SQL(), ShouldEqual, "42")
				So(Number("-3.14").SQL(), ShouldEqual, "-3.14")
			})

			Convey("When rendering raw passthrough", func() {
				So(Raw("{1,2,3}").SQL(), ShouldEqual, "{1,2,3}")
			})
		})

		Convey("FromDriver function", func() {
			Convey("It should classify driver scan values", func() {
				So(FromDriver(nil).Kind(), ShouldEqual, KindNull)
				So(FromDriver("hello").Kind(), ShouldEqual, KindText)
				So(FromDriver([]byte("bytes")).Kind(), ShouldEqual, KindText)
				So(FromDriver(int64(7)).Kind(), ShouldEqual, KindNumber)
				So(FromDriver(3.5).Kind(), ShouldEqual, KindNumber)
				So(FromDriver(true).Kind(), ShouldEqual, KindBool)
				So(FromDriver(time.Now()).Kind(), ShouldEqual, KindTimestamp)
			})

			Convey("It should render classified values correctly", func() {
				So(FromDriver(int64(42)).SQL(), ShouldEqual, "42")
				So(FromDriver(2.5).SQL(), ShouldEqual, "2.5")
				So(FromDriver([]byte("O'Brien")).SQL(), ShouldEqual, "'O''Brien'")
			})

			Convey("It should pass unknown types through textually", func() {
				v := FromDriver(uint16(9))
				So(v.Kind(), ShouldEqual, KindRaw)
				So(v.SQL(), ShouldEqual, "9")
			})
		})

		Convey("ColumnList function", func() {
			Convey("It should double-quote and comma-join preserving order", func() {
				So(ColumnList([]string{"id", "name"}), ShouldEqual, `"id", "name"`)
				So(ColumnList([]string{"name", "id"}), ShouldEqual, `"name", "id"`)
				So(ColumnList(nil), ShouldEqual, "")
			})
		})

		Convey("QuoteIdent function", func() {
			So(QuoteIdent("users"), ShouldEqual, `"users"`)
			So(strings.Count(QuoteIdent("users"), `"`), ShouldEqual, 2)
		})
	})
}
