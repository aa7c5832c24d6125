package cache

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCache(t *testing.T) {
	Convey("Keys ignore case and spaces", t, func() {
		So(GenerateKey("Some Page", "GET"), ShouldEqual, GenerateKey("somepage", "GET"))
		So(GenerateKey("somepage", "GET"), ShouldNotEqual, GenerateKey("somepage", "POST"))
	})

	Convey("Given a written entry", t, func() {
		type entry struct{ Body string }
		key := GenerateKey("https://example.com", "GET")
		So(Write(key, entry{Body: "hello"}), ShouldBeNil)

		Convey("It can be read back", func() {
			var got entry
			So(Read(key, &got), ShouldBeTrue)
			So(got.Body, ShouldEqual, "hello")
		})

		Convey("It expires after the TTL", func() {
			old := time.Now().Add(-2 * TTL)
			So(filesystem.API().Chtimes(filepath.Join(where.Responses(), key), old, old), ShouldBeNil)

			var got entry
			So(Read(key, &got), ShouldBeFalse)
		})

		Convey("Missing keys are misses", func() {
			var got entry
			So(Read("nope", &got), ShouldBeFalse)
		})
	})
}
