package custom

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/source"
	lua "github.com/yuin/gopher-lua"
)

func init() {
	filesystem.SetMemMapFs()
}

const resolverScript = `
function ResolveLevels(target)
	return {
		{ file = target .. "/1080.mp4", label = "1080p" },
		{ file = target .. "/480.m3u8", label = "480p", default = true, androidhls = false,
		  headers = { Referer = "https://example.com" } },
	}
end

function ResolveTitle(target)
	return "Title of " .. target
end
`

func TestLevelFromTable(t *testing.T) {
	Convey("levelFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Reads every field", func() {
			tbl := L.NewTable()
			tbl.RawSetString("file", lua.LString("https://cdn.example.com/a.m3u8"))
			tbl.RawSetString("label", lua.LString("720p"))
			tbl.RawSetString("default", lua.LTrue)
			tbl.RawSetString("preload", lua.LString("none"))
			tbl.RawSetString("androidhls", lua.LFalse)

			level, err := levelFromTable(tbl, 1)
			So(err, ShouldBeNil)
			So(level.Label, ShouldEqual, "720p")
			So(level.Type, ShouldEqual, "hls")
			So(level.Default, ShouldBeTrue)
			So(level.Preload, ShouldEqual, "none")
			So(level.AndroidHLS.OrElse(true), ShouldBeFalse)
			So(level.Headers, ShouldBeNil)
		})

		Convey("Leaves unset hints empty", func() {
			tbl := L.NewTable()
			tbl.RawSetString("file", lua.LString("clip.mp4"))

			level, err := levelFromTable(tbl, 1)
			So(err, ShouldBeNil)
			So(level.Default, ShouldBeFalse)
			So(level.AndroidHLS.IsPresent(), ShouldBeFalse)
		})

		Convey("Requires a file", func() {
			tbl := L.NewTable()
			tbl.RawSetString("label", lua.LString("720p"))

			_, err := levelFromTable(tbl, 1)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadResolver(t *testing.T) {
	Convey("Given a resolver script", t, func() {
		So(filesystem.WriteAtomic("/resolvers/example.lua", []byte(resolverScript)), ShouldBeNil)

		r, err := LoadResolver("/resolvers/example.lua")
		So(err, ShouldBeNil)
		So(r.Name(), ShouldEqual, "example")
		So(r.ID(), ShouldEqual, "example custom")

		Convey("Resolving returns its levels in order", func() {
			item, err := r.Resolve(context.Background(), "https://example.com/v")
			So(err, ShouldBeNil)
			So(item.Title, ShouldEqual, "Title of https://example.com/v")
			So(item.Sources, ShouldHaveLength, 2)
			So(item.Sources[0].File, ShouldEqual, "https://example.com/v/1080.mp4")
			So(item.Sources[1].Default, ShouldBeTrue)
			So(item.Sources[1].Headers["Referer"], ShouldEqual, "https://example.com")
		})
	})

	Convey("Scripts without the resolve function are rejected", t, func() {
		So(filesystem.WriteAtomic("/resolvers/broken.lua", []byte(`x = 1`)), ShouldBeNil)

		_, err := LoadResolver("/resolvers/broken.lua")
		So(err, ShouldNotBeNil)
	})

	Convey("Scripts returning nothing usable give an invalid item", t, func() {
		So(filesystem.WriteAtomic("/resolvers/empty.lua", []byte(`function ResolveLevels(t) return { { label = "x" } } end`)), ShouldBeNil)

		r, err := LoadResolver("/resolvers/empty.lua")
		So(err, ShouldBeNil)

		_, err = r.Resolve(context.Background(), "anything")
		So(errors.Is(err, source.ErrInvalidItem), ShouldBeTrue)
	})
}
