package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/steadyplay/steadyplay/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Directories are created on demand", func() {
			for _, dir := range []func() string{Config, Cache, Logs, Resolvers, Responses, Temp} {
				path := dir()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			}
		})

		Convey("Registries live next to their directories", func() {
			So(filepath.Dir(History()), ShouldEqual, Config())
			So(filepath.Dir(Queries()), ShouldEqual, Cache())
		})

		Convey("The config path can be overridden", func() {
			t.Setenv(EnvConfigPath, "/tmp/steadyplay-custom")
			So(Config(), ShouldEqual, "/tmp/steadyplay-custom")
			So(Logs(), ShouldEqual, filepath.Join("/tmp/steadyplay-custom", "logs"))
		})
	})
}
