package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
}

func TestCompare(t *testing.T) {
	Convey("Versions compare component-wise", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"1.2.3", "1.2.3", 0},
			{"v1.10.0", "1.9.9", 1},
			{"0.3.1", "0.4.0", -1},
			{"1.2", "1.2.0", 0},
			{"1.0.0-rc1", "1.0.0", -1},
			{"1.0.0-rc2", "1.0.0-rc1", 1},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}

		_, err := Compare("latest", "1.0.0")
		So(err, ShouldNotBeNil)

		_, err = Compare("1.2.3.4", "1.0.0")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			_, _ = w.Write([]byte(`{"tag_name":"v1.4.2"}`))
		}))
		Reset(server.Close)

		old := ReleasesURL
		ReleasesURL = server.URL
		Reset(func() { ReleasesURL = old })

		Convey("The tag is returned without its prefix and cached", func() {
			v, err := Latest(context.Background())
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "1.4.2")

			v, err = Latest(context.Background())
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "1.4.2")
			So(calls, ShouldEqual, 1)
		})
	})
}
