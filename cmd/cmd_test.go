package cmd

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/steadyplay/steadyplay/auth"
	"github.com/steadyplay/steadyplay/config"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/history"
	"github.com/steadyplay/steadyplay/key"
	"github.com/steadyplay/steadyplay/source"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
}

func levels(labels ...string) []source.Level {
	out := make([]source.Level, len(labels))
	for i, l := range labels {
		out[i] = source.Level{File: "https://cdn.example.com/" + l + ".mp4", Label: l}
	}
	return out
}

func TestMatchQuality(t *testing.T) {
	Convey("Given levels 1080p, 720p and 480p", t, func() {
		ls := levels("1080p", "720p", "480p")

		Convey("An exact label wins", func() {
			So(matchQuality(ls, "720p").MustGet(), ShouldEqual, "720p")
		})

		Convey("A partial label is matched fuzzily", func() {
			So(matchQuality(ls, "48").MustGet(), ShouldEqual, "480p")
			So(matchQuality(ls, "720").MustGet(), ShouldEqual, "720p")
		})

		Convey("Nothing matches an unrelated query", func() {
			So(matchQuality(ls, "4k").IsAbsent(), ShouldBeTrue)
		})

		Convey("Unlabeled levels are ignored", func() {
			So(matchQuality([]source.Level{{File: "a.mp4"}}, "a").IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestPreferredQuality(t *testing.T) {
	Convey("Given an item with labeled levels", t, func() {
		item := &source.Item{Sources: levels("1080p", "720p")}

		Convey("The quality flag is matched against the levels", func() {
			label, err := preferredQuality(item, &playOptions{Quality: "72"}, "1080p")
			So(err, ShouldBeNil)
			So(label, ShouldEqual, "720p")
		})

		Convey("An unmatched flag falls back", func() {
			label, err := preferredQuality(item, &playOptions{Quality: "4k"}, "1080p")
			So(err, ShouldBeNil)
			So(label, ShouldEqual, "1080p")
		})

		Convey("Without a flag the fallback is used", func() {
			label, err := preferredQuality(item, &playOptions{}, "")
			So(err, ShouldBeNil)
			So(label, ShouldBeEmpty)
		})
	})
}

func TestHeadersFor(t *testing.T) {
	Convey("Given a stored token and a level asking for headers", t, func() {
		So(auth.SetToken("cdn.example.com", "secret"), ShouldBeNil)
		Reset(func() { _ = auth.DeleteToken("cdn.example.com") })

		item := &source.Item{Sources: levels("720p")}
		item.Sources[0].Headers = map[string]string{"Referer": "https://example.com"}
		headers := headersFor(item)

		Convey("Both are sent for the level", func() {
			h := headers(item.Sources[0].File)
			So(h["Authorization"], ShouldEqual, "Bearer secret")
			So(h["Referer"], ShouldEqual, "https://example.com")
		})

		Convey("Only the token is sent for other locators on the host", func() {
			h := headers("https://cdn.example.com/other.mp4")
			So(h, ShouldResemble, map[string]string{"Authorization": "Bearer secret"})
		})

		Convey("Nothing is sent to unknown hosts", func() {
			So(headers("https://elsewhere.example.org/a.mp4"), ShouldBeEmpty)
		})
	})
}

func TestParseValue(t *testing.T) {
	Convey("Values are parsed by the type of the default", t, func() {
		v, err := parseValue(config.Default[key.ProviderStallDelay], []string{"500"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 500)

		_, err = parseValue(config.Default[key.ProviderStallDelay], []string{"-1"})
		So(err, ShouldNotBeNil)

		v, err = parseValue(config.Default[key.HistorySave], []string{"false"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, false)

		v, err = parseValue(config.Default[key.PlayerExtraArgs], []string{"--mute", "--no-video"})
		So(err, ShouldBeNil)
		So(v, ShouldResemble, []string{"--mute", "--no-video"})

		_, err = parseValue(config.Default[key.ProviderName], nil)
		So(err, ShouldNotBeNil)
	})

	Convey("Platform profiles must exist", t, func() {
		v, err := parseValue(config.Default[key.PlatformProfile], []string{"ios"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "ios")

		_, err = parseValue(config.Default[key.PlatformProfile], []string{"amiga"})
		So(err, ShouldNotBeNil)
	})
}

func TestRemember(t *testing.T) {
	Convey("Given a played target", t, func() {
		viper.Set(key.HistoryMinPosition, 10)
		Reset(func() { viper.Set(key.HistoryMinPosition, config.Default[key.HistoryMinPosition].Value) })

		const target = "https://example.com/movie.m3u8"
		item := &source.Item{Title: "Movie", Sources: levels("720p")}
		Reset(func() { _ = history.Remove(target) })

		Convey("A position past the minimum is recorded", func() {
			So(remember(target, "hls", item, &tracking{position: 42, duration: 100, quality: "720p"}), ShouldBeNil)

			records, err := history.Get()
			So(err, ShouldBeNil)
			So(records[target].Position, ShouldEqual, 42)
			So(records[target].Quality, ShouldEqual, "720p")
			So(records[target].Resolver, ShouldEqual, "hls")
		})

		Convey("A position before the minimum is not", func() {
			So(remember(target, "hls", item, &tracking{position: 3}), ShouldBeNil)
			So(history.Position(target).IsAbsent(), ShouldBeTrue)
		})

		Convey("A completed target is forgotten", func() {
			So(remember(target, "hls", item, &tracking{position: 42}), ShouldBeNil)
			So(remember(target, "hls", item, &tracking{position: 99, completed: true}), ShouldBeNil)
			So(history.Position(target).IsAbsent(), ShouldBeTrue)
		})
	})
}
