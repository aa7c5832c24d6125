package source

import (
	"net/url"
	"path"
	"strings"
)

var extensionTypes = map[string]string{
	".m3u8": "hls",
	".m3u":  "hls",
	".mpd":  "dash",
	".mp4":  "mp4",
	".m4v":  "mp4",
	".webm": "webm",
	".mkv":  "mkv",
	".mov":  "mov",
	".ogv":  "ogg",
	".oga":  "oga",
	".ogg":  "oga",
	".aac":  "aac",
	".m4a":  "aac",
	".mp3":  "mp3",
	".mpeg": "mpeg",
	".flac": "flac",
	".wav":  "wav",
}

// TypeOf guesses a level type from the extension of a path or URL.
// It returns an empty string when the extension is not known.
func TypeOf(locator string) string {
	p := locator
	if u, err := url.Parse(locator); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	}
	return extensionTypes[strings.ToLower(path.Ext(p))]
}
