package hls

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

var errNotPlaylist = errors.New("missing #EXTM3U header")

// Variant is one EXT-X-STREAM-INF entry of a master playlist.
type Variant struct {
	URI       string
	Bandwidth int
	Width     int
	Height    int
	Codecs    string
	Name      string
}

// Playlist is the subset of an M3U8 playlist needed to build quality levels.
type Playlist struct {
	Variants    []Variant
	Segments    int
	StartOffset float64
}

// Master reports whether the playlist lists variants rather than segments.
func (p *Playlist) Master() bool {
	return len(p.Variants) > 0
}

// Parse reads an M3U8 playlist.
func Parse(r io.Reader) (*Playlist, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	if !scanner.Scan() || strings.TrimPrefix(strings.TrimSpace(scanner.Text()), "\ufeff") != "#EXTM3U" {
		return nil, errNotPlaylist
	}

	playlist := &Playlist{}
	var pending *Variant

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
		case strings.HasPrefix(line, "#EXT-X-STREAM-INF:"):
			v := variantOf(attributes(strings.TrimPrefix(line, "#EXT-X-STREAM-INF:")))
			pending = &v
		case strings.HasPrefix(line, "#EXT-X-START:"):
			attrs := attributes(strings.TrimPrefix(line, "#EXT-X-START:"))
			if offset, err := strconv.ParseFloat(attrs["TIME-OFFSET"], 64); err == nil {
				playlist.StartOffset = offset
			}
		case strings.HasPrefix(line, "#EXTINF:"):
			playlist.Segments++
		case strings.HasPrefix(line, "#"):
		case pending != nil:
			pending.URI = line
			playlist.Variants = append(playlist.Variants, *pending)
			pending = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return playlist, nil
}

func variantOf(attrs map[string]string) Variant {
	v := Variant{
		Codecs: attrs["CODECS"],
		Name:   attrs["NAME"],
	}
	v.Bandwidth, _ = strconv.Atoi(attrs["BANDWIDTH"])
	if w, h, ok := strings.Cut(attrs["RESOLUTION"], "x"); ok {
		v.Width, _ = strconv.Atoi(w)
		v.Height, _ = strconv.Atoi(h)
	}
	return v
}

// attributes splits an attribute list, honoring quoted values with commas.
func attributes(list string) map[string]string {
	attrs := make(map[string]string)

	for len(list) > 0 {
		name, rest, ok := strings.Cut(list, "=")
		if !ok {
			break
		}
		name = strings.TrimSpace(name)

		var value string
		if strings.HasPrefix(rest, `"`) {
			end := strings.Index(rest[1:], `"`)
			if end < 0 {
				value, rest = rest[1:], ""
			} else {
				value, rest = rest[1:end+1], rest[end+2:]
			}
			rest = strings.TrimPrefix(rest, ",")
		} else {
			value, rest, _ = strings.Cut(rest, ",")
		}

		attrs[name] = value
		list = rest
	}

	return attrs
}
