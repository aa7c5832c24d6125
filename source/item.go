package source

import (
	"fmt"
	"slices"

	"github.com/samber/mo"
)

// MediaType tells whether an item carries a picture.
type MediaType string

const (
	Audio MediaType = "audio"
	Video MediaType = "video"
)

var audioTypes = []string{"oga", "aac", "mp3", "mpeg", "vorbis"}

// Item is a load payload: an ordered list of levels plus optional start time
// and duration hints.
type Item struct {
	Title     string             `json:"title,omitempty"`
	Sources   []Level            `json:"sources"`
	StartTime mo.Option[float64] `json:"starttime"`
	Duration  mo.Option[float64] `json:"duration"`
}

// Validate reports why an item cannot be played.
func (i *Item) Validate() error {
	if i == nil || len(i.Sources) == 0 {
		return fmt.Errorf("%w: no sources", ErrInvalidItem)
	}
	for n, l := range i.Sources {
		if l.File == "" {
			return fmt.Errorf("%w: source %d has no file", ErrInvalidItem, n)
		}
	}
	return nil
}

// MediaType is Audio when the first level is an audio-only type.
func (i *Item) MediaType() MediaType {
	return MediaTypeOf(i.Sources)
}

// MediaTypeOf classifies levels by the type of the first one.
func MediaTypeOf(levels []Level) MediaType {
	if len(levels) > 0 && slices.Contains(audioTypes, levels[0].Type) {
		return Audio
	}
	return Video
}

// String returns the title or the first locator.
func (i *Item) String() string {
	if i.Title != "" {
		return i.Title
	}
	if len(i.Sources) > 0 {
		return i.Sources[0].File
	}
	return ""
}
