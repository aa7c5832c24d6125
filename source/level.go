package source

import (
	"strconv"

	"github.com/samber/mo"
)

// Level is one selectable rendition of an item. It is immutable once loaded.
type Level struct {
	// File locates the rendition.
	File string `json:"file"`
	// Label is shown to users (e.g. "1080p").
	Label string `json:"label,omitempty"`
	// Type is the container or stream type (e.g. "mp4", "hls", "aac").
	Type string `json:"type,omitempty"`
	// Default marks the rendition picked when no label preference matches.
	Default bool `json:"default,omitempty"`
	// Preload is applied to the element when the level is bound.
	Preload string `json:"preload,omitempty"`
	// AndroidHLS overrides native HLS handling on Android.
	AndroidHLS mo.Option[bool] `json:"androidhls"`
	// Headers required by the host serving File.
	Headers map[string]string `json:"headers,omitempty"`
}

// String returns the label or the locator.
func (l Level) String() string {
	if l.Label != "" {
		return l.Label
	}
	return l.File
}

// PublicLevel is the part of a Level exposed to observers.
type PublicLevel struct {
	Label string `json:"label"`
}

// PublicLevels strips levels down to their labels, falling back to the index.
// It returns nil for an empty list.
func PublicLevels(levels []Level) []PublicLevel {
	if len(levels) == 0 {
		return nil
	}

	public := make([]PublicLevel, len(levels))
	for i, l := range levels {
		label := l.Label
		if label == "" {
			label = strconv.Itoa(i)
		}
		public[i] = PublicLevel{Label: label}
	}
	return public
}
