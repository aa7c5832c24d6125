// Package event carries the notifications a provider publishes to its caller.
package event

import (
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/state"
)

// Type names a notification.
type Type string

const (
	Time               Type = "time"
	BufferChange       Type = "bufferChange"
	BufferFull         Type = "bufferFull"
	Meta               Type = "meta"
	Levels             Type = "levels"
	LevelsChanged      Type = "levelsChanged"
	Seek               Type = "seek"
	Seeked             Type = "seeked"
	Complete           Type = "complete"
	BeforeComplete     Type = "beforeComplete"
	MediaError         Type = "mediaError"
	Volume             Type = "volume"
	Mute               Type = "mute"
	FullscreenChange   Type = "fullscreenchange"
	Click              Type = "click"
	State              Type = "state"
	ProviderFirstFrame Type = "providerFirstFrame"
	MediaType          Type = "mediaType"
)

// Types returns every notification type.
func Types() []Type {
	return []Type{
		Time, BufferChange, BufferFull, Meta, Levels, LevelsChanged, Seek,
		Seeked, Complete, BeforeComplete, MediaError, Volume, Mute,
		FullscreenChange, Click, State, ProviderFirstFrame, MediaType,
	}
}

// Event is a single notification. Data holds one of the payload types below,
// or nil for notifications without a payload.
type Event struct {
	Type Type `json:"type"`
	Data any  `json:"data,omitempty"`
}

// TimeData accompanies Time.
type TimeData struct {
	Position float64 `json:"position"`
	Duration float64 `json:"duration"`
}

// BufferData accompanies BufferChange.
type BufferData struct {
	BufferPercent float64 `json:"bufferPercent"`
	Position      float64 `json:"position"`
	Duration      float64 `json:"duration"`
}

// MetaData accompanies Meta.
type MetaData struct {
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// LevelsData accompanies Levels and LevelsChanged.
type LevelsData struct {
	Levels         []source.PublicLevel `json:"levels"`
	CurrentQuality int                  `json:"currentQuality"`
}

// SeekData accompanies Seek.
type SeekData struct {
	Position float64 `json:"position"`
	Offset   float64 `json:"offset"`
}

// ErrorData accompanies MediaError.
type ErrorData struct {
	Message string `json:"message"`
	Locator string `json:"locator,omitempty"`
	Err     error  `json:"-"`
}

// VolumeData accompanies Volume.
type VolumeData struct {
	Volume int `json:"volume"`
}

// MuteData accompanies Mute.
type MuteData struct {
	Mute bool `json:"mute"`
}

// FullscreenData accompanies FullscreenChange.
type FullscreenData struct {
	Fullscreen bool `json:"fullscreen"`
}

// StateData accompanies State.
type StateData struct {
	New state.State `json:"newstate"`
	Old state.State `json:"oldstate"`
}

// MediaTypeData accompanies MediaType.
type MediaTypeData struct {
	MediaType source.MediaType `json:"mediaType"`
}
