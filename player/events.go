package player

import (
	"encoding/json"
	"errors"

	"github.com/steadyplay/steadyplay/log"
	"github.com/steadyplay/steadyplay/media"
)

type cacheState struct {
	SeekableRanges []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"seekable-ranges"`
}

// apply folds one mpv event into the mirror and fires the matching element
// events. It runs on the owning goroutine.
func (m *MPV) apply(msg message) {
	switch msg.Event {
	case "property-change":
		m.applyProperty(msg.Name, msg.Data)
	case "file-loaded":
		m.fileLoaded = true
		m.ended = false
		m.lastErr = nil
		m.fire(media.LoadedMetadata)
		m.fire(media.CanPlay)
	case "playback-restart":
		if m.seekIssued {
			m.seekIssued = false
			m.seeking = false
			m.fire(media.Seeked)
		}
		if !m.paused {
			m.fire(media.Playing)
		}
	case "end-file":
		m.applyEndFile(msg)
	case "client-message":
		if len(msg.Args) > 0 && msg.Args[0] == clickMessage {
			m.fire(media.Click)
		}
	default:
		log.Tracef("mpv event %q ignored", msg.Event)
	}
}

func (m *MPV) applyEndFile(msg message) {
	m.fileLoaded = false

	switch msg.Reason {
	case "eof":
		m.ended = true
		m.paused = true
		m.fire(media.Ended)
	case "error":
		reason := msg.FileError
		if reason == "" {
			reason = "unknown error"
		}
		m.lastErr = errors.New(reason)
		m.fire(media.Error)
	}
}

func (m *MPV) applyProperty(name string, data json.RawMessage) {
	// null means the property is unavailable, e.g. nothing is loaded
	if len(data) == 0 || string(data) == "null" {
		switch name {
		case "time-pos":
			m.timePos = 0
		case "duration":
			m.duration = 0
		}
		return
	}

	switch name {
	case "time-pos":
		if decode(name, data, &m.timePos) {
			m.fire(media.TimeUpdate)
		}
	case "duration":
		if decode(name, data, &m.duration) {
			m.fire(media.DurationChange)
		}
	case "pause":
		var paused bool
		if !decode(name, data, &paused) || paused == m.paused {
			return
		}
		m.paused = paused
		if paused {
			m.fire(media.Pause)
		} else if m.fileLoaded {
			m.fire(media.Playing)
		}
	case "seeking":
		decode(name, data, &m.seeking)
	case "volume":
		var percent float64
		if decode(name, data, &percent) {
			m.volume = percent / 100
			m.fire(media.VolumeChange)
		}
	case "mute":
		if decode(name, data, &m.muted) {
			m.fire(media.VolumeChange)
		}
	case "fullscreen":
		var fullscreen bool
		if !decode(name, data, &fullscreen) || fullscreen == m.fullscreen {
			return
		}
		m.fullscreen = fullscreen
		if fullscreen {
			m.fire(media.FullscreenBegin)
		} else {
			m.fire(media.FullscreenEnd)
		}
	case "demuxer-cache-state":
		var state cacheState
		if !decode(name, data, &state) {
			return
		}
		ranges := make(media.TimeRanges, 0, len(state.SeekableRanges))
		for _, r := range state.SeekableRanges {
			ranges = append(ranges, media.TimeRange{Start: r.Start, End: r.End})
		}
		m.ranges = ranges
		m.fire(media.Progress)
	case "width":
		decode(name, data, &m.width)
	case "height":
		decode(name, data, &m.height)
	}
}

func decode(name string, data json.RawMessage, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		log.Debugf("mpv property %s: %v", name, err)
		return false
	}
	return true
}
