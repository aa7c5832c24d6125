package media

// Event is a raw lifecycle event emitted by an Element.
type Event int

const (
	DurationChange Event = iota + 1
	TimeUpdate
	CanPlay
	Playing
	Progress
	Pause
	Seeked
	Ended
	Error
	LoadedMetadata
	FullscreenBegin
	FullscreenEnd
	VolumeChange
	Click
)

var eventNames = map[Event]string{
	DurationChange:  "durationchange",
	TimeUpdate:      "timeupdate",
	CanPlay:         "canplay",
	Playing:         "playing",
	Progress:        "progress",
	Pause:           "pause",
	Seeked:          "seeked",
	Ended:           "ended",
	Error:           "error",
	LoadedMetadata:  "loadedmetadata",
	FullscreenBegin: "fullscreenbegin",
	FullscreenEnd:   "fullscreenend",
	VolumeChange:    "volumechange",
	Click:           "click",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// Events lists every raw event in declaration order.
func Events() []Event {
	return []Event{
		DurationChange, TimeUpdate, CanPlay, Playing, Progress, Pause, Seeked,
		Ended, Error, LoadedMetadata, FullscreenBegin, FullscreenEnd,
		VolumeChange, Click,
	}
}
