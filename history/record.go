package history

import (
	"fmt"
	"time"

	"github.com/steadyplay/steadyplay/util"
)

// Record is the last known playback position of a target.
type Record struct {
	Target    string    `json:"target"`
	Resolver  string    `json:"resolver"`
	Title     string    `json:"title"`
	Quality   string    `json:"quality,omitempty"`
	Position  float64   `json:"position"`
	Duration  float64   `json:"duration"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Progress is the watched fraction, 0 when the duration is unknown.
func (r *Record) Progress() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return util.Clamp(r.Position/r.Duration, 0, 1)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s : %s / %s", r.Title, util.FormatSeconds(r.Position), util.FormatSeconds(r.Duration))
}
