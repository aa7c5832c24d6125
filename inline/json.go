package inline

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/steadyplay/steadyplay/event"
	"github.com/steadyplay/steadyplay/source"
)

// Result is the item one resolver produced.
type Result struct {
	Resolver string           `json:"resolver"`
	Item     *source.ItemFile `json:"item"`
}

// Output is the JSON document printed by Run.
type Output struct {
	Target string    `json:"target"`
	Result []*Result `json:"result"`
}

func writeJson(out io.Writer, output *Output) error {
	if output.Result == nil {
		output.Result = []*Result{}
	}
	return json.NewEncoder(out).Encode(output)
}

// Printer writes notifications to an io.Writer, one JSON object per line.
type Printer struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

// NewPrinter returns a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{enc: json.NewEncoder(out)}
}

// Handle prints e. It has the event.Handler signature so it can be passed to OnAll.
// After the first write error further notifications are dropped.
func (p *Printer) Handle(e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return
	}
	p.err = p.enc.Encode(e)
}

// Err returns the first write error.
func (p *Printer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
