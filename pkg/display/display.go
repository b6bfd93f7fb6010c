// Package display drives a transcript view and a level meter from the
// pipeline queues.
//
// A host UI calls Presenter.Tick on a fixed period (100ms in livescribe).
// Each tick drains every pending transcript into the surface and, if a new
// level sample arrived, updates the meter state and redraws the meter. Tick
// never blocks.
package display

import (
	"time"

	"github.com/haivivi/livescribe/pkg/buffer"
	"github.com/haivivi/livescribe/pkg/meter"
	"github.com/haivivi/livescribe/pkg/pipeline"
)

// TickInterval is the presentation period.
const TickInterval = 100 * time.Millisecond

// Surface is where the presenter draws.
type Surface interface {
	// AppendParagraph adds a paragraph to the transcript view and scrolls to it.
	AppendParagraph(text string)
	// MeterWidth returns the width available to the meter bar, in cells.
	MeterWidth() int
	// DrawBar fills the bar to width cells in the given colour.
	DrawBar(width int, color meter.RGB)
	// DrawPeak places the peak marker at column x.
	DrawPeak(x int)
	// SetReadout sets the numeric level text.
	SetReadout(text string)
}

// Presenter moves queued results onto a Surface.
type Presenter struct {
	Transcripts *buffer.Queue[pipeline.Transcript]
	Levels      *buffer.Latest[float64]
	Surface     Surface
	// Timestamps prefixes paragraphs with the block offset.
	Timestamps bool

	state meter.State
	batch []pipeline.Transcript
}

// Tick runs one presentation step. It reports whether anything was drawn.
func (p *Presenter) Tick() bool {
	drew := false

	p.batch = p.Transcripts.Drain(p.batch[:0])
	for _, t := range p.batch {
		p.Surface.AppendParagraph(Paragraph(t, p.Timestamps))
		drew = true
	}
	clear(p.batch)

	if level, ok := p.Levels.Take(); ok {
		p.state.Update(level)
		width := p.Surface.MeterWidth()
		p.Surface.DrawBar(p.state.BarWidth(width), p.state.Color())
		p.Surface.DrawPeak(p.state.PeakX(width))
		p.Surface.SetReadout(meter.Readout(p.state.EMA))
		drew = true
	}
	return drew
}

// Meter returns the current meter state.
func (p *Presenter) Meter() meter.State {
	return p.state
}

// Paragraph formats a transcript for display.
func Paragraph(t pipeline.Transcript, timestamps bool) string {
	if timestamps {
		return "[" + t.Timestamp() + "] " + t.String()
	}
	return t.String()
}
