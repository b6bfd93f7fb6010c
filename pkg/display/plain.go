package display

import (
	"fmt"
	"io"

	"github.com/haivivi/livescribe/pkg/meter"
)

// PlainSurface writes one line per paragraph and ignores the meter.
type PlainSurface struct {
	W io.Writer
}

// AppendParagraph implements Surface.
func (s PlainSurface) AppendParagraph(text string) {
	fmt.Fprintln(s.W, text)
}

// MeterWidth implements Surface.
func (PlainSurface) MeterWidth() int { return 0 }

// DrawBar implements Surface.
func (PlainSurface) DrawBar(int, meter.RGB) {}

// DrawPeak implements Surface.
func (PlainSurface) DrawPeak(int) {}

// SetReadout implements Surface.
func (PlainSurface) SetReadout(string) {}
