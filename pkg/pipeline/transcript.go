package pipeline

import (
	"fmt"
	"time"
)

// Transcript is the result of one block.
type Transcript struct {
	Seq    int           // Block number, from 0
	Offset time.Duration // Audio time of the block start
	Text   string
	Err    error
}

// String returns the text, or "Error: <message>" when the engine failed.
func (t Transcript) String() string {
	if t.Err != nil {
		return "Error: " + t.Err.Error()
	}
	return t.Text
}

// Timestamp formats Offset as mm:ss.
func (t Transcript) Timestamp() string {
	s := int(t.Offset / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
