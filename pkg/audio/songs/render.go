package songs

import "math"

// Render mixes every voice of s into mono float32 samples at sampleRate.
// volume scales the mix and is clamped to [0, 1].
func (s Song) Render(sampleRate int, volume float64) []float32 {
	volume = clamp(volume, 0, 1)

	total := 0
	for _, v := range s.Voices {
		if n := s.BeatSamples(v.Beats(), sampleRate); n > total {
			total = n
		}
	}
	if total == 0 {
		return nil
	}

	mix := make([]float64, total)
	for _, v := range s.Voices {
		pos := 0
		for _, n := range v {
			samples := s.BeatSamples(n.Beats, sampleRate)
			renderNote(mix[pos:min(pos+samples, total)], n.Freq, sampleRate)
			pos += samples
		}
	}

	gain := volume / math.Sqrt(float64(max(len(s.Voices), 1)))
	out := make([]float32, total)
	for i, v := range mix {
		out[i] = float32(clamp(v*gain, -1, 1))
	}
	return out
}

// renderNote adds a note with a few decaying harmonics and a short
// attack/release envelope into dst.
func renderNote(dst []float64, freq float64, sampleRate int) {
	if freq == Rest || len(dst) == 0 {
		return
	}
	harmonics := []struct {
		ratio, amplitude, decay float64
	}{
		{1, 1.0, 1.0},
		{2, 0.5, 1.5},
		{3, 0.25, 2.0},
		{4, 0.12, 2.5},
	}
	noteDuration := float64(len(dst)) / float64(sampleRate)
	for i := range dst {
		t := float64(i) / float64(sampleRate)
		progress := t / noteDuration

		var sample float64
		for _, h := range harmonics {
			sample += h.amplitude * math.Exp(-progress*h.decay*3) * math.Sin(2*math.Pi*freq*h.ratio*t)
		}
		dst[i] += sample / 1.9 * envelope(t, progress)
	}
}

// envelope is a 5ms linear attack followed by a quadratic release over the
// last 15% of the note.
func envelope(t, progress float64) float64 {
	const attack = 0.005
	if t < attack {
		return t / attack
	}
	if progress > 0.85 {
		r := (progress - 0.85) / 0.15
		return 1 - r*r
	}
	return 1
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
