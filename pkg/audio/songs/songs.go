// Package songs provides built-in melodies rendered as mono float32 audio.
//
// The melodies feed the "demo" input of livescribe: a Source plays a song in
// real time, frame by frame, so the capture pipeline and the level meter can
// be exercised without a microphone.
package songs

// Note frequencies (Hz).
const (
	C3 = 131.0
	D3 = 147.0
	E3 = 165.0
	F3 = 175.0
	G3 = 196.0
	A3 = 220.0
	B3 = 247.0

	C4 = 262.0
	D4 = 294.0
	E4 = 330.0
	F4 = 349.0
	G4 = 392.0
	A4 = 440.0
	B4 = 494.0

	C5 = 523.0

	Rest = 0.0
)

// Note value constants (in terms of beats, quarter note = 1).
const (
	Whole   = 4.0
	Half    = 2.0
	Quarter = 1.0
	Eighth  = 0.5
)

// Note is a single note with frequency and length in beats.
type Note struct {
	Freq  float64 // Frequency in Hz (use Rest for silence)
	Beats float64
}

// N is a shorthand constructor for Note.
func N(freq, beats float64) Note {
	return Note{Freq: freq, Beats: beats}
}

// Voice is one part of a composition.
type Voice []Note

// Beats returns the total length of the voice in beats.
func (v Voice) Beats() float64 {
	total := 0.0
	for _, n := range v {
		total += n.Beats
	}
	return total
}

// Song is a tempo plus the voices played together.
type Song struct {
	ID     string
	Name   string
	BPM    int
	Voices []Voice
}

// BeatSamples returns the number of samples in the given number of beats.
func (s Song) BeatSamples(beats float64, sampleRate int) int {
	return int(beats * 60 * float64(sampleRate) / float64(s.BPM))
}

// All contains all built-in songs.
var All = []Song{
	SongTwinkleStar,
	SongScaleC,
}

// ByID returns a song by its ID, or nil if not found.
func ByID(id string) *Song {
	for i := range All {
		if All[i].ID == id {
			return &All[i]
		}
	}
	return nil
}

// IDs returns all song IDs.
func IDs() []string {
	ids := make([]string, len(All))
	for i, s := range All {
		ids[i] = s.ID
	}
	return ids
}

// SongTwinkleStar - Twinkle Twinkle Little Star
var SongTwinkleStar = Song{
	ID:   "twinkle_star",
	Name: "Twinkle Twinkle Little Star",
	BPM:  100,
	Voices: []Voice{
		{
			N(C4, Quarter), N(C4, Quarter), N(G4, Quarter), N(G4, Quarter),
			N(A4, Quarter), N(A4, Quarter), N(G4, Half),
			N(F4, Quarter), N(F4, Quarter), N(E4, Quarter), N(E4, Quarter),
			N(D4, Quarter), N(D4, Quarter), N(C4, Half),
			N(G4, Quarter), N(G4, Quarter), N(F4, Quarter), N(F4, Quarter),
			N(E4, Quarter), N(E4, Quarter), N(D4, Half),
			N(Rest, Whole),
		},
		{
			N(C3, Quarter), N(E3, Quarter), N(G3, Quarter), N(E3, Quarter),
			N(F3, Quarter), N(A3, Quarter), N(C3, Half),
			N(F3, Quarter), N(A3, Quarter), N(C3, Quarter), N(E3, Quarter),
			N(G3, Quarter), N(B3, Quarter), N(C3, Half),
			N(C3, Quarter), N(E3, Quarter), N(F3, Quarter), N(A3, Quarter),
			N(C3, Quarter), N(E3, Quarter), N(G3, Half),
			N(Rest, Whole),
		},
	},
}

// SongScaleC - C major scale, up and down
var SongScaleC = Song{
	ID:   "scale_c_major",
	Name: "C Major Scale",
	BPM:  120,
	Voices: []Voice{
		{
			N(C4, Eighth), N(D4, Eighth), N(E4, Eighth), N(F4, Eighth),
			N(G4, Eighth), N(A4, Eighth), N(B4, Eighth), N(C5, Quarter),
			N(B4, Eighth), N(A4, Eighth), N(G4, Eighth), N(F4, Eighth),
			N(E4, Eighth), N(D4, Eighth), N(C4, Quarter),
			N(Rest, Half),
		},
	},
}
