package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// wavHeader is the canonical 44-byte RIFF header for 16-bit PCM.
type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// EncodeWAV writes samples as a mono 16-bit PCM WAV file.
func EncodeWAV(w io.Writer, f Format, samples []float32) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if len(samples) == 0 {
		return errors.New("pcm: cannot encode empty audio")
	}

	dataSize := uint32(len(samples) * 2)
	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    uint32(f.SampleRate),
		ByteRate:      uint32(f.SampleRate) * 2,
		BlockAlign:    2,
		BitsPerSample: 16,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("pcm: write wav header: %w", err)
	}
	pcm16 := Float32ToInt16(make([]int16, 0, len(samples)), samples)
	if err := binary.Write(w, binary.LittleEndian, pcm16); err != nil {
		return fmt.Errorf("pcm: write wav data: %w", err)
	}
	return nil
}
