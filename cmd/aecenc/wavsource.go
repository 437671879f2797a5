package main

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavSource holds the PCM payload pulled out of a WAV container,
// grounded on the teacher's decodeWAV chunked-read loop (pkg/converter,
// audio-converter lineage) but kept as plain integer samples instead of
// being normalized to int16 — packBytes below re-packs them to
// whatever width the encoder session is configured for.
type wavSource struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Samples    []int // interleaved, one int per sample per channel
}

func loadWAV(path string) (*wavSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%s: read WAV format: %w", path, err)
	}

	format := &audio.Format{
		SampleRate:  int(decoder.SampleRate),
		NumChannels: int(decoder.NumChans),
	}
	buf := &audio.IntBuffer{Data: make([]int, 0), Format: format}

	const chunkSize = 4096
	tmp := &audio.IntBuffer{Data: make([]int, chunkSize), Format: format}
	for {
		n, err := decoder.PCMBuffer(tmp)
		if err != nil {
			return nil, fmt.Errorf("%s: decode PCM: %w", path, err)
		}
		if n == 0 {
			break
		}
		buf.Data = append(buf.Data, tmp.Data[:n]...)
	}

	return &wavSource{
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
		BitDepth:   int(decoder.BitDepth),
		Samples:    buf.Data,
	}, nil
}

// packBytes re-packs samples into the byte stream a
// pkg/sampleio extractor built for bits/flags would decode back out,
// the inverse of byteExtractor.Sample.
func packBytes(samples []int, bits int, flag3Byte, msbFirst bool) []byte {
	n := (bits + 7) / 8
	if bits > 16 && flag3Byte {
		n = 3
	}

	out := make([]byte, len(samples)*n)
	mask := uint32(1)<<uint(bits) - 1
	for i, s := range samples {
		v := uint32(s) & mask
		dst := out[i*n : i*n+n]
		if msbFirst {
			for j := 0; j < n; j++ {
				dst[n-1-j] = byte(v)
				v >>= 8
			}
		} else {
			for j := 0; j < n; j++ {
				dst[j] = byte(v)
				v >>= 8
			}
		}
	}
	return out
}
