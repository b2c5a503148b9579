// Package wavinfo inspects rendered WAV files. The engine's file renderer
// reports nothing about its output, so callers probe the result instead.
package wavinfo

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// Info describes a WAV file's format and length.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// Probe reads the header of the WAV file at path. A render that produced
// raw PCM instead of a wave container (engine built without its sound file
// backend) fails here.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return Info{}, fmt.Errorf("%s: not a valid wav file", path)
	}
	dur, err := d.Duration()
	if err != nil {
		return Info{}, fmt.Errorf("%s: reading duration: %w", path, err)
	}
	return Info{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Duration:   dur,
	}, nil
}

func (i Info) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d bit, %s", i.SampleRate, i.Channels, i.BitDepth, i.Duration.Round(time.Millisecond))
}
