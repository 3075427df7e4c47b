package host

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/sarchlab/c8sim/emu"
)

// Tone recording parameters.
const (
	ToneSampleRate = 44100
	ToneBitDepth   = 16
	ToneDuration   = 100 // milliseconds per beep

	toneAmplitude = 8000
)

// ToneRecorder is an emu.Listener that renders every tone event as a
// square-wave beep. Audio is buffered in memory and written to a WAV file
// on Close.
type ToneRecorder struct {
	filename string
	clockHz  int
	pitchHz  int

	samples []int
	tones   int
}

var _ emu.Listener = (*ToneRecorder)(nil)

// NewToneRecorder creates a recorder. Beeps are placed at the wall-clock
// time of their cycle at clockHz; with clockHz 0 they are written back to
// back.
func NewToneRecorder(filename string, clockHz, pitchHz int) *ToneRecorder {
	if pitchHz <= 0 {
		pitchHz = 440
	}
	return &ToneRecorder{
		filename: filename,
		clockHz:  clockHz,
		pitchHz:  pitchHz,
	}
}

// OnEvent implements emu.Listener.
func (t *ToneRecorder) OnEvent(ev emu.Event) {
	if ev.Kind != emu.EventTone {
		return
	}
	t.tones++

	if t.clockHz > 0 {
		at := int(ev.Cycle * ToneSampleRate / uint64(t.clockHz))
		for len(t.samples) < at {
			t.samples = append(t.samples, 0)
		}
	}

	n := ToneSampleRate * ToneDuration / 1000
	half := ToneSampleRate / (2 * t.pitchHz)
	if half == 0 {
		half = 1
	}
	for i := 0; i < n; i++ {
		v := toneAmplitude
		if (i/half)%2 == 1 {
			v = -toneAmplitude
		}
		t.samples = append(t.samples, v)
	}
}

// Tones returns the number of tone events recorded.
func (t *ToneRecorder) Tones() int {
	return t.tones
}

// Samples returns the number of buffered samples.
func (t *ToneRecorder) Samples() int {
	return len(t.samples)
}

// Close writes the recording to disk.
func (t *ToneRecorder) Close() (rerr error) {
	f, err := os.Create(t.filename)
	if err != nil {
		return fmt.Errorf("failed to create tone file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("failed to close tone file: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, ToneSampleRate, ToneBitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: ToneSampleRate},
		Data:           t.samples,
		SourceBitDepth: ToneBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to encode tone: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish tone file: %w", err)
	}

	return nil
}
