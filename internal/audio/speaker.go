package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

type speakerOutput struct{}

// OpenSpeaker initializes the system audio device.
func OpenSpeaker(sampleRate beep.SampleRate) (Output, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return speakerOutput{}, nil
}

func (speakerOutput) Play(streamers ...beep.Streamer) {
	speaker.Play(streamers...)
}

func (speakerOutput) Clear() {
	speaker.Clear()
}

// Close releases the audio device.
func (speakerOutput) Close() {
	speaker.Close()
}
