package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// SampleRate is the rate every alarm is buffered at and the speaker runs at.
const SampleRate = beep.SampleRate(44100)

const (
	toneFrequency = 880
	toneLength    = 150 * time.Millisecond
	toneGap       = 100 * time.Millisecond
	tonePause     = 600 * time.Millisecond
	toneBeeps     = 3
	resampleQual  = 4
)

func bufferFormat(sampleRate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
}

// BuiltinAlarm synthesizes three short beeps followed by a pause.
func BuiltinAlarm(sampleRate beep.SampleRate) (*beep.Buffer, error) {
	var parts []beep.Streamer
	for i := 0; i < toneBeeps; i++ {
		if i > 0 {
			parts = append(parts, beep.Silence(sampleRate.N(toneGap)))
		}
		tone, err := generators.SineTone(sampleRate, toneFrequency)
		if err != nil {
			return nil, fmt.Errorf("generate alarm tone: %w", err)
		}
		parts = append(parts, beep.Take(sampleRate.N(toneLength), tone))
	}
	parts = append(parts, beep.Silence(sampleRate.N(tonePause)))

	buffer := beep.NewBuffer(bufferFormat(sampleRate))
	buffer.Append(&effects.Gain{Streamer: beep.Seq(parts...), Gain: -0.6})
	return buffer, nil
}

// LoadFile decodes an .ogg, .mp3 or .wav file into a buffer at sampleRate.
func LoadFile(path string, sampleRate beep.SampleRate) (*beep.Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ogg", ".mp3", ".wav":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open alarm sound: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".ogg":
		streamer, format, err = vorbis.Decode(file)
	case ".mp3":
		streamer, format, err = mp3.Decode(file)
	case ".wav":
		streamer, format, err = wav.Decode(file)
	}
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("decode alarm sound %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()
	defer file.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		source = beep.Resample(resampleQual, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(bufferFormat(sampleRate))
	buffer.Append(source)
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("decode alarm sound %s: no samples", filepath.Base(path))
	}
	return buffer, nil
}
