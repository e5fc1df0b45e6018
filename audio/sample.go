package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// BankSize is the sample index space; sequences address slots 0-7
const BankSize = 8

// ResampleQuality passed to beep.Resample when a file's rate differs
const ResampleQuality = 4

// DefaultFormat is what the engine mixes and records in
var DefaultFormat = beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

// LoadSample decodes a WAV file into a buffer in the given format
func LoadSample(path string, format beep.Format) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sample %s", path)
	}

	streamer, src, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "decode sample %s", path)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if src.SampleRate != format.SampleRate {
		s = beep.Resample(ResampleQuality, src.SampleRate, format.SampleRate, streamer)
	}

	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, errors.Wrapf(err, "read sample %s", path)
	}
	return buf, nil
}

// LoadBank fills slot i from dir/names[i]. A slot that fails to load (or has
// no name) gets the synthesized voice for that slot when fallback is set, and
// stays empty otherwise. Load failures are returned alongside the bank.
func LoadBank(dir string, names []string, format beep.Format, fallback bool) ([]*beep.Buffer, []error) {
	bank := make([]*beep.Buffer, BankSize)
	var errs []error

	for i := 0; i < BankSize; i++ {
		if i < len(names) && names[i] != "" {
			buf, err := LoadSample(filepath.Join(dir, names[i]), format)
			if err == nil {
				bank[i] = buf
				continue
			}
			errs = append(errs, fmt.Errorf("slot %d: %w", i, err))
		}
		if fallback {
			bank[i] = Synth(i, format)
		}
	}
	return bank, errs
}
