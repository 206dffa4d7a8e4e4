package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/piano-sampler/note"
	"github.com/cwbudde/piano-sampler/piano"
	"github.com/cwbudde/piano-sampler/sample"
)

// File is the JSON schema for piano presets. Absent fields keep defaults.
type File struct {
	SampleRate          *int            `json:"sample_rate"`
	Channels            *int            `json:"channels"`
	MaxBlockFrames      *int            `json:"max_block_frames"`
	SoftCutoffHz        *float64        `json:"soft_cutoff_hz"`
	SoftGain            *float64        `json:"soft_gain"`
	SustainBoost        *float64        `json:"sustain_boost"`
	DamperDecaySeconds  *float64        `json:"damper_decay_seconds"`
	ReleaseDecaySeconds *float64        `json:"release_decay_seconds"`
	NoteCeilingSeconds  *float64        `json:"note_ceiling_seconds"`
	Library             *LibrarySetting `json:"library"`
}

// LibrarySetting is the sample library section of a preset file.
type LibrarySetting struct {
	SampleDirs     []string `json:"sample_dirs"`
	FilePattern    string   `json:"file_pattern"`
	LowNote        string   `json:"low_note"`
	HighNote       string   `json:"high_note"`
	Workers        string   `json:"workers"`
	ResampleOnLoad *bool    `json:"resample_on_load"`
}

// Library describes which samples to load and where to find them.
type Library struct {
	Dirs           []string
	Pattern        string
	Low            note.Note
	High           note.Note
	Workers        int // 0 = one per CPU
	ResampleOnLoad bool
}

// Preset is a fully resolved configuration.
type Preset struct {
	Params  *piano.Params
	Library Library
	// ChannelsFromSamples is set when the preset leaves the channel count
	// open, so it follows the first loaded sample.
	ChannelsFromSamples bool
}

// Default returns the built-in configuration: C3..B5 from the standard
// sample directories, output channels following the samples.
func Default() *Preset {
	return &Preset{
		Params: piano.NewDefaultParams(),
		Library: Library{
			Pattern: sample.DefaultPattern,
			Low:     note.MustParse("C3"),
			High:    note.MustParse("B5"),
		},
		ChannelsFromSamples: true,
	}
}

// LoadJSON loads a preset JSON file and applies it on top of Default.
// Relative sample directories are resolved against the file's directory.
func LoadJSON(path string) (*Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	p := Default()
	if err := ApplyFile(p, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i, dir := range p.Library.Dirs {
		if !filepath.IsAbs(dir) {
			p.Library.Dirs[i] = filepath.Clean(filepath.Join(base, dir))
		}
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing preset.
func ApplyFile(dst *Preset, f *File) error {
	if dst == nil || dst.Params == nil {
		return fmt.Errorf("nil destination preset")
	}
	if f == nil {
		return nil
	}
	p := dst.Params

	if f.SampleRate != nil {
		if *f.SampleRate < 8000 || *f.SampleRate > 192000 {
			return fmt.Errorf("sample_rate must be in [8000,192000]")
		}
		p.SampleRate = *f.SampleRate
	}
	if f.Channels != nil {
		if *f.Channels < 1 || *f.Channels > 8 {
			return fmt.Errorf("channels must be in [1,8]")
		}
		p.Channels = *f.Channels
		dst.ChannelsFromSamples = false
	}
	if f.MaxBlockFrames != nil {
		if *f.MaxBlockFrames < 1 {
			return fmt.Errorf("max_block_frames must be >= 1")
		}
		p.MaxBlockFrames = *f.MaxBlockFrames
	}
	if f.SoftCutoffHz != nil {
		if *f.SoftCutoffHz <= 0 || *f.SoftCutoffHz >= float64(p.SampleRate)/2 {
			return fmt.Errorf("soft_cutoff_hz must be in (0,%d)", p.SampleRate/2)
		}
		p.SoftCutoffHz = *f.SoftCutoffHz
	}
	if f.SoftGain != nil {
		if *f.SoftGain < 0 || *f.SoftGain > 1 {
			return fmt.Errorf("soft_gain must be in [0,1]")
		}
		p.SoftGain = *f.SoftGain
	}
	if f.SustainBoost != nil {
		if *f.SustainBoost < 0 {
			return fmt.Errorf("sustain_boost must be >= 0")
		}
		p.SustainBoost = *f.SustainBoost
	}
	if f.DamperDecaySeconds != nil {
		if *f.DamperDecaySeconds <= 0 {
			return fmt.Errorf("damper_decay_seconds must be > 0")
		}
		p.DamperDecaySeconds = *f.DamperDecaySeconds
	}
	if f.ReleaseDecaySeconds != nil {
		if *f.ReleaseDecaySeconds <= 0 {
			return fmt.Errorf("release_decay_seconds must be > 0")
		}
		p.ReleaseDecaySeconds = *f.ReleaseDecaySeconds
	}
	if f.NoteCeilingSeconds != nil {
		if *f.NoteCeilingSeconds <= 0 {
			return fmt.Errorf("note_ceiling_seconds must be > 0")
		}
		p.NoteCeilingSeconds = *f.NoteCeilingSeconds
	}

	if f.Library != nil {
		if err := applyLibrary(&dst.Library, f.Library); err != nil {
			return err
		}
	}
	return p.Validate()
}

func applyLibrary(dst *Library, s *LibrarySetting) error {
	for _, dir := range s.SampleDirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return fmt.Errorf("library.sample_dirs contains an empty entry")
		}
		dst.Dirs = append(dst.Dirs, dir)
	}
	if s.FilePattern != "" {
		if !strings.Contains(s.FilePattern, "{note}") {
			return fmt.Errorf("library.file_pattern %q must contain {note}", s.FilePattern)
		}
		dst.Pattern = s.FilePattern
	}
	if s.LowNote != "" {
		n, err := note.Parse(s.LowNote)
		if err != nil {
			return fmt.Errorf("library.low_note: %w", err)
		}
		dst.Low = n
	}
	if s.HighNote != "" {
		n, err := note.Parse(s.HighNote)
		if err != nil {
			return fmt.Errorf("library.high_note: %w", err)
		}
		dst.High = n
	}
	if dst.High.Semitone() < dst.Low.Semitone() {
		return fmt.Errorf("library.high_note %s is below low_note %s", dst.High, dst.Low)
	}
	if s.Workers != "" {
		n, err := ParseWorkers(s.Workers)
		if err != nil {
			return fmt.Errorf("library.workers: %w", err)
		}
		dst.Workers = n
	}
	if s.ResampleOnLoad != nil {
		dst.ResampleOnLoad = *s.ResampleOnLoad
	}
	return nil
}

// Notes lists the notes the library should load.
func (l *Library) Notes() []note.Note {
	return note.Range(l.Low, l.High)
}

// Resolver returns a resolver searching the configured directories before
// the standard ones.
func (l *Library) Resolver() *sample.Resolver {
	r := sample.NewResolver(l.Dirs...)
	if l.Pattern != "" {
		r.Pattern = l.Pattern
	}
	return r
}

// LoadOptions translates the library settings for sample.Load.
func (l *Library) LoadOptions(sampleRate int) []sample.LoadOption {
	opts := []sample.LoadOption{sample.WithWorkers(l.Workers)}
	if l.ResampleOnLoad {
		opts = append(opts, sample.WithTargetRate(sampleRate))
	}
	return opts
}
