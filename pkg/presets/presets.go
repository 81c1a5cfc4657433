// Package presets ships ready-made sequence definitions for common
// document-surface moves such as list reorder, card expand, and focus mode.
// Presets are data, not behavior: they are ordinary inputs to the sequence
// orchestrator and impose no additional interface surface.
package presets

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-kinetic/kinetic/pkg/animation"
	"github.com/go-kinetic/kinetic/pkg/sequence"
	"github.com/go-kinetic/kinetic/pkg/surface"
)

//go:embed presets.yaml
var rawPresets []byte

var (
	loadOnce  sync.Once
	loaded    []sequence.Sequence
	loadError error
)

// Sequences returns every preset sequence definition. The embedded data is
// parsed once; subsequent calls return the cached result.
func Sequences() ([]sequence.Sequence, error) {
	loadOnce.Do(func() {
		loaded, loadError = Parse(rawPresets)
	})
	if loadError != nil {
		return nil, loadError
	}
	out := make([]sequence.Sequence, len(loaded))
	copy(out, loaded)
	return out, nil
}

// ByID returns the preset with the given id.
func ByID(id string) (sequence.Sequence, bool) {
	seqs, err := Sequences()
	if err != nil {
		return sequence.Sequence{}, false
	}
	for _, s := range seqs {
		if s.ID == id {
			return s, true
		}
	}
	return sequence.Sequence{}, false
}

// fileSpec mirrors the YAML document shape.
type fileSpec struct {
	Sequences []sequenceSpec `yaml:"sequences"`
}

type sequenceSpec struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Options optionsSpec `yaml:"options"`
	Steps   []stepSpec  `yaml:"steps"`
}

type optionsSpec struct {
	Stagger  staggerSpec `yaml:"stagger"`
	Overlap  duration    `yaml:"overlap"`
	Reverse  bool        `yaml:"reverse"`
	Loop     bool        `yaml:"loop"`
	AutoPlay bool        `yaml:"autoPlay"`
}

type staggerSpec struct {
	Each   duration `yaml:"each"`
	Amount duration `yaml:"amount"`
	From   string   `yaml:"from"`
	Ease   string   `yaml:"ease"`
}

type stepSpec struct {
	Selector string     `yaml:"selector"`
	Delay    duration   `yaml:"delay"`
	Duration duration   `yaml:"duration"`
	Curve    string     `yaml:"curve"`
	From     *styleSpec `yaml:"from"`
	To       *styleSpec `yaml:"to"`
}

// duration decodes Go duration strings like "250ms" from YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("presets: duration must be a string like \"250ms\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("presets: bad duration %q: %w", s, err)
	}
	*d = duration(parsed)
	return nil
}

// styleSpec uses pointers so unset properties fall back to neutral values
// rather than zeroes.
type styleSpec struct {
	Opacity    *float64 `yaml:"opacity"`
	TranslateX float64  `yaml:"translateX"`
	TranslateY float64  `yaml:"translateY"`
	ScaleX     *float64 `yaml:"scaleX"`
	ScaleY     *float64 `yaml:"scaleY"`
}

// Parse decodes sequence definitions from YAML data. Callers can ship their
// own preset files in the same format as the embedded ones.
func Parse(data []byte) ([]sequence.Sequence, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("presets: parse: %w", err)
	}

	out := make([]sequence.Sequence, 0, len(spec.Sequences))
	for _, ss := range spec.Sequences {
		seq := sequence.Sequence{
			ID:   ss.ID,
			Name: ss.Name,
			Options: sequence.Options{
				Stagger: sequence.Stagger{
					Each:   time.Duration(ss.Options.Stagger.Each),
					Amount: time.Duration(ss.Options.Stagger.Amount),
					From:   staggerOrigin(ss.Options.Stagger.From),
				},
				Overlap:  time.Duration(ss.Options.Overlap),
				Reverse:  ss.Options.Reverse,
				Loop:     ss.Options.Loop,
				AutoPlay: ss.Options.AutoPlay,
			},
		}
		if ss.Options.Stagger.Ease != "" {
			seq.Options.Stagger.Ease = animation.CurveByName(ss.Options.Stagger.Ease)
		}
		for _, sp := range ss.Steps {
			if sp.Selector == "" {
				return nil, fmt.Errorf("presets: sequence %q has a step without a selector", ss.ID)
			}
			step := sequence.Step{
				Target:   surface.Select(sp.Selector),
				Delay:    time.Duration(sp.Delay),
				Duration: time.Duration(sp.Duration),
				Animation: animation.Config{
					From: sp.From.style(),
					To:   sp.To.style(),
				},
			}
			if sp.Curve != "" {
				step.Curve = animation.CurveByName(sp.Curve)
			}
			seq.Steps = append(seq.Steps, step)
		}
		out = append(out, seq)
	}
	return out, nil
}

func staggerOrigin(name string) sequence.StaggerOrigin {
	switch name {
	case "end":
		return sequence.OriginEnd
	case "center":
		return sequence.OriginCenter
	case "edges":
		return sequence.OriginEdges
	default:
		return sequence.OriginStart
	}
}

func (s *styleSpec) style() *surface.Style {
	if s == nil {
		return nil
	}
	out := surface.DefaultStyle()
	if s.Opacity != nil {
		out.Opacity = *s.Opacity
	}
	out.Transform.TranslateX = s.TranslateX
	out.Transform.TranslateY = s.TranslateY
	if s.ScaleX != nil {
		out.Transform.ScaleX = *s.ScaleX
	}
	if s.ScaleY != nil {
		out.Transform.ScaleY = *s.ScaleY
	}
	return &out
}
