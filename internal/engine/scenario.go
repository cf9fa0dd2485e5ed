package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cxd309/race-engine/internal/input"
)

// Script is a validated list of input spans. Overlapping spans combine their
// controls.
type Script []InputSpan

// NewScript validates spans and normalises their control names.
func NewScript(spans []InputSpan) (Script, error) {
	out := make(Script, len(spans))
	for i, sp := range spans {
		if sp.From < 0 || sp.To < sp.From {
			return nil, fmt.Errorf("span %d: invalid frame range [%d, %d)", i, sp.From, sp.To)
		}
		controls := make([]input.Control, len(sp.Controls))
		for j, c := range sp.Controls {
			parsed, err := input.ParseControl(string(c))
			if err != nil {
				return nil, fmt.Errorf("span %d: %w", i, err)
			}
			controls[j] = parsed
		}
		out[i] = InputSpan{From: sp.From, To: sp.To, Controls: controls}
	}
	return out, nil
}

// Input returns the controls held during frame.
func (s Script) Input(frame int) input.State {
	var st input.State
	for _, sp := range s {
		if frame >= sp.From && frame < sp.To {
			for _, c := range sp.Controls {
				st.Set(c, true)
			}
		}
	}
	return st
}

// DecodeInput parses a scenario laid over DefaultInput. format is "json" or
// "yaml"; an empty format means JSON. Control points supplied by the scenario
// replace the default track whole; omitted coordinates are zero.
func DecodeInput(data []byte, format string) (SimulationInput, error) {
	in := DefaultInput()
	defaultTrack := in.Track.ControlPoints
	in.Track.ControlPoints = nil
	switch strings.ToLower(format) {
	case "", "json":
		if err := json.Unmarshal(data, &in); err != nil {
			return SimulationInput{}, fmt.Errorf("invalid input JSON: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &in); err != nil {
			return SimulationInput{}, fmt.Errorf("invalid input YAML: %w", err)
		}
	default:
		return SimulationInput{}, fmt.Errorf("unsupported scenario format %q", format)
	}
	if in.Track.ControlPoints == nil {
		in.Track.ControlPoints = defaultTrack
	}
	return in, nil
}

// LoadInput reads a scenario file, choosing the format from its extension.
// An empty path returns DefaultInput.
func LoadInput(path string) (SimulationInput, error) {
	if path == "" {
		return DefaultInput(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SimulationInput{}, fmt.Errorf("reading scenario: %w", err)
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format != "yaml" && format != "yml" {
		format = "json"
	}
	in, err := DecodeInput(data, format)
	if err != nil {
		return SimulationInput{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}
