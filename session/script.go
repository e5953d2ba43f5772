// Package session drives a form session from outside the engine: scripted
// runs loaded from YAML or JSON, and a line-oriented REPL. It plays the role
// of the presentation layer.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	onboarding "github.com/reoring/onboarding"
)

// Op names a session action.
type Op string

const (
	OpSet     Op = "set"
	OpAdvance Op = "advance"
	OpRetreat Op = "retreat"
	OpSubmit  Op = "submit"
	OpShow    Op = "show"
)

// ErrInvalidScript reports a script that cannot be played.
var ErrInvalidScript = errors.New("session: invalid script")

// Action is one scripted user interaction.
type Action struct {
	Op    Op     `json:"op" yaml:"op"`
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Script is an ordered list of actions. Today, when set, pins the clock to
// that calendar date so runs are reproducible.
type Script struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Today   string   `json:"today,omitempty" yaml:"today,omitempty"`
	Actions []Action `json:"actions" yaml:"actions"`
}

// Format is the encoding of a script file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension; anything but .json is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("session: read script: %w", err)
	}
	return ParseScript(data, FormatOf(path))
}

// ParseScript decodes a script and checks its actions.
func ParseScript(data []byte, format Format) (Script, error) {
	var sc Script
	switch format {
	case FormatJSON:
		if err := rejectDuplicateKeys(data); err != nil {
			return Script{}, fmt.Errorf("%w: %w", ErrInvalidScript, err)
		}
		if err := json.Unmarshal(data, &sc); err != nil {
			return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
		}
	default:
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
		}
	}
	if err := sc.Validate(); err != nil {
		return Script{}, err
	}
	return sc, nil
}

// Validate checks that every action is well formed.
func (sc Script) Validate() error {
	for i, a := range sc.Actions {
		switch a.Op {
		case OpSet:
			if strings.TrimSpace(a.Field) == "" {
				return fmt.Errorf("%w: action %d: set requires a field", ErrInvalidScript, i)
			}
		case OpAdvance, OpRetreat, OpSubmit, OpShow:
		default:
			return fmt.Errorf("%w: action %d: unknown op %q", ErrInvalidScript, i, a.Op)
		}
	}
	return nil
}

// LoadRecord reads a complete record from a JSON or YAML file. Omitted
// fields keep the values a new session starts with.
func LoadRecord(path string) (onboarding.FormRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return onboarding.FormRecord{}, fmt.Errorf("session: read record: %w", err)
	}
	return ParseRecord(data, FormatOf(path))
}

// ParseRecord decodes a record.
func ParseRecord(data []byte, format Format) (onboarding.FormRecord, error) {
	rec := onboarding.NewRecord()
	var err error
	if format == FormatJSON {
		if err = rejectDuplicateKeys(data); err == nil {
			err = json.Unmarshal(data, &rec)
		}
	} else {
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		err = dec.Decode(&rec)
	}
	if err != nil {
		return onboarding.FormRecord{}, fmt.Errorf("session: decode record: %w", err)
	}
	if rec.PerSkillExperience == nil {
		rec.PerSkillExperience = map[string]float64{}
	}
	return rec, nil
}

// rejectDuplicateKeys fails on JSON input whose objects repeat a key.
func rejectDuplicateKeys(data []byte) error {
	iss, err := onboarding.DetectJSONDuplicateKeys(data, 0)
	if err != nil {
		return err
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
