package sim

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// StepType identifies a scenario step.
type StepType string

const (
	StepCombat      StepType = "combat"       // actor starts fighting target
	StepLeaveCombat StepType = "leave_combat" // actor (player by default) drops out of combat
	StepHit         StepType = "hit"          // actor hits target
	StepDeath       StepType = "death"        // target dies, actor is the killer (optional)
	StepWait        StepType = "wait"         // advance time
)

// ErrUnknownStep is returned for unsupported step types.
var ErrUnknownStep = errors.New("unknown scenario step")

// ActorSpec describes an actor in a scenario file.
type ActorSpec struct {
	Key      string `yaml:"key"`
	ID       uint32 `yaml:"id"`
	Name     string `yaml:"name"`
	Level    int    `yaml:"level"`
	Teammate bool   `yaml:"teammate"`
}

// Step is a single scripted host action.
type Step struct {
	Type   StepType      `yaml:"type"`
	Actor  string        `yaml:"actor"`
	Target string        `yaml:"target"`
	Wait   time.Duration `yaml:"wait"`
	Repeat int           `yaml:"repeat"` // hit: number of hits (default 1)
}

// Scenario is a recorded encounter.
type Scenario struct {
	Name   string      `yaml:"name"`
	Player ActorSpec   `yaml:"player"`
	Actors []ActorSpec `yaml:"actors"`
	Steps  []Step      `yaml:"steps"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks actor references and step types.
func (sc *Scenario) Validate() error {
	if sc.Player.Key == "" {
		return errors.New("player key is required")
	}

	keys := make(map[string]struct{}, len(sc.Actors)+1)
	keys[sc.Player.Key] = struct{}{}
	for _, a := range sc.Actors {
		if a.Key == "" {
			return fmt.Errorf("actor %q: key is required", a.Name)
		}
		if _, dup := keys[a.Key]; dup {
			return fmt.Errorf("duplicate actor key %q", a.Key)
		}
		keys[a.Key] = struct{}{}
	}

	ref := func(i int, key string) error {
		if key == "" {
			return nil
		}
		if _, ok := keys[key]; !ok {
			return fmt.Errorf("step %d: %w: %q", i, ErrUnknownActor, key)
		}
		return nil
	}

	for i, st := range sc.Steps {
		switch st.Type {
		case StepCombat, StepHit:
			if st.Actor == "" || st.Target == "" {
				return fmt.Errorf("step %d (%s): actor and target are required", i, st.Type)
			}
		case StepDeath:
			if st.Target == "" {
				return fmt.Errorf("step %d (%s): target is required", i, st.Type)
			}
		case StepLeaveCombat:
		case StepWait:
			if st.Wait <= 0 {
				return fmt.Errorf("step %d (%s): wait must be positive", i, st.Type)
			}
		default:
			return fmt.Errorf("step %d: %w: %q", i, ErrUnknownStep, st.Type)
		}
		if err := ref(i, st.Actor); err != nil {
			return err
		}
		if err := ref(i, st.Target); err != nil {
			return err
		}
	}
	return nil
}

// Populate registers the scenario's player and actors in w.
func (sc *Scenario) Populate(w *World) error {
	p := sc.Player
	if err := w.SetPlayer(p.Key, NewActor(p.ID, p.Name, p.Level)); err != nil {
		return fmt.Errorf("adding player: %w", err)
	}
	for _, as := range sc.Actors {
		a := NewActor(as.ID, as.Name, as.Level)
		a.SetTeammate(as.Teammate)
		if err := w.Add(as.Key, a); err != nil {
			return fmt.Errorf("adding actor %q: %w", as.Key, err)
		}
	}
	return nil
}
