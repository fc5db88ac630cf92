package canon

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds one toggle per decomposition family. It is a plain value:
// compilers copy it and never modify it.
type Config struct {
	Multitarget                bool `yaml:"multitarget" json:"multitarget"`
	Multicontrol               bool `yaml:"multicontrol" json:"multicontrol"`
	Trotterized                bool `yaml:"trotterized" json:"trotterized"`
	GeneralizedRotation        bool `yaml:"generalized_rotation" json:"generalized_rotation"`
	ExponentialPauli           bool `yaml:"exponential_pauli" json:"exponential_pauli"`
	ControlledExponentialPauli bool `yaml:"controlled_exponential_pauli" json:"controlled_exponential_pauli"`
	HadamardPower              bool `yaml:"hadamard_power" json:"hadamard_power"`
	ControlledPower            bool `yaml:"controlled_power" json:"controlled_power"`
	Power                      bool `yaml:"power" json:"power"`
	Toffoli                    bool `yaml:"toffoli" json:"toffoli"`
	ControlledPhase            bool `yaml:"controlled_phase" json:"controlled_phase"`
	Phase                      bool `yaml:"phase" json:"phase"`
	PhaseToZ                   bool `yaml:"phase_to_z" json:"phase_to_z"`
	ControlledRotation         bool `yaml:"controlled_rotation" json:"controlled_rotation"`
	Swap                       bool `yaml:"swap" json:"swap"`
	CCMax                      bool `yaml:"cc_max" json:"cc_max"`
	RyGate                     bool `yaml:"ry_gate" json:"ry_gate"`
	YGate                      bool `yaml:"y_gate" json:"y_gate"`
	CHGate                     bool `yaml:"ch_gate" json:"ch_gate"`
	VGate                      bool `yaml:"v_gate" json:"v_gate"`
}

// Default returns the standard configuration: everything reduced to at most
// single-controlled gates, with Ry, Y and V kept as they are.
func Default() Config {
	return Config{
		Multitarget:                true,
		Multicontrol:               true,
		Trotterized:                true,
		GeneralizedRotation:        true,
		ExponentialPauli:           true,
		ControlledExponentialPauli: true,
		HadamardPower:              true,
		ControlledPower:            true,
		Power:                      true,
		Toffoli:                    true,
		Phase:                      true,
		ControlledRotation:         true,
		Swap:                       true,
		CCMax:                      true,
		CHGate:                     true,
	}
}

// Load reads a YAML file of toggles over the defaults. Keys that are absent
// keep their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read canonicalizer config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML toggles over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse canonicalizer config: %w", err)
	}
	return cfg, nil
}

// Enabled lists the YAML names of the toggles that are on, in declaration order.
func (c Config) Enabled() []string {
	var names []string
	v := reflect.ValueOf(c)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if v.Field(i).Bool() {
			names = append(names, strings.Split(t.Field(i).Tag.Get("yaml"), ",")[0])
		}
	}
	return names
}
