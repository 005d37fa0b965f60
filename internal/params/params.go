package params

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Multiplicity selects how many seed tumours start a run.
type Multiplicity string

const (
	// Single starts one seed cell at the lattice centre.
	Single Multiplicity = "single"
	// Double starts two seed cells at fixed fractional offsets.
	Double Multiplicity = "double"
)

// maxFileSize caps parameter files; anything larger is not a parameter file.
const maxFileSize = 1 << 20

// Parameters is the validated simulation configuration. Construct it via
// Default, LoadFile or WithOverrides, call Validate once, and treat the
// value as immutable for the lifetime of a run.
type Parameters struct {
	MatrixSize                       int          `yaml:"matrix_size"`
	NumberOfGenerations              int          `yaml:"number_of_generations"`
	DivisionProbability              float64      `yaml:"division_probability"`
	AdvantageousDivisionProbability  float64      `yaml:"advantageous_division_probability"`
	DeathProbability                 float64      `yaml:"death_probability"`
	FitnessAdvantageDeathProbability float64      `yaml:"fitness_advantage_death_probability"`
	MutationRate                     float64      `yaml:"mutation_rate"`
	AdvantageousMutationProbability  float64      `yaml:"advantageous_mutation_probability"`
	MutationsPerDivision             int          `yaml:"mutations_per_division"`
	TimeOfAdvantageousMutation       int          `yaml:"time_of_advantageous_mutation"`
	NumberOfClonal                   int          `yaml:"number_of_clonal"`
	TumourMultiplicity               Multiplicity `yaml:"tumour_multiplicity"`
}

// Default returns the documented defaults. They apply whenever a field is
// absent from a parameter file or an override map.
func Default() Parameters {
	return Parameters{
		MatrixSize:                       10,
		NumberOfGenerations:              2,
		DivisionProbability:              1,
		AdvantageousDivisionProbability:  1,
		DeathProbability:                 0,
		FitnessAdvantageDeathProbability: 0,
		MutationRate:                     0.8,
		AdvantageousMutationProbability:  1,
		MutationsPerDivision:             1,
		TimeOfAdvantageousMutation:       50000,
		NumberOfClonal:                   1,
		TumourMultiplicity:               Single,
	}
}

// Roots returns the number of seed tumours implied by the multiplicity.
func (p Parameters) Roots() int {
	if p.TumourMultiplicity == Double {
		return 2
	}
	return 1
}

// LoadFile reads a YAML parameter file over the defaults and validates the
// result. Absent fields keep their default values.
func LoadFile(path string) (Parameters, error) {
	p := Default()
	info, err := os.Stat(path)
	if err != nil {
		return p, fmt.Errorf("stat parameter file: %w", err)
	}
	if info.Size() > maxFileSize {
		return p, fmt.Errorf("parameter file %s exceeds %d bytes", path, maxFileSize)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read parameter file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// FromMap builds a bundle from flag-style key/value overrides applied over
// the defaults.
func FromMap(cfg map[string]string) (Parameters, error) {
	return Default().WithOverrides(cfg)
}

// WithOverrides applies key/value overrides to a copy of p and validates
// the result. Keys use the parameter-file spelling (matrix_size, ...).
func (p Parameters) WithOverrides(cfg map[string]string) (Parameters, error) {
	for key, raw := range cfg {
		var err error
		switch key {
		case "matrix_size":
			p.MatrixSize, err = parseInt(raw)
		case "number_of_generations":
			p.NumberOfGenerations, err = parseInt(raw)
		case "division_probability":
			p.DivisionProbability, err = parseFloat(raw)
		case "advantageous_division_probability":
			p.AdvantageousDivisionProbability, err = parseFloat(raw)
		case "death_probability":
			p.DeathProbability, err = parseFloat(raw)
		case "fitness_advantage_death_probability":
			p.FitnessAdvantageDeathProbability, err = parseFloat(raw)
		case "mutation_rate":
			p.MutationRate, err = parseFloat(raw)
		case "advantageous_mutation_probability":
			p.AdvantageousMutationProbability, err = parseFloat(raw)
		case "mutations_per_division":
			p.MutationsPerDivision, err = parseInt(raw)
		case "time_of_advantageous_mutation":
			p.TimeOfAdvantageousMutation, err = parseInt(raw)
		case "number_of_clonal":
			p.NumberOfClonal, err = parseInt(raw)
		case "tumour_multiplicity":
			p.TumourMultiplicity = Multiplicity(raw)
		default:
			return p, fmt.Errorf("unknown parameter %q", key)
		}
		if err != nil {
			return p, fmt.Errorf("parameter %s: %w", key, err)
		}
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate checks every field against its documented range and returns a
// descriptive error for the first violation. A bundle that validated once
// never needs revalidation because nothing mutates it afterwards.
func (p Parameters) Validate() error {
	if p.MatrixSize < 1 {
		return fmt.Errorf("matrix_size must be at least 1, got %d", p.MatrixSize)
	}
	if p.NumberOfGenerations < 1 {
		return fmt.Errorf("number_of_generations must be at least 1, got %d", p.NumberOfGenerations)
	}
	probabilities := []struct {
		name  string
		value float64
	}{
		{"division_probability", p.DivisionProbability},
		{"advantageous_division_probability", p.AdvantageousDivisionProbability},
		{"death_probability", p.DeathProbability},
		{"fitness_advantage_death_probability", p.FitnessAdvantageDeathProbability},
		{"mutation_rate", p.MutationRate},
		{"advantageous_mutation_probability", p.AdvantageousMutationProbability},
	}
	for _, prob := range probabilities {
		if prob.value < 0 || prob.value > 1 {
			return fmt.Errorf("%s must lie in [0, 1], got %g", prob.name, prob.value)
		}
	}
	if p.MutationsPerDivision < 0 {
		return fmt.Errorf("mutations_per_division must be non-negative, got %d", p.MutationsPerDivision)
	}
	if p.TimeOfAdvantageousMutation < 0 {
		return fmt.Errorf("time_of_advantageous_mutation must be non-negative, got %d", p.TimeOfAdvantageousMutation)
	}
	if p.NumberOfClonal < 0 {
		return fmt.Errorf("number_of_clonal must be non-negative, got %d", p.NumberOfClonal)
	}
	switch p.TumourMultiplicity {
	case Single, Double:
	default:
		return fmt.Errorf("tumour_multiplicity must be %q or %q, got %q", Single, Double, p.TumourMultiplicity)
	}
	return nil
}

func parseInt(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("expected integer, got %q", raw)
	}
	return v, nil
}

func parseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("expected number, got %q", raw)
	}
	return v, nil
}
