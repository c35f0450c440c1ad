package settings

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// profilesFile is the on-disk shape of a profile bundle.
type profilesFile struct {
	Profiles map[string]profileSpec `yaml:"profiles"`
}

// profileSpec is one profile entry. Absent fields keep the base value, so
// every field is a pointer or a string parsed separately.
type profileSpec struct {
	Base              string  `yaml:"base"`
	MaxExamples       *int    `yaml:"max_examples"`
	MaxShrinkCount    *int    `yaml:"max_shrink_count"`
	MaxDiscardRatio   *int    `yaml:"max_discard_ratio"`
	Verbosity         *string `yaml:"verbosity"`
	Deadline          *string `yaml:"deadline"`
	StatefulStepCount *int    `yaml:"stateful_step_count"`
	PrintBlob         *bool   `yaml:"print_blob"`
}

// LoadProfilesFile registers every profile found in a YAML bundle. Each
// entry is applied as overrides on its base profile ("default" when
// unspecified). Bases must be registered before the profiles that use them;
// entries within one file may not reference each other.
func LoadProfilesFile(reg *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profiles file: %w", err)
	}
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse profiles file %s: %w", path, err)
	}
	for name, spec := range file.Profiles {
		o, err := spec.overrides()
		if err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
		base := spec.Base
		if base == "" {
			base = DefaultProfileName
		}
		if err := reg.RegisterOverrides(name, base, o); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}
	return nil
}

func (p profileSpec) overrides() (Overrides, error) {
	o := Overrides{
		MaxExamples:       p.MaxExamples,
		MaxShrinkCount:    p.MaxShrinkCount,
		MaxDiscardRatio:   p.MaxDiscardRatio,
		StatefulStepCount: p.StatefulStepCount,
		PrintBlob:         p.PrintBlob,
	}
	if p.Verbosity != nil {
		v, err := VerbosityByName(*p.Verbosity)
		if err != nil {
			return Overrides{}, err
		}
		o.Verbosity = &v
	}
	if p.Deadline != nil {
		d, err := time.ParseDuration(*p.Deadline)
		if err != nil {
			return Overrides{}, fmt.Errorf("invalid deadline: %w", err)
		}
		o.Deadline = &d
	}
	return o, nil
}
