package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// outerConfig mirrors the teacher's reinforcement.OuterConfig: a YAML
// file names its top-level kind and leaves the rest as an opaque blob,
// whose def block is then decoded into the concrete inner type.
// This lets one file format host multiple hyperparameter shapes (e.g. a
// future non-LGP kind) without HyperParameters growing a discriminator
// field of its own.
type outerConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// LoadYAML reads a YAML file at path and decodes it into
// HyperParameters, validating the result before returning it. Adapted
// from the teacher's reinforcement.FromYaml two-stage outer/inner
// unmarshal. Viper lowercases every key it reads, so the def block is
// decoded with viper's own case-insensitive decoder rather than
// re-marshaled through yaml, whose field matching is case-sensitive.
func LoadYAML(path string) (*HyperParameters, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	outer := &outerConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, fmt.Errorf("unmarshaling outer config %s: %w", path, err)
	}

	hp := &HyperParameters{}
	if err := vp.UnmarshalKey("def", hp); err != nil {
		return nil, fmt.Errorf("unmarshaling hyperparameters %s: %w", path, err)
	}

	if err := hp.Validate(); err != nil {
		return nil, err
	}

	return hp, nil
}
