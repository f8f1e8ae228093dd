package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
)

// Load reads the config file at path. An empty path means [DefaultPath], and
// a missing default file yields [Default]. The result is validated.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg, err := FromFile(path)
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromFile decodes the file at path over [Default], choosing the format by
// extension: .toml, .yaml or .yml. The result is not validated.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FromTOML(data)
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return Config{}, gserrors.New(gserrors.ErrCodeInvalidConfig, "unsupported config file extension %q", ext)
	}
}

// FromTOML decodes TOML over [Default]. Unknown keys are rejected.
func FromTOML(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, gserrors.Wrap(gserrors.ErrCodeInvalidConfig, err, "parse toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, gserrors.New(gserrors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// FromYAML decodes YAML over [Default]. Unknown keys are rejected.
func FromYAML(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, gserrors.Wrap(gserrors.ErrCodeInvalidConfig, err, "parse yaml")
	}
	return cfg, nil
}
