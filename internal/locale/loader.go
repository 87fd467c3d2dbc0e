package locale

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed configs/*.yaml
var configFS embed.FS

// builtinConfigs maps locale names to their configurations
var builtinConfigs = map[string]*Config{}

// builtinErr records the first failure while loading embedded configs so it
// surfaces on Load instead of being swallowed at init.
var builtinErr error

func init() {
	entries, err := configFS.ReadDir("configs")
	if err != nil {
		builtinErr = err
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := configFS.ReadFile(path.Join("configs", entry.Name()))
		if err != nil {
			builtinErr = err
			continue
		}

		cfg, err := parse(data)
		if err != nil {
			builtinErr = fmt.Errorf("%s: %w", entry.Name(), err)
			continue
		}

		builtinConfigs[cfg.Name] = cfg
	}
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingKey)
	}
	if err := cfg.Compile(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads a built-in locale configuration by name
func Load(name string) (*Config, error) {
	if cfg, ok := builtinConfigs[name]; ok {
		return cfg, nil
	}
	if builtinErr != nil {
		return nil, fmt.Errorf("%w: %s (%v)", ErrUnknownLocale, name, builtinErr)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, name)
}

// Available returns the names of all built-in locales, sorted
func Available() []string {
	names := make([]string, 0, len(builtinConfigs))
	for name := range builtinConfigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFromFile loads a locale configuration from a YAML file. Keys absent
// from the file are inherited from the built-in locale named by its
// `extends` field, if any.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file: %w", err)
	}

	var header struct {
		Extends string `yaml:"extends"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("failed to parse locale file: %w", err)
	}

	var cfg Config
	if header.Extends != "" {
		base, err := Load(header.Extends)
		if err != nil {
			return nil, err
		}
		cfg.Patterns = make(map[string]string, len(base.Patterns))
		for k, v := range base.Patterns {
			cfg.Patterns[k] = v
		}
		cfg.Words = make(map[string]string, len(base.Words))
		for k, v := range base.Words {
			cfg.Words[k] = v
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse locale file: %w", err)
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingKey)
	}
	if err := cfg.Compile(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
