package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates partial configs from several sources. build
// merges them in the order they were added; a field set by an earlier
// config wins.
type configBuilder[T any] struct {
	configs  []*T
	err      error
	jsonPath func(*T) string
	validate func(*T) error
}

func newConfigBuilder[T any](jsonPath func(*T) string, validate func(*T) error) *configBuilder[T] {
	return &configBuilder[T]{
		configs:  make([]*T, 0, 4),
		jsonPath: jsonPath,
		validate: validate,
	}
}

func (b *configBuilder[T]) build() (*T, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(T)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if b.validate != nil {
		if err := b.validate(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func (b *configBuilder[T]) withEnv() *configBuilder[T] {
	envCfg := new(T)
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder[T]) with(cfg *T) *configBuilder[T] {
	if cfg != nil {
		b.configs = append(b.configs, cfg)
	}
	return b
}

// withJSON loads the file named by the first source that sets a JSON path.
func (b *configBuilder[T]) withJSON(parse func(path string) (*T, error)) *configBuilder[T] {
	if b.jsonPath == nil {
		return b
	}

	var jsonPath string
	for _, cfg := range b.configs {
		if p := b.jsonPath(cfg); p != "" {
			jsonPath = p
			break
		}
	}
	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parse(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, jsonCfg)
	return b
}
