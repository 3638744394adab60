package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads, parses, and normalizes the junction config at path.
// The result has defaults applied but has not been validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg, path)
	return &cfg, nil
}

// applyDefaults trims whitespace that tends to leak in from hand-edited
// YAML and fills fields the file may omit.
func applyDefaults(cfg *Config, path string) {
	j := &cfg.Junction
	j.Name = strings.TrimSpace(j.Name)
	j.VehicleAnchor = strings.TrimSpace(j.VehicleAnchor)
	j.LRTAnchor = strings.TrimSpace(j.LRTAnchor)
	j.Skeleton = strings.TrimSpace(j.Skeleton)

	if j.Name == "" {
		j.Name = DeriveName(path)
	}
	for i := range j.Stages {
		s := &j.Stages[i]
		s.Name = strings.TrimSpace(s.Name)
		s.MinType = strings.TrimSpace(s.MinType)
		s.Detector = strings.TrimSpace(s.Detector)
		if s.MinType == "" {
			s.MinType = MinTypeMin
		}
	}
	for i := range j.Transitions {
		t := &j.Transitions[i]
		t.From = strings.TrimSpace(t.From)
		t.To = strings.TrimSpace(t.To)
		t.Rest = strings.TrimSpace(t.Rest)
	}
}
