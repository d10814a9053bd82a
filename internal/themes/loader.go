package themes

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"reviewpipe/internal/review"
)

// Loader handles loading and validation of the theme keyword map.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and validates the theme configuration. A missing or empty
// map is a configuration error: the pipeline must not run without one.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, &review.ConfigurationError{Msg: fmt.Sprintf("cannot read theme config %s", l.path), Err: err}
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &review.ConfigurationError{Msg: fmt.Sprintf("cannot parse theme config %s", l.path), Err: err}
	}

	if err := l.validate(&config); err != nil {
		return nil, err
	}

	// Keywords are matched against normalized (lower-cased) text.
	for i := range config.Themes {
		for j, kw := range config.Themes[i].Keywords {
			config.Themes[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}

	log.Printf("Loaded %d themes from %s", len(config.Themes), l.path)
	return &config, nil
}

func (l *Loader) validate(config *Config) error {
	if len(config.Themes) == 0 {
		return &review.ConfigurationError{Msg: fmt.Sprintf("theme config %s defines no themes", l.path)}
	}

	seen := make(map[string]bool, len(config.Themes))
	for i, theme := range config.Themes {
		if theme.Name == "" {
			return &review.ConfigurationError{Msg: fmt.Sprintf("theme at index %d has no name", i)}
		}
		if seen[theme.Name] {
			return &review.ConfigurationError{Msg: fmt.Sprintf("duplicate theme name %q", theme.Name)}
		}
		seen[theme.Name] = true

		if len(theme.Keywords) == 0 {
			return &review.ConfigurationError{Msg: fmt.Sprintf("theme %q has no keywords", theme.Name)}
		}
		for _, kw := range theme.Keywords {
			if strings.TrimSpace(kw) == "" {
				return &review.ConfigurationError{Msg: fmt.Sprintf("theme %q has an empty keyword", theme.Name)}
			}
		}
	}

	return nil
}
