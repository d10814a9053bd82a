package themes

// Theme maps a human-meaningful topic to its trigger keywords. Themes
// are evaluated in the order they appear in the configuration file so
// that keyword-match ordering is reproducible across runs.
type Theme struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Config is the process-wide, read-only theme keyword map, loaded once
// at startup and passed explicitly to the assigner.
type Config struct {
	Themes []Theme `yaml:"themes"`
}
