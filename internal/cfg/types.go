package cfg

// Cfg holds the resolved application configuration.
type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Application configuration
	ThemesFile string
	Port       string

	// Application metadata
	Debug   bool
	Version string

	// Active subcommand ("preprocess", "analyze", "load", "run", "serve")
	// and its options.
	Command string
	Input   string
	Output  string
}
