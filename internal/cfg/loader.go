package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"postgres" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"postgres" description:"Database password"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"bank_reviews_db" description:"Database name"`
	DBSSLMode  string `long:"db-sslmode" env:"DB_SSLMODE" default:"disable" description:"Database sslmode"`

	// Application configuration
	ThemesFile string `long:"themes-file" env:"THEMES_FILE" default:"./config/themes.yaml" description:"YAML file with the theme keyword map"`
	Port       string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (serve command)"`
	Debug      bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Preprocess datasetOpts `command:"preprocess" description:"Clean and validate a raw review dataset"`
	Analyze    datasetOpts `command:"analyze" description:"Score sentiment and assign themes to a clean dataset"`
	Load       inputOpts   `command:"load" description:"Load an enriched dataset into the store"`
	Run        inputOpts   `command:"run" description:"Run the full pipeline: preprocess, analyze, load"`
	Serve      struct{}    `command:"serve" description:"Serve the analyst stats API"`
}

type datasetOpts struct {
	Input  string `long:"input" short:"i" required:"true" description:"Input CSV path"`
	Output string `long:"output" short:"o" required:"true" description:"Output CSV path"`
}

type inputOpts struct {
	Input string `long:"input" short:"i" required:"true" description:"Input CSV path"`
}

var globalCfg *Cfg

// Load parses configuration from a .env file (if present), environment
// variables and command-line flags, in that order of precedence.
// Returns (nil, nil) when help was requested.
func Load() (*Cfg, error) {
	_ = godotenv.Load()

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if parser.Active == nil {
		return nil, fmt.Errorf("no command given, expected one of: preprocess, analyze, load, run, serve")
	}

	cfg := &Cfg{
		DBHost:     raw.DBHost,
		DBPort:     raw.DBPort,
		DBUser:     raw.DBUser,
		DBPassword: raw.DBPassword,
		DBName:     raw.DBName,
		DBSSLMode:  raw.DBSSLMode,
		ThemesFile: raw.ThemesFile,
		Port:       raw.Port,
		Debug:      raw.Debug,
		Version:    GetVersion(),
		Command:    parser.Active.Name,
	}

	switch cfg.Command {
	case "preprocess":
		cfg.Input, cfg.Output = raw.Preprocess.Input, raw.Preprocess.Output
	case "analyze":
		cfg.Input, cfg.Output = raw.Analyze.Input, raw.Analyze.Output
	case "load":
		cfg.Input = raw.Load.Input
	case "run":
		cfg.Input = raw.Run.Input
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
