package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

const (
	APP_NAME = "seqcheck"

	SCENARIO_DIR_RELPATH = APP_NAME + "/scenarios"
	SCENARIO_DIR_PERM    = 0o700

	LOG_LEVEL_ENV_VARNAME = "SEQCHECK_LOG_LEVEL"
	LOG_JSON_ENV_VARNAME  = "SEQCHECK_LOG_JSON"
	DEFAULT_LOG_LEVEL     = zerolog.InfoLevel
)

var (
	USER_HOME             string
	FORCE_COLOR           bool
	TRUECOLOR_COLORTERM   bool
	TERM_256COLOR_CAPABLE bool
	NO_COLOR              bool
	SHOULD_COLORIZE       bool
	COLOR_PROFILE         = termenv.Ascii

	LOG_LEVEL = DEFAULT_LOG_LEVEL
	LOG_JSON  bool
)

type LookupEnvFn func(name string) (string, bool)

func init() {
	targetSpecificInit()

	level, err := LogLevelFromEnv(os.LookupEnv)
	if err == nil {
		LOG_LEVEL = level
	}
	LOG_JSON = isSet(os.LookupEnv, LOG_JSON_ENV_VARNAME)
}

// DefaultScenarioDir returns the directory searched for scenario files when no path is given.
func DefaultScenarioDir() string {
	return filepath.Join(xdg.ConfigHome, SCENARIO_DIR_RELPATH)
}

// GetScenarioDir returns the default scenario directory, the directory is created if it does not exist.
func GetScenarioDir() (string, error) {
	dir := DefaultScenarioDir()
	if err := os.MkdirAll(dir, SCENARIO_DIR_PERM); err != nil {
		return "", err
	}
	return dir, nil
}

// LogLevelFromEnv reads the log level from SEQCHECK_LOG_LEVEL, DEFAULT_LOG_LEVEL is returned if the variable is not set.
func LogLevelFromEnv(lookup LookupEnvFn) (zerolog.Level, error) {
	s, ok := lookup(LOG_LEVEL_ENV_VARNAME)
	if !ok || s == "" {
		return DEFAULT_LOG_LEVEL, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return DEFAULT_LOG_LEVEL, fmt.Errorf("invalid value for %s: %w", LOG_LEVEL_ENV_VARNAME, err)
	}
	return level, nil
}

// ColorProfileFromEnv returns the color profile to use given the environment, termenv.Ascii means no colors.
func ColorProfileFromEnv(lookup LookupEnvFn) termenv.Profile {
	if isSet(lookup, "NO_COLOR") {
		return termenv.Ascii
	}

	colorterm, _ := lookup("COLORTERM")
	term, _ := lookup("TERM")

	switch {
	case colorterm == "truecolor" || colorterm == "24bit":
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	case isSet(lookup, "FORCE_COLOR"):
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}

func isSet(lookup LookupEnvFn, name string) bool {
	s, ok := lookup(name)
	return ok && len(s) != 0 && s != "false" && s != "0"
}
