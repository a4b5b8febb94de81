//go:build !unix

package config

import (
	"os"

	"github.com/muesli/termenv"
)

const (
	UNIX = false
)

func targetSpecificInit() {
	HOME, err := os.UserHomeDir()
	if err == nil {
		USER_HOME = HOME
	}

	FORCE_COLOR = isSet(os.LookupEnv, "FORCE_COLOR")
	NO_COLOR = isSet(os.LookupEnv, "NO_COLOR")
	COLOR_PROFILE = ColorProfileFromEnv(os.LookupEnv)
	SHOULD_COLORIZE = COLOR_PROFILE != termenv.Ascii
}
