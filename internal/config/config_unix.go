//go:build unix

package config

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

const (
	UNIX = true
)

func targetSpecificInit() {
	// HOME

	HOME, err := os.UserHomeDir()
	if err == nil {
		if HOME[len(HOME)-1] != '/' {
			HOME += "/"
		}
		USER_HOME = HOME
	}

	FORCE_COLOR = isSet(os.LookupEnv, "FORCE_COLOR")
	NO_COLOR = isSet(os.LookupEnv, "NO_COLOR")

	//TERMCOLOR

	TRUECOLOR_COLORTERM = os.Getenv("COLORTERM") == "truecolor"

	//TERM

	TERM_256COLOR_CAPABLE = strings.Contains(os.Getenv("TERM"), "256color")

	COLOR_PROFILE = ColorProfileFromEnv(os.LookupEnv)
	SHOULD_COLORIZE = COLOR_PROFILE != termenv.Ascii
}
