package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/seqview/seqview/internal/config"
	"github.com/seqview/seqview/internal/scenario"
	"github.com/seqview/seqview/internal/utils"
)

func listScenarios(args []string, outW, errW io.Writer) int {
	flags := flag.NewFlagSet(LIST_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var useBuiltin bool
	flags.BoolVar(&useBuiltin, "builtin", false, "also list the scenarios embedded in the binary")

	if showHelp(flags, args, outW) {
		return 0
	}

	if err := flags.Parse(args); err != nil {
		return ERROR_STATUS_CODE
	}

	scenarios, err := loadScenarios(flags.Args(), useBuiltin)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	for _, sc := range scenarios {
		fmt.Fprintf(outW, "%s (%s, %d steps)\n", sc.Name, sc.Path, len(sc.Steps))
		if sc.Description != "" {
			fmt.Fprintln(outW, utils.Indent(strings.TrimSpace(sc.Description), 4))
		}
	}
	return 0
}

// loadScenarios loads the scenarios of the files found in paths. If no path is provided and builtin
// is false the default scenario directory is used, the builtin scenarios are used as a fallback when the
// directory contains no scenario file.
func loadScenarios(paths []string, builtin bool) ([]*scenario.Scenario, error) {
	var scenarios []*scenario.Scenario
	usingDefaultDir := false

	if builtin {
		loaded, err := scenario.LoadBuiltin()
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, loaded...)
	}

	if len(paths) == 0 && !builtin {
		dir, err := config.GetScenarioDir()
		if err != nil {
			return nil, err
		}
		paths = []string{dir}
		usingDefaultDir = true
	}

	if len(paths) > 0 {
		files, err := scenario.DiscoverAll(paths)
		if err != nil {
			return nil, err
		}

		loaded, err := scenario.LoadFiles(files)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, loaded...)
	}

	if len(scenarios) == 0 {
		if !usingDefaultDir {
			return nil, ErrNoScenario
		}
		return scenario.LoadBuiltin()
	}

	return scenarios, nil
}
