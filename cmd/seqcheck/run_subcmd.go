package main

import (
	"context"
	"flag"
	"io"
	"time"

	"github.com/muesli/termenv"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/seqview/seqview/internal/config"
	"github.com/seqview/seqview/internal/scenario"
)

func runScenarios(args []string, outW, errW io.Writer) int {
	flags := flag.NewFlagSet(RUN_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var useBuiltin, outputJSON, noColor, verbose bool
	var timeout time.Duration

	flags.BoolVar(&useBuiltin, "builtin", false, "also run the scenarios embedded in the binary")
	flags.BoolVar(&outputJSON, "json", false, "write the report as JSON")
	flags.BoolVar(&noColor, "no-color", false, "disable colors in the report")
	flags.BoolVar(&verbose, "v", false, "log the execution of every scenario")
	flags.DurationVar(&timeout, "timeout", 0, "maximum duration of the whole run (0 means no limit)")

	if showHelp(flags, args, outW) {
		return 0
	}

	if err := flags.Parse(args); err != nil {
		return ERROR_STATUS_CODE
	}

	logger := createLogger(errW, verbose)

	scenarios, err := loadScenarios(flags.Args(), useBuiltin)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load scenarios")
		return ERROR_STATUS_CODE
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Debug().Int("scenarios", len(scenarios)).Msg("run started")

	report := scenario.NewReport(scenario.RunAll(ctx, scenarios, logger))

	logger.Debug().Int("failed", report.Failed).Msg("run finished")

	if outputJSON {
		if err := report.WriteJSON(outW); err != nil {
			logger.Error().Err(err).Msg("failed to write the report")
			return ERROR_STATUS_CODE
		}
	} else {
		profile := config.COLOR_PROFILE
		if noColor {
			profile = termenv.Ascii
		}
		report.Print(outW, profile)
	}

	if !report.Ok() {
		return ERROR_STATUS_CODE
	}
	return 0
}

func createLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := config.LOG_LEVEL
	if verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	var out io.Writer = w
	if !config.LOG_JSON {
		out = zerolog.ConsoleWriter{Out: w, NoColor: !config.SHOULD_COLORIZE, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str(RUN_ID_LOG_FIELD_NAME, ulid.Make().String()).
		Logger()
}
