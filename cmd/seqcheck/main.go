package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/posener/complete/v2/install"
	"github.com/seqview/seqview/internal/config"
	"github.com/seqview/seqview/internal/scenario"
	"github.com/seqview/seqview/internal/utils"
)

const (
	COMMAND_NAME = config.APP_NAME

	ERROR_STATUS_CODE = 1

	RUN_ID_LOG_FIELD_NAME = "run"

	MAX_COMMAND_NAME_DIFFERENCES = 2
)

var ErrNoScenario = errors.New("no scenario found")

func main() {
	completer.Complete(COMMAND_NAME)

	statusCode := _main(os.Args, os.Stdout, os.Stderr)
	os.Exit(statusCode)
}

func _main(args []string, outW io.Writer, errW io.Writer) (statusCode int) {
	if len(args) == 1 {
		fmt.Fprint(errW, SEQCHECK_CMD_HELP)
		return ERROR_STATUS_CODE
	}

	mainSubCommand := args[1]
	mainSubCommandArgs := args[2:]

	if slices.Contains(HELP_SUBCMD_EQUIVALENTS, mainSubCommand) {
		mainSubCommand = HELP_SUBCMD
	}

	switch mainSubCommand {
	case HELP_SUBCMD:
		if len(mainSubCommandArgs) == 0 {
			fmt.Fprint(outW, SEQCHECK_CMD_HELP)
			return
		}
		desc, ok := SUBCOMMAND_DESCRIPTION_MAP[mainSubCommandArgs[0]]
		if !ok {
			fmt.Fprintf(errW, "unknown command %q\n", mainSubCommandArgs[0])
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, desc)
		return
	case RUN_SUBCMD:
		return runScenarios(mainSubCommandArgs, outW, errW)
	case LIST_SUBCMD:
		return listScenarios(mainSubCommandArgs, outW, errW)
	case OPS_SUBCMD:
		fmt.Fprintln(outW, "operations:")
		fmt.Fprintln(outW, utils.Indent(strings.Join(scenario.OperationNames(), "\n"), 2))
		fmt.Fprintln(outW, "error kinds:")
		fmt.Fprintln(outW, utils.Indent(strings.Join(scenario.ErrorKindNames(), "\n"), 2))
		return
	case INSTALL_COMPLETIONS_SUBCMD:
		if err := install.Install(COMMAND_NAME); err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		return
	case UNINSTALL_COMPLETIONS_SUBCMD:
		if err := install.Uninstall(COMMAND_NAME); err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		return
	default:
		msg := fmt.Sprintf("unknown command '%s'", mainSubCommand)
		closest, _, ok := utils.FindClosestString(context.Background(), SUBCOMMANDS, mainSubCommand, MAX_COMMAND_NAME_DIFFERENCES)
		if ok {
			msg += fmt.Sprintf(", did you mean '%s' ?", closest)
		}
		fmt.Fprintln(errW, msg)
		fmt.Fprint(errW, SEQCHECK_CMD_HELP)
		return ERROR_STATUS_CODE
	}
}
