package main

import (
	"flag"
	"fmt"
	"io"
	"slices"
)

const (
	RUN_SUBCMD                   = "run"
	LIST_SUBCMD                  = "list"
	OPS_SUBCMD                   = "ops"
	INSTALL_COMPLETIONS_SUBCMD   = "install-completions"
	UNINSTALL_COMPLETIONS_SUBCMD = "uninstall-completions"
	HELP_SUBCMD                  = "help"
)

var (
	SUBCOMMANDS = []string{
		RUN_SUBCMD, LIST_SUBCMD, OPS_SUBCMD, HELP_SUBCMD,
		INSTALL_COMPLETIONS_SUBCMD, UNINSTALL_COMPLETIONS_SUBCMD,
	}

	HELP_SUBCMD_EQUIVALENTS = []string{"--help", "-help", "-h"}

	SUBCOMMAND_DESCRIPTIONS = [][2]string{
		{RUN_SUBCMD, "run scenario files (or directories containing scenario files) and print a report"},
		{LIST_SUBCMD, "list the scenarios contained in scenario files"},
		{OPS_SUBCMD, "list the operations and error kinds that scenario steps can use"},
		{INSTALL_COMPLETIONS_SUBCMD, "install CLI completions by addding the completion command to the detected rc file (supported shells are bash, zsh and fish)"},
		{UNINSTALL_COMPLETIONS_SUBCMD, "uninstall CLI completions by removing the completion command from the detected rc file"},
		{HELP_SUBCMD, "show the general help or command-specific help"},
	}

	SUBCOMMAND_DESCRIPTION_MAP = map[string]string{}

	SEQCHECK_CMD_HELP = "usage: " + COMMAND_NAME + " <command> [options] [paths...]\n\ncommands:\n"
)

func init() {
	for _, entry := range SUBCOMMAND_DESCRIPTIONS {
		cmd, desc := entry[0], entry[1]
		SUBCOMMAND_DESCRIPTION_MAP[cmd] = desc
		SEQCHECK_CMD_HELP += "\t" + cmd + " - " + desc + "\n"
	}
}

// showHelp prints the help of a subcommand if args contains -h or --help.
func showHelp(flags *flag.FlagSet, args []string, out io.Writer) bool {
	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {

		cmd := flags.Name()
		if desc, ok := SUBCOMMAND_DESCRIPTION_MAP[cmd]; ok {
			fmt.Fprintln(out, desc)
		}

		flags.SetOutput(out)
		fmt.Fprint(out, "\noptions:\n")
		flags.PrintDefaults()

		return true
	}

	return false
}
