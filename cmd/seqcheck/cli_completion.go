package main

import (
	"os"
	"strconv"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	predictScenarioFilesAndDirs = predict.Files("*.yaml")

	completer = CreateCompleter(func(c *Completer) *complete.Command {
		return &complete.Command{
			Sub: map[string]*complete.Command{
				RUN_SUBCMD: {
					Flags: map[string]complete.Predictor{
						"json":     complete.PredictFunc(c.predictFileOrDirAfterSwitch),
						"builtin":  complete.PredictFunc(c.predictFileOrDirAfterSwitch),
						"no-color": complete.PredictFunc(c.predictFileOrDirAfterSwitch),
						"v":        complete.PredictFunc(c.predictFileOrDirAfterSwitch),
						"timeout":  predict.Nothing,
					},
					Args: predictScenarioFilesAndDirs,
				},
				LIST_SUBCMD: {
					Flags: map[string]complete.Predictor{
						"builtin": complete.PredictFunc(c.predictFileOrDirAfterSwitch),
					},
					Args: predictScenarioFilesAndDirs,
				},
				OPS_SUBCMD:                   {},
				HELP_SUBCMD:                  {},
				INSTALL_COMPLETIONS_SUBCMD:   {},
				UNINSTALL_COMPLETIONS_SUBCMD: {},
			},
		}
	})
)

type Completer struct {
	*complete.Command
	currentCompLine  string
	currentCompPoint int
}

func CreateCompleter(create func(c *Completer) *complete.Command) *Completer {
	c := &Completer{}
	c.Command = create(c)
	return c
}

func (c *Completer) Complete(name string) {
	c.currentCompLine = os.Getenv("COMP_LINE")
	c.currentCompPoint, _ = strconv.Atoi(os.Getenv("COMP_POINT")) //ignore error because .Complete will also check the value

	if c.currentCompPoint > len(c.currentCompLine) || c.currentCompPoint < 0 {
		c.currentCompPoint = len(c.currentCompLine)
	}

	c.Command.Complete(name)
}

func (c *Completer) beforeCursorPoint() string {
	return c.currentCompLine[:c.currentCompPoint]
}

func (c *Completer) predictFileOrDirAfterSwitch(prefix string) (results []string) {
	s := c.beforeCursorPoint()
	if s == "" {
		return
	}

	switch s[len(s)-1] {
	case '=':
		//The flag is a switch, it does not accept any value.
		return
	default:
		return predictScenarioFilesAndDirs.Predict(prefix)
	}
}
