package scenario

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/muesli/termenv"
	"github.com/seqview/seqview/internal/utils"
)

const (
	SUCCESS_COLOR = "2" //ANSI green
	FAILURE_COLOR = "1" //ANSI red
)

// A Report aggregates the results of several scenarios.
type Report struct {
	Results    []Result `json:"results"`
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
}

func NewReport(results []Result) *Report {
	report := &Report{
		Results: results,
		Total:   len(results),
	}
	for _, result := range results {
		if result.Ok() {
			report.Successful++
		} else {
			report.Failed++
		}
	}
	return report
}

func (r *Report) Ok() bool {
	return r.Failed == 0
}

// Summary returns a line of the form '<ok>/<total> successful, <failed>/<total> failed'.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d/%d successful, %d/%d failed", r.Successful, r.Total, r.Failed, r.Total)
}

// Print writes a human readable report, colors are only used if profile supports them.
func (r *Report) Print(w io.Writer, profile termenv.Profile) {
	pass := profile.String("PASS").Foreground(profile.Color(SUCCESS_COLOR)).String()
	fail := profile.String("FAIL").Foreground(profile.Color(FAILURE_COLOR)).Bold().String()

	for _, result := range r.Results {
		if result.Ok() {
			fmt.Fprintf(w, "%s %s (%d steps)\n", pass, result.Scenario, result.Steps)
		} else {
			fmt.Fprintf(w, "%s %s\n", fail, result.Scenario)
		}
	}

	utils.PrintSmallLineSeparator(w)
	fmt.Fprintln(w, r.Summary())

	if r.Ok() {
		return
	}

	for _, result := range r.Results {
		if result.Ok() {
			continue
		}
		location := result.Scenario
		if result.Path != "" {
			location += " in " + result.Path
		}
		fmt.Fprintf(w, "%s: %s\n", location, result.Failure.Error())
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	marshalled, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	marshalled = append(marshalled, '\n')
	_, err = w.Write(marshalled)
	return err
}
