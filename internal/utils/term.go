package utils

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	SMALL_LINE_SEP = "------------------------------"
)

var ANSI_ESCAPE_SEQUENCE_REGEX = regexp.MustCompile("[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))")

func StripANSISequences(str string) string {
	return ANSI_ESCAPE_SEQUENCE_REGEX.ReplaceAllString(str, "")
}

func PrintSmallLineSeparator(w io.Writer) {
	fmt.Fprintln(w, SMALL_LINE_SEP)
}

// Indent prefixes every line of s with n spaces.
func Indent(s string, n int) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
