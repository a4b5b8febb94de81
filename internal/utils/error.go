package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ConvertPanicValueToError returns v if it is an error, otherwise an error whose message is the Go representation of v.
func ConvertPanicValueToError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%#v", v)
}

// CombineErrors returns an error whose message is made of the messages of the non-nil errors, one per line.
// Nil is returned if there is no non-nil error.
func CombineErrors(errs ...error) error {
	var messages []string
	for _, err := range errs {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	if len(messages) == 0 {
		return nil
	}
	return errors.New(strings.Join(messages, "\n"))
}
