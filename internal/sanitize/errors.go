package sanitize

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse is matched by errors.Is against MalformedResponseError
var ErrMalformedResponse = errors.New("malformed response")

// MalformedResponseError is returned when the full repair pipeline cannot
// recover a parseable mapping. It carries the text snapshot after each stage
// for diagnosis.
type MalformedResponseError struct {
	Stages []Stage
	Cause  error
}

func (e *MalformedResponseError) Error() string {
	var names []string
	for _, s := range e.Stages {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("response is not valid YAML after repair stages [%s]: %v",
		strings.Join(names, ", "), e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// StageText returns the snapshot recorded for the named stage, if any.
func (e *MalformedResponseError) StageText(name string) (string, bool) {
	for _, s := range e.Stages {
		if s.Name == name {
			return s.Text, true
		}
	}
	return "", false
}
