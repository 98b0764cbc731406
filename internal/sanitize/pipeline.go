package sanitize

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Stage is a named snapshot of the text after one repair transformation.
type Stage struct {
	Name string
	Text string
}

// Stage names, in pipeline order.
const (
	StageFenceStrip = "fence-strip"
	StageEscape     = "escape-control-chars"
	StageBalance    = "balance-brackets"
)

// Result holds the recovered text, its parsed mapping, and the stages that
// were applied to get there.
type Result struct {
	Clean  string
	Doc    map[string]interface{}
	Stages []Stage
}

// Sanitize runs the repair pipeline over raw generated text. Each stage feeds
// the next and the pipeline returns as soon as a stage's output parses as a
// YAML mapping. The function is pure: identical input yields identical output
// or an identical failure, and re-running it on a successful result's Clean
// text short-circuits at the direct parse.
func Sanitize(raw string) (*Result, error) {
	text := StripFences(raw)
	stages := []Stage{{Name: StageFenceStrip, Text: text}}

	if doc, err := parseMapping(text); err == nil {
		return &Result{Clean: text, Doc: doc, Stages: stages}, nil
	}

	text = EscapeControlChars(text)
	stages = append(stages, Stage{Name: StageEscape, Text: text})
	if doc, err := parseMapping(text); err == nil {
		return &Result{Clean: text, Doc: doc, Stages: stages}, nil
	}

	text = BalanceBrackets(text)
	stages = append(stages, Stage{Name: StageBalance, Text: text})
	doc, err := parseMapping(text)
	if err != nil {
		return nil, &MalformedResponseError{Stages: stages, Cause: err}
	}
	return &Result{Clean: text, Doc: doc, Stages: stages}, nil
}

// parseMapping parses text as YAML and requires a non-empty top-level
// mapping. Scalars and sequences are rejected; prose often parses as a bare
// YAML scalar and must not count as recovery.
func parseMapping(text string) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("document is empty or not a mapping")
	}
	return doc, nil
}
