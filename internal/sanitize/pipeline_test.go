package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const cleanYAML = `root:
  name: Blog
modules:
  - name: User
    entity:
      fields:
        - name: email
          type: string
`

func TestSanitizeCleanInput(t *testing.T) {
	result, err := Sanitize(cleanYAML)
	require.NoError(t, err)

	// Already-clean input short-circuits at the direct parse
	assert.Len(t, result.Stages, 1)
	assert.Equal(t, StageFenceStrip, result.Stages[0].Name)

	// Parsed mapping matches a reference parse of the same text
	var reference map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(cleanYAML), &reference))
	assert.Equal(t, reference, result.Doc)
}

func TestSanitizeFencedInput(t *testing.T) {
	cases := map[string]string{
		"yaml fence":  "```yaml\n" + cleanYAML + "```",
		"json fence":  "```json\n" + cleanYAML + "```",
		"bare fence":  "```\n" + cleanYAML + "```",
		"with prose":  "Here is your blueprint:\n```yaml\n" + cleanYAML + "```\nLet me know!",
		"no fence":    cleanYAML,
		"whitespace":  "\n\n" + cleanYAML + "\n\n",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			result, err := Sanitize(input)
			require.NoError(t, err)
			assert.Contains(t, result.Doc, "modules")
		})
	}
}

func TestSanitizeIdempotence(t *testing.T) {
	inputs := []string{
		"```yaml\n" + cleanYAML + "```",
		cleanYAML,
		`{"modules": [{"name": "User"`,
	}

	for _, input := range inputs {
		first, err := Sanitize(input)
		require.NoError(t, err)

		second, err := Sanitize(first.Clean)
		require.NoError(t, err)
		assert.Equal(t, first.Clean, second.Clean)
		assert.Equal(t, first.Doc, second.Doc)
		// The re-run short-circuits at the direct parse
		assert.Len(t, second.Stages, 1)
	}
}

func TestSanitizeTruncatedFlow(t *testing.T) {
	// Flow-style output cut at a length limit: recovered by bracket
	// balancing.
	input := "```json\n" + `{"root": {"name": "Blog"}, "modules": [{"name": "User"` + "\n```"

	result, err := Sanitize(input)
	require.NoError(t, err)
	assert.Contains(t, result.Doc, "modules")
	require.Len(t, result.Stages, 3)
	assert.Equal(t, StageBalance, result.Stages[2].Name)
}

func TestSanitizeTruncatedBlockYAML(t *testing.T) {
	// Truncated block YAML with no open brackets is already structurally
	// complete.
	input := "```yaml\nmodules:\n  - name: User\n```"

	result, err := Sanitize(input)
	require.NoError(t, err)
	assert.Contains(t, result.Doc, "modules")
}

func TestSanitizeControlCharacters(t *testing.T) {
	// A raw newline inside a double-quoted scalar must not defeat the
	// pipeline, whichever stage ends up accepting it.
	input := `{"description": "line one` + "\n" + `line two", "modules": [{"name": "User"}]}`

	result, err := Sanitize(input)
	require.NoError(t, err)
	assert.Contains(t, result.Doc, "modules")
}

func TestSanitizeUnrecoverable(t *testing.T) {
	inputs := map[string]string{
		"prose only":    "I cannot generate a blueprint for that request.",
		"empty":         "",
		"scalar":        "42",
		"broken syntax": "modules:\n  - name: [unclosed\n    ] : bad",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Sanitize(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)

			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			// Every stage snapshot is carried for diagnosis
			assert.Len(t, malformed.Stages, 3)
			if _, ok := malformed.StageText(StageFenceStrip); !ok {
				t.Error("fence-strip snapshot missing")
			}
		})
	}
}

func TestSanitizeDeterminism(t *testing.T) {
	input := "```yaml\n" + cleanYAML + "```"
	a, errA := Sanitize(input)
	b, errB := Sanitize(input)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a.Clean, b.Clean)
	assert.Equal(t, a.Doc, b.Doc)

	bad := "just some prose"
	_, errC := Sanitize(bad)
	_, errD := Sanitize(bad)
	require.Error(t, errC)
	require.Error(t, errD)
	assert.Equal(t, errC.Error(), errD.Error())
}

func TestSanitizeUnterminatedString(t *testing.T) {
	// Output cut mid-string: the string is closed before brackets.
	input := `{"root": {"name": "Bl`

	result, err := Sanitize(input)
	require.NoError(t, err)
	assert.Contains(t, result.Doc, "root")
}
