package structured

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFencedAndBareAgree(t *testing.T) {
	body := `{"title": "T", "meta_description": "M", "content": "C"}`
	inputs := []string{
		body,
		"```json\n" + body + "\n```",
		"```JSON" + body + "```",
		"```\n" + body + "\n```",
		"  \n" + body + "\n\n",
	}

	var want map[string]any
	for i, in := range inputs {
		res := Normalize(in)
		parsed, ok := res.(Parsed)
		require.True(t, ok, "input %d should parse", i)

		var got map[string]any
		require.NoError(t, parsed.Decode(&got))
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got, "input %d", i)
	}
}

func TestNormalizeArrays(t *testing.T) {
	res := Normalize("```json\n[{\"keyword\":\"a\"}]\n```")
	parsed, ok := res.(Parsed)
	require.True(t, ok)
	var got []map[string]string
	require.NoError(t, parsed.Decode(&got))
	assert.Equal(t, "a", got[0]["keyword"])
}

func TestParsedKeepsOriginalText(t *testing.T) {
	in := "```json\n{\"keyword\": \"only one\"}\n```"
	parsed, ok := Normalize(in).(Parsed)
	require.True(t, ok)
	assert.Equal(t, in, parsed.Text)
	assert.JSONEq(t, `{"keyword": "only one"}`, string(parsed.Value))
}

func TestNormalizeFallsBackWithOriginalText(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"Here is your blog post!",
		"```json\n{\"title\": \"unterminated\n```",
		"{not json}",
		`"just a string"`,
		"42",
		"```",
		"``````",
		"{\"a\":1} trailing words",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			res := Normalize(in)
			raw, ok := res.(RawFallback)
			require.True(t, ok, "input %q", in)
			assert.Equal(t, in, raw.Text)
		})
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```{\"a\":1}```"))
	assert.Equal(t, "plain", StripFences("  plain  "))
}
