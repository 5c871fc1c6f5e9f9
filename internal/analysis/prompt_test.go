package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"callsight/internal/domain"
)

func TestBuildTextPrompt(t *testing.T) {
	transcript := "Revenue grew 20% YoY, guidance raised."
	prompt := BuildTextPrompt(transcript)

	assert.True(t, strings.HasSuffix(prompt, transcript), "transcript must be embedded verbatim at the end")
	for _, s := range domain.TextSentiments {
		assert.Contains(t, prompt, s)
	}
	assert.Contains(t, prompt, "Do not use markdown. Return raw JSON.")
	assert.NotContains(t, prompt, "key_metrics")
}

func TestBuildTextPrompt_NoTruncation(t *testing.T) {
	transcript := strings.Repeat("Management remains constructive. ", 10000)
	prompt := BuildTextPrompt(transcript)
	assert.True(t, strings.HasSuffix(prompt, transcript))
}

func TestBuildMultimodalPrompt(t *testing.T) {
	prompt := BuildMultimodalPrompt()

	for _, s := range domain.MultimodalSentiments {
		assert.Contains(t, prompt, s)
	}
	for _, m := range domain.KeyMetricNames {
		assert.Contains(t, prompt, `"`+m+`"`)
	}
	assert.Contains(t, prompt, "OCR")
	assert.Contains(t, prompt, "Do not use markdown. Return raw JSON.")
}
