package gemini_test

import (
	"context"
	"testing"

	"admitbot"
	"admitbot/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_SelectDocuments_EmptyCatalogSkipsModelCall(t *testing.T) {
	t.Parallel()

	// nil client: any model call would panic, so a clean return proves the
	// short-circuit.
	s := gemini.NewSelector(nil, "")

	names, err := s.SelectDocuments(context.Background(), "what is the tuition?", nil, 4, "")

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSelector_SelectDocuments_RequiresQuestion(t *testing.T) {
	t.Parallel()

	s := gemini.NewSelector(nil, "")

	_, err := s.SelectDocuments(context.Background(), "", []string{"fees.pdf"}, 4, "")

	require.Error(t, err)
	assert.Equal(t, admitbot.EINVALID, admitbot.ErrorCode(err))
}

func TestValidateSelection_CaseInsensitiveMatch(t *testing.T) {
	t.Parallel()

	got := gemini.ValidateSelection([]string{"Report.pdf"}, []string{"report.PDF"}, 4)

	assert.Equal(t, []string{"Report.pdf"}, got)
}

func TestValidateSelection_PreservesCatalogOrder(t *testing.T) {
	t.Parallel()

	names := []string{"a.pdf", "b.pdf", "c.pdf"}

	got := gemini.ValidateSelection(names, []string{"c.pdf", "a.pdf"}, 4)

	assert.Equal(t, []string{"a.pdf", "c.pdf"}, got)
}

func TestValidateSelection_TruncatesToK(t *testing.T) {
	t.Parallel()

	names := []string{"a.pdf", "b.pdf", "c.pdf"}

	got := gemini.ValidateSelection(names, names, 2)

	assert.Equal(t, []string{"a.pdf", "b.pdf"}, got)
}

func TestValidateSelection_UnknownNamesAreDropped(t *testing.T) {
	t.Parallel()

	got := gemini.ValidateSelection([]string{"a.pdf"}, []string{"invented.pdf"}, 4)

	assert.Empty(t, got)
}

func TestBuildSelectionPrompt_EnumeratesNamesVerbatim(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildSelectionPrompt("tuition?", []string{"fees.pdf", "curriculum.pdf"}, 2, "")

	assert.Contains(t, prompt, "fees.pdf\ncurriculum.pdf")
	assert.Contains(t, prompt, "N=2")
	assert.Contains(t, prompt, "Question: tuition?")
}

func TestBuildSelectionPrompt_IncludesSiteContextWhenPresent(t *testing.T) {
	t.Parallel()

	with := gemini.BuildSelectionPrompt("q", []string{"a.pdf"}, 1, "site text")
	without := gemini.BuildSelectionPrompt("q", []string{"a.pdf"}, 1, "")

	assert.Contains(t, with, "site text")
	assert.NotContains(t, without, "Site context")
}

func TestBuildSelectionConfig_ConstrainsOutputToStringArray(t *testing.T) {
	t.Parallel()

	config := gemini.BuildSelectionConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, float64(*config.Temperature), 0.001)
}
