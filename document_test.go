package admitbot_test

import (
	"path/filepath"
	"testing"

	"admitbot"

	"github.com/stretchr/testify/assert"
)

func TestNewDocument_DerivesDisplayNameFromFinalSegment(t *testing.T) {
	t.Parallel()

	doc := admitbot.NewDocument(filepath.Join("downloads", "masters", "fees.pdf"))

	assert.Equal(t, "fees.pdf", doc.DisplayName)
}

func TestDisplayNames_PreservesOrder(t *testing.T) {
	t.Parallel()

	docs := []admitbot.Document{
		admitbot.NewDocument("a/curriculum.pdf"),
		admitbot.NewDocument("b/fees.pdf"),
	}

	assert.Equal(t, []string{"curriculum.pdf", "fees.pdf"}, admitbot.DisplayNames(docs))
}
