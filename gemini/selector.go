// Package gemini implements admitbot's LLM-backed services using Google
// Gemini via google.golang.org/genai.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"admitbot"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Selector implements admitbot.Selector at compile time.
var _ admitbot.Selector = (*Selector)(nil)

// Selector implements admitbot.Selector using Gemini structured output.
type Selector struct {
	client *genai.Client
	model  string
}

// NewSelector creates a new Selector. An empty model selects DefaultModel.
func NewSelector(client *genai.Client, model string) *Selector {
	if model == "" {
		model = DefaultModel
	}
	return &Selector{client: client, model: model}
}

// SelectDocuments asks the model to choose up to k names relevant to the
// question and validates the response against the real catalog.
func (s *Selector) SelectDocuments(ctx context.Context, question string, names []string, k int, siteContext string) ([]string, error) {
	if question == "" {
		return nil, admitbot.Errorf(admitbot.EINVALID, "question required")
	}
	if len(names) == 0 {
		return nil, nil
	}
	if k < 1 {
		k = 1
	}

	prompt := BuildSelectionPrompt(question, names, k, siteContext)
	config := BuildSelectionConfig()

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, admitbot.Errorf(admitbot.EINTERNAL, "gemini returned nil result")
	}

	// The response schema constrains the output to a JSON array of strings;
	// anything else is a hard decode failure, not something to paper over.
	var chosen []string
	if err := json.Unmarshal([]byte(result.Text()), &chosen); err != nil {
		return nil, admitbot.Errorf(admitbot.EINTERNAL, "malformed selection response: %s", err)
	}

	return ValidateSelection(names, chosen, k), nil
}

// BuildSelectionPrompt builds the file-selection prompt. Catalog names are
// enumerated verbatim, one per line.
func BuildSelectionPrompt(question string, names []string, k int, siteContext string) string {
	var sb strings.Builder
	sb.WriteString("Choose up to N file names from the list below that are most relevant to the question.\n")
	sb.WriteString("Return strictly a JSON array of strings (exact names from the list). If none fit, return [].\n")
	if siteContext != "" {
		sb.WriteString("Site context follows; use it only to understand which files to choose.\n\n")
		sb.WriteString(siteContext)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\nN=%d\n", k)
	fmt.Fprintf(&sb, "Question: %s\n", question)
	sb.WriteString("Available files (one per line):\n")
	sb.WriteString(strings.Join(names, "\n"))
	return sb.String()
}

// BuildSelectionConfig returns the GenerateContentConfig for selection calls:
// low temperature, JSON output constrained to an array of strings.
func BuildSelectionConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	}
}

// ValidateSelection filters names down to those the model chose, matching
// case-insensitively, preserving the catalog's original order, truncated to k.
func ValidateSelection(names []string, chosen []string, k int) []string {
	if k < 1 {
		k = 1
	}

	chosenLower := make(map[string]struct{}, len(chosen))
	for _, c := range chosen {
		chosenLower[strings.ToLower(c)] = struct{}{}
	}

	var validated []string
	for _, name := range names {
		if _, ok := chosenLower[strings.ToLower(name)]; ok {
			validated = append(validated, name)
		}
	}
	if len(validated) > k {
		validated = validated[:k]
	}
	return validated
}
