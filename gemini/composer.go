package gemini

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"admitbot"

	"google.golang.org/genai"
)

// Ensure Composer implements admitbot.Composer at compile time.
var _ admitbot.Composer = (*Composer)(nil)

// Composer implements admitbot.Composer using Gemini free-text completion,
// optionally grounded in an attached document.
type Composer struct {
	client *genai.Client
	model  string
}

// NewComposer creates a new Composer. An empty model selects DefaultModel.
func NewComposer(client *genai.Client, model string) *Composer {
	if model == "" {
		model = DefaultModel
	}
	return &Composer{client: client, model: model}
}

// AnswerFromContext answers strictly from the supplied site context.
func (c *Composer) AnswerFromContext(ctx context.Context, question string, siteContext string) (string, error) {
	if question == "" {
		return "", admitbot.Errorf(admitbot.EINVALID, "question required")
	}

	prompt := BuildContextPrompt(question, siteContext)

	temp := float32(0.3)
	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{Temperature: &temp},
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", admitbot.Errorf(admitbot.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// AnswerFromDocument answers primarily from the document at path, attached
// to the model call as raw bytes of its media type.
func (c *Composer) AnswerFromDocument(ctx context.Context, question string, path string, siteContext string) (string, error) {
	if question == "" {
		return "", admitbot.Errorf(admitbot.EINVALID, "question required")
	}

	// Recheck existence even though the approval registry did: the file can
	// disappear between token minting and the button press.
	if _, err := os.Stat(path); err != nil {
		return "", admitbot.Errorf(admitbot.ENOTFOUND, "document %q not found", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", admitbot.Errorf(admitbot.ENOTFOUND, "document %q not readable", path)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, mediaType(path)),
		{Text: BuildDocumentPrompt(question, siteContext)},
	}

	temp := float32(0.2)
	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: parts}},
		&genai.GenerateContentConfig{Temperature: &temp},
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", admitbot.Errorf(admitbot.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildContextPrompt builds the context-only answer prompt.
func BuildContextPrompt(question string, siteContext string) string {
	var sb strings.Builder
	sb.WriteString("You answer prospective students' questions about university degree programs.\n")
	sb.WriteString("Below is context collected from the university website. If the answer is not in the context, say so explicitly.\n\n")
	sb.WriteString(siteContext)
	fmt.Fprintf(&sb, "\n\nQuestion: %s", question)
	return sb.String()
}

// BuildDocumentPrompt builds the instruction accompanying an attached
// document. The site context, when present, is background only.
func BuildDocumentPrompt(question string, siteContext string) string {
	var sb strings.Builder
	if siteContext != "" {
		sb.WriteString("A document is attached. Answer from its contents.\n")
		sb.WriteString("There is also brief site context below; use it only as background.\n")
		sb.WriteString("If the answer is not in the document, say so explicitly.\n\n")
		sb.WriteString("Site context (brief):\n")
		sb.WriteString(siteContext)
		sb.WriteString("\n")
	} else {
		sb.WriteString("Answer from the contents of the attached document. If the answer is not in the document, say so explicitly.\n")
	}
	fmt.Fprintf(&sb, "\nQuestion: %s", question)
	return sb.String()
}

// mediaType derives the attachment media type from the file extension,
// defaulting to PDF, the only type the downloader currently collects.
func mediaType(path string) string {
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		return mt
	}
	return "application/pdf"
}
