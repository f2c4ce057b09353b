package admitbot

import "context"

// Composer produces natural-language answers to applicant questions.
type Composer interface {
	// AnswerFromContext answers strictly from the supplied site context.
	// The model is instructed to state explicitly when the context lacks
	// the answer. An empty result means the model returned no usable text;
	// the caller is responsible for rendering a placeholder.
	AnswerFromContext(ctx context.Context, question string, siteContext string) (string, error)

	// AnswerFromDocument answers primarily from the document at path,
	// attached to the model call as raw bytes. The siteContext, if
	// non-empty, is treated as secondary background only.
	// Returns ENOTFOUND without issuing a model call if the document no
	// longer exists at call time.
	AnswerFromDocument(ctx context.Context, question string, path string, siteContext string) (string, error)
}
