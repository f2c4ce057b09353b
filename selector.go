package admitbot

import "context"

// Selector picks the document names most relevant to a question.
type Selector interface {
	// SelectDocuments asks the model to choose up to k names from names
	// relevant to question. The siteContext, if non-empty, is supplied to
	// the model as disambiguating background only.
	//
	// The result is always a subsequence of names: model output is matched
	// case-insensitively against the real catalog, order is preserved from
	// names (not from the model), and the result is truncated to k. An
	// empty result signals "no relevant document" and is not an error.
	// An empty names input short-circuits to an empty result without
	// calling the model.
	SelectDocuments(ctx context.Context, question string, names []string, k int, siteContext string) ([]string, error)
}
