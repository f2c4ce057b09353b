package admitbot

// ApprovalRegistry maps short-lived opaque tokens to resolved document paths.
// Tokens are minted when an approval affordance is rendered and resolved when
// the user presses a button, so raw paths never reach the transport layer.
//
// Tokens are never reused: each render mints fresh tokens even for a path
// that already has one.
type ApprovalRegistry interface {
	// Register mints a fresh unguessable token for path and stores the
	// mapping. The token carries at least 96 bits of entropy.
	Register(path string) (token string)

	// Resolve returns the path registered for token. Returns ENOTFOUND if
	// the token is unknown or if the path no longer exists on disk.
	Resolve(token string) (path string, err error)

	// Clear empties the mapping.
	Clear()
}
