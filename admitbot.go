// Package admitbot provides a conversational assistant that answers
// prospective-student questions about university programs. It combines a
// site crawl, a local PDF corpus, and an LLM backend: questions are either
// answered directly from cached site text, or grounded in a document the
// user approves from an LLM-selected shortlist.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, telegram/, fs/).
package admitbot
