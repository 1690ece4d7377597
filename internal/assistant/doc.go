// Package assistant implements the AI study assistant: a bounded
// tool-execution loop over the Gemini API. The model may invoke a fixed
// set of data-backed tools, each closed over the authenticated user's id,
// so it can read and mutate that user's decks, collections and cards but
// never anyone else's. The loop issues at most a configured number of
// model invocations per user message.
package assistant
