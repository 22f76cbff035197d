// Package loader fetches documents over HTTP and reduces them to the plain
// text the extraction pipeline works on. HTML pages go through readability
// extraction with a markdown conversion fallback; anything else is used as-is.
// Oversized documents are truncated to a configurable rune budget.
package loader
