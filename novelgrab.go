// Package novelgrab downloads web novels chapter by chapter. It resolves a
// book's chapter listing, walks its pagination, extracts and cleans each
// chapter page, and hands the result to a pluggable sink (text files, JSON,
// Markdown, or SQLite).
//
// This package contains domain types, interfaces, and the pure heuristics
// shared by implementations. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package novelgrab
