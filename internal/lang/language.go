// Package lang maps file names to language identifiers.
package lang

// PlainText is the identifier used when no language matches.
const PlainText = "plaintext"

// Language describes one language known to the registry.
type Language struct {
	// ID is the identifier users list in syntax_ignore (e.g. "markdown").
	ID string

	// Name is the display name of the language.
	Name string

	// Extensions maps file extensions (with the dot) to this language.
	Extensions []string

	// Filenames maps exact base names (e.g. "Makefile") to this language.
	Filenames []string
}
