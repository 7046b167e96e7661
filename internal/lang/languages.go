package lang

// RegisterBuiltins registers the bundled languages once.
func RegisterBuiltins() {
	builtinOnce.Do(func() {
		for _, l := range builtins {
			Register(l)
		}
	})
}

var builtins = []*Language{
	{ID: "go", Name: "Go", Extensions: []string{".go"}},
	{ID: "python", Name: "Python", Extensions: []string{".py", ".pyw"}},
	{ID: "javascript", Name: "JavaScript", Extensions: []string{".js", ".mjs", ".cjs"}},
	{ID: "typescript", Name: "TypeScript", Extensions: []string{".ts", ".mts", ".cts"}},
	{ID: "json", Name: "JSON", Extensions: []string{".json"}},
	{ID: "rust", Name: "Rust", Extensions: []string{".rs"}},
	{ID: "c", Name: "C", Extensions: []string{".c", ".h"}},
	{ID: "cpp", Name: "C++", Extensions: []string{".cc", ".cpp", ".cxx", ".hpp"}},
	{ID: "java", Name: "Java", Extensions: []string{".java"}},
	{ID: "markdown", Name: "Markdown", Extensions: []string{".md", ".markdown"}},
	{ID: "yaml", Name: "YAML", Extensions: []string{".yaml", ".yml"}},
	{ID: "toml", Name: "TOML", Extensions: []string{".toml"}},
	{ID: "html", Name: "HTML", Extensions: []string{".html", ".htm"}},
	{ID: "css", Name: "CSS", Extensions: []string{".css"}},
	{ID: "shellscript", Name: "Shell Script", Extensions: []string{".sh", ".bash", ".zsh"}},
	{ID: "diff", Name: "Diff", Extensions: []string{".diff", ".patch"}},
	{ID: "makefile", Name: "Makefile", Filenames: []string{"Makefile", "GNUmakefile"}, Extensions: []string{".mk"}},
	{ID: PlainText, Name: "Plain Text", Extensions: []string{".txt"}},
}
