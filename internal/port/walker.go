package port

// FileWalker enumerates files under a root matching configured glob patterns.
type FileWalker interface {
	Walk(root string) ([]string, error)
}

// FileReader reads a file as UTF-8 text.
type FileReader interface {
	ReadFile(path string) (string, error)
}
