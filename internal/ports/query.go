package ports

// QueryPort evaluates a path expression against a JSON-compatible document.
type QueryPort interface {
	Query(document any, expression string) ([]any, error)
}
