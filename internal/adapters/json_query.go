package adapters

import (
	"encoding/json"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/ohler55/ojg/jp"

	"lms-packages/internal/ports"
)

// JSONQueryAdapter evaluates JSONPath expressions. Documents are normalized
// through encoding/json first so struct tags decide the field names.
type JSONQueryAdapter struct{}

func NewJSONQueryAdapter() JSONQueryAdapter {
	return JSONQueryAdapter{}
}

func (a JSONQueryAdapter) Query(document any, expression string) ([]any, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("query expression is required")
	}
	x, err := jp.ParseString(expression)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid jsonpath '" + expression + "'").
			WithCause(err)
	}
	root, err := normalizeDocument(document)
	if err != nil {
		return nil, err
	}
	return x.Get(root), nil
}

func normalizeDocument(document any) (any, error) {
	data, err := json.Marshal(document)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode document").
			WithCause(err)
	}
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode document").
			WithCause(err)
	}
	return root, nil
}

var _ ports.QueryPort = JSONQueryAdapter{}
