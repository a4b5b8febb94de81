package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-yaml/ast"
	yamlLex "github.com/goccy/go-yaml/lexer"
	yamlParse "github.com/goccy/go-yaml/parser"
)

var (
	ErrUnsupportedYamlNodeType = errors.New("unsupported YAML node type")
)

// parseYamlDocuments parses s and returns the body of each document, empty documents are skipped.
func parseYamlDocuments(s string) ([]ast.Node, error) {
	tokens := yamlLex.Tokenize(s)
	file, err := yamlParse.Parse(tokens, 0)
	if err != nil {
		return nil, err
	}

	var bodies []ast.Node
	for _, doc := range file.Docs {
		if doc == nil || doc.Body == nil {
			continue
		}
		bodies = append(bodies, doc.Body)
	}
	return bodies, nil
}

// convertYamlNode converts a YAML AST node into a Go value: integers are converted to int,
// mappings to map[string]any and sequences to []any.
func convertYamlNode(n ast.Node) (any, error) {
	switch n.Type() {
	case ast.DocumentType:
		return convertYamlNode(n.(*ast.DocumentNode).Body)
	case ast.NullType:
		return nil, nil
	case ast.BoolType:
		return n.(*ast.BoolNode).Value, nil
	case ast.IntegerType:
		switch integer := n.(*ast.IntegerNode).Value.(type) {
		case uint64:
			if integer > math.MaxInt64 {
				return nil, fmt.Errorf("integer %d at line %d is too large", integer, lineOf(n))
			}
			return int(integer), nil
		case int64:
			return int(integer), nil
		}
	case ast.FloatType:
		return n.(*ast.FloatNode).Value, nil
	case ast.InfinityType:
		return n.(*ast.InfinityNode).Value, nil
	case ast.NanType:
		return math.NaN(), nil
	case ast.StringType:
		return n.(*ast.StringNode).Value, nil
	case ast.LiteralType:
		return n.(*ast.LiteralNode).Value.Value, nil
	case ast.MappingType:
		items := n.(*ast.MappingNode).Values
		mapping := make(map[string]any, len(items))

		for _, item := range items {
			if err := addMappingItem(mapping, item); err != nil {
				return nil, err
			}
		}
		return mapping, nil
	case ast.MappingValueType:
		mapping := map[string]any{}
		if err := addMappingItem(mapping, n.(*ast.MappingValueNode)); err != nil {
			return nil, err
		}
		return mapping, nil
	case ast.SequenceType:
		items := n.(*ast.SequenceNode).Values
		values := make([]any, len(items))

		for i, item := range items {
			value, err := convertYamlNode(item)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	}
	return nil, fmt.Errorf("%w: %s at line %d", ErrUnsupportedYamlNodeType, n.Type(), lineOf(n))
}

func addMappingItem(mapping map[string]any, item *ast.MappingValueNode) error {
	key := item.Key.String()
	if _, ok := mapping[key]; ok {
		return fmt.Errorf("duplicate key %q at line %d", key, lineOf(item))
	}

	value, err := convertYamlNode(item.Value)
	if err != nil {
		return err
	}
	mapping[key] = value
	return nil
}

func lineOf(n ast.Node) int {
	token := n.GetToken()
	if token == nil || token.Position == nil {
		return 0
	}
	return token.Position.Line
}

// sequenceItemLines returns the line of each item of the sequence stored under key in the mapping n.
func sequenceItemLines(n ast.Node, key string) []int {
	var items []*ast.MappingValueNode
	switch node := n.(type) {
	case *ast.MappingNode:
		items = node.Values
	case *ast.MappingValueNode:
		items = []*ast.MappingValueNode{node}
	}

	for _, item := range items {
		if item.Key.String() != key {
			continue
		}
		seq, ok := item.Value.(*ast.SequenceNode)
		if !ok {
			return nil
		}
		lines := make([]int, len(seq.Values))
		for i, value := range seq.Values {
			lines[i] = lineOf(value)
		}
		return lines
	}
	return nil
}
