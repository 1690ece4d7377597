package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

// Tool is a named, schema-validated function the model may invoke instead
// of replying directly. The handler is closed over the authenticated
// user's id; arguments supplied by the model can never widen its access.
type Tool struct {
	Name        string
	Description string
	Parameters  *genai.Schema
	Handler     func(ctx context.Context, args map[string]any) (string, error)
}

// declarations converts tools to the wire format the model consumes.
func declarations(tools []*Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  tool.Parameters,
		})
	}
	return decls
}

// stringArg extracts a required string argument. Whitespace-only values
// count as missing.
func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key].(string)
	value := strings.TrimSpace(raw)
	if !ok || value == "" {
		return "", fmt.Errorf("missing or empty argument %q", key)
	}
	return value, nil
}

// optionalStringArg extracts a string argument, returning "" when absent.
func optionalStringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return strings.TrimSpace(value)
}

// uuidArg extracts a required UUID argument.
func uuidArg(args map[string]any, key string) (uuid.UUID, error) {
	raw, err := stringArg(args, key)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("argument %q is not a valid id: %s", key, raw)
	}
	return id, nil
}
