package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	literrors "github.com/toyz/lit/internal/errors"
)

func TestParse_ValidDecorators(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect *Decorator
	}{
		{
			name:  "bare decorator",
			input: "@GetMapping",
			expect: &Decorator{
				Name:       "GetMapping",
				Parameters: map[string]string{},
				Raw:        "@GetMapping",
			},
		},
		{
			name:  "empty parens",
			input: "@DeleteMapping()",
			expect: &Decorator{
				Name:       "DeleteMapping",
				Parameters: map[string]string{},
				Raw:        "@DeleteMapping()",
			},
		},
		{
			name:  "named parameters",
			input: `@GetMapping(path=":id", produces="application/vnd.messages.v1+json")`,
			expect: &Decorator{
				Name: "GetMapping",
				Parameters: map[string]string{
					"path":     ":id",
					"produces": "application/vnd.messages.v1+json",
				},
				Raw: `@GetMapping(path=":id", produces="application/vnd.messages.v1+json")`,
			},
		},
		{
			name:  "positional path",
			input: `  @PutMapping(":grandchild_id")  `,
			expect: &Decorator{
				Name:       "PutMapping",
				Parameters: map[string]string{"path": ":grandchild_id"},
				Raw:        `@PutMapping(":grandchild_id")`,
			},
		},
		{
			name:  "request mapping with positional method and path",
			input: `@RequestMapping("post", "someurl")`,
			expect: &Decorator{
				Name:       "RequestMapping",
				Parameters: map[string]string{"method": "post", "path": "someurl"},
				Raw:        `@RequestMapping("post", "someurl")`,
			},
		},
		{
			name:  "escaped quote",
			input: `@GetMapping(path="a\"b")`,
			expect: &Decorator{
				Name:       "GetMapping",
				Parameters: map[string]string{"path": `a"b`},
				Raw:        `@GetMapping(path="a\"b")`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"missing at sign", `GetMapping()`, "invalid decorator"},
		{"unknown decorator", `@Frobnicate()`, "unknown decorator"},
		{"unknown parameter", `@GetMapping(verb="get")`, "unknown parameter 'verb'"},
		{"duplicate parameter", `@GetMapping(":id", path=":other")`, "more than once"},
		{"too many positional", `@GetMapping("a", "b")`, "at most 1 positional"},
		{"bad method", `@RequestMapping(method="fetch")`, "must be one of"},
		{"missing method", `@RequestMapping(path="x")`, "requires parameter 'method'"},
		{"bad produces", `@GetMapping(produces="json")`, "media type"},
		{"unterminated", `@GetMapping(path=":id"`, "invalid decorator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.True(t, literrors.HasCode(err, literrors.AnnotationErrorCode))
		})
	}
}

func TestParse_ErrorColumn(t *testing.T) {
	_, err := Parse(`@GetMapping(path=":id", verb="x")`)
	require.Error(t, err)

	var base *literrors.BaseError
	require.ErrorAs(t, err, &base)
	assert.Equal(t, 25, base.Context()["column"])
}

func TestDecorator_String(t *testing.T) {
	d, err := Parse(`@GetMapping(produces="application/json", path="items")`)
	require.NoError(t, err)

	assert.Equal(t, `@GetMapping(path="items", produces="application/json")`, d.String())
	assert.Equal(t, "items", d.Get("path", ""))
	assert.Equal(t, "fallback", d.Get("method", "fallback"))
}

func TestSchemaNames(t *testing.T) {
	assert.Equal(t, []string{
		"AnyMapping",
		"DeleteMapping",
		"GetMapping",
		"PatchMapping",
		"PostMapping",
		"PutMapping",
		"RequestMapping",
	}, SchemaNames())
}
