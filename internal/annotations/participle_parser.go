package annotations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	literrors "github.com/toyz/lit/internal/errors"
)

// decoratorAST is the participle grammar root for a decorator string
type decoratorAST struct {
	Name string         `parser:"'@' @Ident"`
	Args []*argumentAST `parser:"( '(' ( @@ ( ',' @@ )* )? ')' )?"`
}

// argumentAST is a single `key="value"` or positional `"value"` argument
type argumentAST struct {
	Pos   lexer.Position
	Key   string `parser:"( @Ident '=' )?"`
	Value string `parser:"@String"`
}

var decoratorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[@(),=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Parser parses decorator strings with alecthomas/participle
type Parser struct {
	parser *participle.Parser[decoratorAST]
}

// NewParser builds the decorator grammar
func NewParser() *Parser {
	return &Parser{
		parser: participle.MustBuild[decoratorAST](
			participle.Lexer(decoratorLexer),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
			participle.UseLookahead(2),
		),
	}
}

// Parse parses and validates a decorator string against the built-in schemas
func (p *Parser) Parse(annotation string) (*Decorator, error) {
	raw := strings.TrimSpace(annotation)
	ast, err := p.parser.ParseString("", raw)
	if err != nil {
		column := 0
		var perr participle.Error
		if errors.As(err, &perr) {
			column = perr.Position().Column
		}
		return nil, literrors.NewAnnotationError(raw, column, err)
	}

	schema, ok := LookupSchema(ast.Name)
	if !ok {
		return nil, literrors.NewAnnotationError(raw, 2, fmt.Errorf("unknown decorator '@%s'", ast.Name)).
			WithSuggestion("known decorators: @" + strings.Join(SchemaNames(), ", @"))
	}

	decorator := &Decorator{
		Name:       ast.Name,
		Parameters: make(map[string]string, len(ast.Args)),
		Raw:        raw,
	}

	positional := 0
	for _, arg := range ast.Args {
		key := arg.Key
		if key == "" {
			if positional >= len(schema.Positional) {
				return nil, literrors.NewAnnotationError(raw, arg.Pos.Column,
					fmt.Errorf("@%s accepts at most %d positional argument(s)", ast.Name, len(schema.Positional)))
			}
			key = schema.Positional[positional]
			positional++
		}

		validate, known := schema.Parameters[key]
		if !known {
			return nil, literrors.NewAnnotationError(raw, arg.Pos.Column,
				fmt.Errorf("unknown parameter '%s' for @%s", key, ast.Name))
		}
		if _, dup := decorator.Parameters[key]; dup {
			return nil, literrors.NewAnnotationError(raw, arg.Pos.Column,
				fmt.Errorf("parameter '%s' given more than once", key))
		}
		if validate != nil {
			if err := validate(arg.Value); err != nil {
				return nil, literrors.NewAnnotationError(raw, arg.Pos.Column,
					fmt.Errorf("parameter '%s' %w", key, err))
			}
		}
		decorator.Parameters[key] = arg.Value
	}

	for _, required := range schema.Required {
		if !decorator.Has(required) {
			return nil, literrors.NewAnnotationError(raw, len(raw),
				fmt.Errorf("@%s requires parameter '%s'", ast.Name, required))
		}
	}

	return decorator, nil
}

var defaultParser = NewParser()

// Parse parses a decorator string with the shared parser
func Parse(annotation string) (*Decorator, error) {
	return defaultParser.Parse(annotation)
}
