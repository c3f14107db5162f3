package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"github.com/ludo-technologies/larascan/domain"
)

// FileResult holds everything extracted from one PHP source file
type FileResult struct {
	Path      string
	Namespace string
	Imports   []domain.ImportDescriptor
	Classes   []*domain.ClassDescriptor
}

// Parser wraps a tree-sitter parser configured for PHP.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

// NewParser creates a new PHP parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := php.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
	}
}

// ParseFile parses a PHP file and extracts its class declarations
func (p *Parser) ParseFile(ctx context.Context, filename string, source []byte) (*FileResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if tree == nil {
		return nil, domain.NewParseError(filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, domain.NewParseError(filename, fmt.Errorf("no root node in parse tree"))
	}

	extractor := newExtractor(filename, source)
	return extractor.extract(rootNode), nil
}

// ParseString parses PHP source held in a string
func (p *Parser) ParseString(source string) (*FileResult, error) {
	return p.ParseFile(context.Background(), "<input>", []byte(source))
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}
