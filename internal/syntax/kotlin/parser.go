// Package kotlin adapts the tree-sitter Kotlin grammar to the syntax tree
// the crawler walks.
package kotlin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	grammar "github.com/alexaandru/go-sitter-forest/kotlin"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/naka-gawa/ktrawler/internal/syntax"
)

var (
	errPoolType   = errors.New("unexpected parser pool type")
	errNoRootNode = errors.New("parse produced no root node")
)

// Parser parses Kotlin sources. It is safe for concurrent use.
type Parser struct {
	pool sync.Pool
}

// NewParser creates a Kotlin parser backed by a pool of tree-sitter parsers.
func NewParser() *Parser {
	lang := sitter.NewLanguage(grammar.GetLanguage())

	p := &Parser{}
	p.pool.New = func() any {
		tsParser := sitter.NewParser()
		tsParser.SetLanguage(lang)

		return tsParser
	}

	return p
}

// Parse implements syntax.Parser.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*syntax.File, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}
	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, fmt.Errorf("%w: %s", errNoRootNode, path)
	}

	b := &builder{src: src}

	return &syntax.File{
		Path:  path,
		Root:  b.build(root, scope{}),
		Lines: syntax.NewLineIndex(src),
	}, nil
}

// scope carries what a node needs to know about its surroundings while the
// tree is converted top-down.
type scope struct {
	parentType string
	inAccessor bool
}

type builder struct {
	src []byte
}

func (b *builder) build(n sitter.Node, sc scope) *syntax.Node {
	out := &syntax.Node{
		Start: int(n.StartByte()),
		End:   int(n.EndByte()),
	}
	out.Kind, out.Attrs = b.classify(n, sc)

	typ := n.Type()
	inner := scope{
		parentType: typ,
		inAccessor: sc.inAccessor || typ == "getter" || typ == "setter",
	}
	b.appendChildren(out, n, inner)

	return out
}

func (b *builder) appendChildren(out *syntax.Node, n sitter.Node, sc scope) {
	for i := range n.ChildCount() {
		c := n.Child(i)
		typ := c.Type()

		if !c.IsNamed() && typ != "ERROR" {
			continue
		}

		switch typ {
		case "line_comment", "multiline_comment", "comment":
			continue
		case "class_member_declarations":
			b.appendChildren(out, c, sc)

			continue
		}

		out.Append(b.build(c, sc))
	}
}

func (b *builder) text(n sitter.Node) string {
	start, end := int(n.StartByte()), int(n.EndByte())
	if start < 0 || end > len(b.src) || start > end {
		return ""
	}

	return string(b.src[start:end])
}
