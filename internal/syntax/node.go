// Package syntax defines the parser-independent tree the crawler walks.
// A parser adapter turns a source file into Nodes tagged with a Kind and a
// set of Attrs; the counting rules only ever look at those.
package syntax

import "context"

// Kind identifies the construct a Node represents.
type Kind uint8

const (
	KindOther Kind = iota
	KindFile
	KindError
	KindDelegation
	KindClass
	KindClassBody
	KindTypeParameters
	KindTypeParameter
	KindEnumEntry
	KindObject
	KindFunction
	KindLambda
	KindLabeled
	KindBreak
	KindContinue
	KindReturn
	KindWhile
	KindDoWhile
	KindWhen
	KindWhenInRange
	KindProperty
	KindGetter
	KindTypeArgument
	KindRange
	KindTypeCast
	KindBackingField
)

var kindNames = [...]string{
	KindOther:          "other",
	KindFile:           "file",
	KindError:          "error",
	KindDelegation:     "delegation",
	KindClass:          "class",
	KindClassBody:      "class-body",
	KindTypeParameters: "type-parameters",
	KindTypeParameter:  "type-parameter",
	KindEnumEntry:      "enum-entry",
	KindObject:         "object",
	KindFunction:       "function",
	KindLambda:         "lambda",
	KindLabeled:        "labeled",
	KindBreak:          "break",
	KindContinue:       "continue",
	KindReturn:         "return",
	KindWhile:          "while",
	KindDoWhile:        "do-while",
	KindWhen:           "when",
	KindWhenInRange:    "when-in-range",
	KindProperty:       "property",
	KindGetter:         "getter",
	KindTypeArgument:   "type-argument",
	KindRange:          "range",
	KindTypeCast:       "type-cast",
	KindBackingField:   "backing-field",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// Attr is a bit set of node-specific facts the adapter extracted.
type Attr uint32

const (
	// AttrInner marks a nested class that captures its outer instance.
	AttrInner Attr = 1 << iota
	// AttrEnum marks an enumeration class.
	AttrEnum
	// AttrCtorVisibility marks a class whose primary constructor has a non-default visibility.
	AttrCtorVisibility
	// AttrCtorParams marks a class whose primary constructor declares parameters.
	AttrCtorParams
	// AttrBody marks an enum entry with its own body.
	AttrBody
	// AttrCompanion marks a companion object.
	AttrCompanion
	// AttrInline marks an inline function.
	AttrInline
	// AttrExtension marks a function with a receiver type.
	AttrExtension
	// AttrReturnType marks a lambda or anonymous function with a declared return type.
	AttrReturnType
	// AttrLabel marks a break, continue or return that names a label.
	AttrLabel
	// AttrSubject marks a when expression with a subject.
	AttrSubject
	// AttrVar marks a mutable property.
	AttrVar
	// AttrOverride marks an overriding property.
	AttrOverride
	// AttrExprBody marks a getter written as "= expression".
	AttrExprBody
	// AttrVariance marks an in/out type parameter or type argument.
	AttrVariance
	// AttrStar marks a star projection.
	AttrStar
	// AttrSafeCast marks the nullable "as?" spelling of a cast.
	AttrSafeCast
)

// Node is one element of a syntax tree. Start and End are byte offsets into
// the file the node was parsed from.
type Node struct {
	Kind     Kind
	Attrs    Attr
	Start    int
	End      int
	Parent   *Node
	Children []*Node
}

// NewNode builds a node and adopts the given children.
func NewNode(kind Kind, attrs Attr, start, end int, children ...*Node) *Node {
	n := &Node{Kind: kind, Attrs: attrs, Start: start, End: end}
	for _, c := range children {
		n.Append(c)
	}

	return n
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Has reports whether every bit of a is set on n.
func (n *Node) Has(a Attr) bool {
	return n.Attrs&a == a
}

// Child returns the first direct child of the given kind, or nil.
func (n *Node) Child(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}

	return nil
}

// Enclosing returns the nearest strict ancestor of the given kind, or nil.
func (n *Node) Enclosing(kind Kind) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}

	return nil
}

// Members returns the declarations of a class body in source order.
func (n *Node) Members() []*Node {
	body := n.Child(KindClassBody)
	if body == nil {
		return nil
	}

	return body.Children
}

// TypeParameterCount returns how many type parameters n declares directly.
func (n *Node) TypeParameterCount() int {
	list := n.Child(KindTypeParameters)
	if list == nil {
		return 0
	}

	count := 0
	for _, c := range list.Children {
		if c.Kind == KindTypeParameter {
			count++
		}
	}

	return count
}

// Walk calls fn for n and every descendant, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// File is a parsed source file.
type File struct {
	Path  string
	Root  *Node
	Lines LineIndex
}

// Parser turns source text into a File. Malformed input is not an error:
// it shows up as KindError nodes inside an otherwise usable tree.
type Parser interface {
	Parse(ctx context.Context, path string, src []byte) (*File, error)
}
