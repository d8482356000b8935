package kotlin

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/naka-gawa/ktrawler/internal/syntax"
)

// typeNodes are the grammar nodes a type reference can start with.
var typeNodes = map[string]bool{
	"user_type":          true,
	"nullable_type":      true,
	"non_nullable_type":  true,
	"parenthesized_type": true,
	"function_type":      true,
	"receiver_type":      true,
	"type_modifiers":     true,
}

// qualifiedOrDeclared parents make a "field" identifier a member access or a
// local declaration rather than the backing field.
var qualifiedOrDeclared = map[string]bool{
	"navigation_suffix":    true,
	"variable_declaration": true,
}

var nonDefaultVisibility = map[string]bool{
	"private":   true,
	"protected": true,
	"internal":  true,
}

func (b *builder) classify(n sitter.Node, sc scope) (syntax.Kind, syntax.Attr) {
	switch n.Type() {
	case "source_file":
		return syntax.KindFile, 0
	case "ERROR":
		return syntax.KindError, 0
	case "explicit_delegation":
		return syntax.KindDelegation, 0
	case "class_declaration":
		return syntax.KindClass, b.classAttrs(n)
	case "type_parameters":
		return syntax.KindTypeParameters, 0
	case "type_parameter":
		return syntax.KindTypeParameter, b.varianceAttr(n, "type_parameter_modifiers")
	case "class_body", "enum_class_body":
		return syntax.KindClassBody, 0
	case "enum_entry":
		if hasChild(n, "class_body") {
			return syntax.KindEnumEntry, syntax.AttrBody
		}

		return syntax.KindEnumEntry, 0
	case "object_declaration":
		return syntax.KindObject, 0
	case "companion_object":
		return syntax.KindObject, syntax.AttrCompanion
	case "function_declaration":
		return syntax.KindFunction, b.functionAttrs(n)
	case "lambda_literal":
		return syntax.KindLambda, 0
	case "anonymous_function":
		return syntax.KindLambda, anonymousFunctionAttrs(n)
	case "label":
		if sc.parentType == "jump_expression" {
			return syntax.KindOther, 0
		}

		return syntax.KindLabeled, 0
	case "jump_expression":
		return jumpKind(n)
	case "while_statement":
		return syntax.KindWhile, 0
	case "do_while_statement":
		return syntax.KindDoWhile, 0
	case "when_expression":
		if hasChild(n, "when_subject") {
			return syntax.KindWhen, syntax.AttrSubject
		}

		return syntax.KindWhen, 0
	case "range_test":
		return syntax.KindWhenInRange, 0
	case "property_declaration":
		return syntax.KindProperty, b.propertyAttrs(n)
	case "getter":
		return syntax.KindGetter, getterAttrs(n)
	case "type_projection":
		return syntax.KindTypeArgument, b.projectionAttrs(n)
	case "range_expression":
		if hasChild(n, "..") {
			return syntax.KindRange, 0
		}
	case "as_expression":
		if hasChild(n, "as?") || b.childText(n, "as_operator") == "as?" {
			return syntax.KindTypeCast, syntax.AttrSafeCast
		}

		return syntax.KindTypeCast, 0
	case "simple_identifier":
		if sc.inAccessor && !qualifiedOrDeclared[sc.parentType] && b.text(n) == "field" {
			return syntax.KindBackingField, 0
		}
	}

	return syntax.KindOther, 0
}

func (b *builder) classAttrs(n sitter.Node) syntax.Attr {
	var attrs syntax.Attr

	mods := b.modifierWords(n)
	if mods["inner"] {
		attrs |= syntax.AttrInner
	}

	if mods["enum"] || hasChild(n, "enum") || hasChild(n, "enum_class_body") {
		attrs |= syntax.AttrEnum
	}

	if ctor, ok := childOfType(n, "primary_constructor"); ok {
		for word := range b.modifierWords(ctor) {
			if nonDefaultVisibility[word] {
				attrs |= syntax.AttrCtorVisibility
			}
		}

		if countParameters(ctor) > 0 {
			attrs |= syntax.AttrCtorParams
		}
	}

	return attrs
}

func (b *builder) functionAttrs(n sitter.Node) syntax.Attr {
	var attrs syntax.Attr

	if b.modifierWords(n)["inline"] {
		attrs |= syntax.AttrInline
	}

	// A receiver type is the only type that can precede the function name.
	for i := range n.ChildCount() {
		typ := n.Child(i).Type()
		if typ == "simple_identifier" {
			break
		}

		if typeNodes[typ] {
			attrs |= syntax.AttrExtension

			break
		}
	}

	return attrs
}

func anonymousFunctionAttrs(n sitter.Node) syntax.Attr {
	seenParams := false

	for i := range n.ChildCount() {
		typ := n.Child(i).Type()

		switch {
		case typ == "function_value_parameters":
			seenParams = true
		case typ == "function_body":
			return 0
		case seenParams && typeNodes[typ]:
			return syntax.AttrReturnType
		}
	}

	return 0
}

func jumpKind(n sitter.Node) (syntax.Kind, syntax.Attr) {
	if n.ChildCount() == 0 {
		return syntax.KindOther, 0
	}

	var label syntax.Attr
	if hasChild(n, "label") {
		label = syntax.AttrLabel
	}

	switch n.Child(0).Type() {
	case "return":
		return syntax.KindReturn, label
	case "return@":
		return syntax.KindReturn, syntax.AttrLabel
	case "break":
		return syntax.KindBreak, label
	case "break@":
		return syntax.KindBreak, syntax.AttrLabel
	case "continue":
		return syntax.KindContinue, label
	case "continue@":
		return syntax.KindContinue, syntax.AttrLabel
	}

	return syntax.KindOther, 0
}

func (b *builder) propertyAttrs(n sitter.Node) syntax.Attr {
	var attrs syntax.Attr

	if hasChild(n, "var") || b.childText(n, "binding_pattern_kind") == "var" {
		attrs |= syntax.AttrVar
	}

	if b.modifierWords(n)["override"] {
		attrs |= syntax.AttrOverride
	}

	return attrs
}

func getterAttrs(n sitter.Node) syntax.Attr {
	if hasChild(n, "=") {
		return syntax.AttrExprBody
	}

	body, ok := childOfType(n, "function_body")
	if ok && body.ChildCount() > 0 && body.Child(0).Type() == "=" {
		return syntax.AttrExprBody
	}

	return 0
}

func (b *builder) projectionAttrs(n sitter.Node) syntax.Attr {
	if hasChild(n, "*") || b.text(n) == "*" {
		return syntax.AttrStar
	}

	return b.varianceAttr(n, "type_projection_modifiers")
}

// varianceAttr looks for an in/out modifier in the node's own modifier list,
// never inside its bound or projected type.
func (b *builder) varianceAttr(n sitter.Node, modifiersType string) syntax.Attr {
	if hasChild(n, "variance_modifier") {
		return syntax.AttrVariance
	}

	if mods, ok := childOfType(n, modifiersType); ok && hasDescendant(mods, "variance_modifier") {
		return syntax.AttrVariance
	}

	return 0
}

// modifierWords returns the keyword leaves of the node's modifier list,
// skipping annotations.
func (b *builder) modifierWords(n sitter.Node) map[string]bool {
	words := make(map[string]bool)

	mods, ok := childOfType(n, "modifiers")
	if !ok {
		return words
	}

	var collect func(sitter.Node)
	collect = func(m sitter.Node) {
		if m.Type() == "annotation" {
			return
		}

		if m.ChildCount() == 0 {
			words[b.text(m)] = true

			return
		}

		for i := range m.ChildCount() {
			collect(m.Child(i))
		}
	}
	collect(mods)

	return words
}

func (b *builder) childText(n sitter.Node, typ string) string {
	if c, ok := childOfType(n, typ); ok {
		return b.text(c)
	}

	return ""
}

func countParameters(ctor sitter.Node) int {
	count := 0

	for i := range ctor.ChildCount() {
		c := ctor.Child(i)

		switch c.Type() {
		case "class_parameter":
			count++
		case "class_parameters":
			for j := range c.ChildCount() {
				if c.Child(j).Type() == "class_parameter" {
					count++
				}
			}
		}
	}

	return count
}

func childOfType(n sitter.Node, typ string) (sitter.Node, bool) {
	for i := range n.ChildCount() {
		c := n.Child(i)
		if c.Type() == typ {
			return c, true
		}
	}

	return sitter.Node{}, false
}

func hasChild(n sitter.Node, typ string) bool {
	_, ok := childOfType(n, typ)

	return ok
}

func hasDescendant(n sitter.Node, typ string) bool {
	if n.Type() == typ {
		return true
	}

	for i := range n.ChildCount() {
		if hasDescendant(n.Child(i), typ) {
			return true
		}
	}

	return false
}
