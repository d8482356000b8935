package usecase

import (
	"github.com/naka-gawa/ktrawler/internal/domain"
	"github.com/naka-gawa/ktrawler/internal/syntax"
)

// visitor carries the per-file state the counting rules need.
type visitor struct {
	session *domain.Session
	project string
	rel     string
	file    *syntax.File
}

func (v *visitor) hit(c *domain.FeatureCounter, n *syntax.Node) {
	c.Increment(v.project, v.rel, v.file.Lines.Line(n.Start))
}

// handlers maps each node kind to the rule that counts it. Kinds without an
// entry are only descended into.
var handlers = map[syntax.Kind]func(*visitor, *syntax.Node){
	syntax.KindError:         visitError,
	syntax.KindDelegation:    visitDelegation,
	syntax.KindClass:         visitClass,
	syntax.KindEnumEntry:     visitEnumEntry,
	syntax.KindObject:        visitObject,
	syntax.KindFunction:      visitFunction,
	syntax.KindLambda:        visitLambda,
	syntax.KindLabeled:       visitLabeled,
	syntax.KindBreak:         visitJump,
	syntax.KindContinue:      visitJump,
	syntax.KindReturn:        visitReturn,
	syntax.KindWhile:         visitWhile,
	syntax.KindDoWhile:       visitDoWhile,
	syntax.KindWhen:          visitWhen,
	syntax.KindWhenInRange:   visitWhenInRange,
	syntax.KindProperty:      visitProperty,
	syntax.KindTypeParameter: visitTypeParameter,
	syntax.KindTypeArgument:  visitTypeArgument,
	syntax.KindRange:         visitRange,
	syntax.KindTypeCast:      visitTypeCast,
	syntax.KindBackingField:  visitBackingField,
}

func visitError(v *visitor, n *syntax.Node) {
	v.hit(v.session.SyntaxErrors, n)
}

func visitDelegation(v *visitor, n *syntax.Node) {
	v.hit(v.session.DelegationBySpecifiers, n)
}

func visitClass(v *visitor, n *syntax.Node) {
	s := v.session
	v.hit(s.Classes, n)

	if n.Has(syntax.AttrInner) {
		v.hit(s.InnerClasses, n)

		if hasOuterTypeParameters(n) {
			v.hit(s.InnerClassesWithOuterTypeParameters, n)
		}
	}

	if n.Has(syntax.AttrCtorVisibility) {
		v.hit(s.PrimaryConstructorVisibility, n)
	}

	if !n.Has(syntax.AttrEnum) {
		return
	}

	v.hit(s.Enums, n)

	if n.Has(syntax.AttrCtorParams) {
		v.hit(s.EnumsWithConstructorParameters, n)
	}

	if hasEntriesAndMembersMixed(n) {
		v.hit(s.EnumsWithEntriesAndMembersMixed, n)
	}
}

// hasOuterTypeParameters reports whether any class enclosing n declares a
// type parameter. Objects and functions in between do not stop the scan.
func hasOuterTypeParameters(n *syntax.Node) bool {
	for outer := n.Enclosing(syntax.KindClass); outer != nil; outer = outer.Enclosing(syntax.KindClass) {
		if outer.TypeParameterCount() > 0 {
			return true
		}
	}

	return false
}

// hasEntriesAndMembersMixed reports whether an enum entry follows any other
// member declaration.
func hasEntriesAndMembersMixed(n *syntax.Node) bool {
	insideEntries := true

	for _, m := range n.Members() {
		if m.Kind == syntax.KindEnumEntry {
			if !insideEntries {
				return true
			}

			continue
		}

		insideEntries = false
	}

	return false
}

func visitEnumEntry(v *visitor, n *syntax.Node) {
	v.hit(v.session.EnumEntries, n)

	if n.Has(syntax.AttrBody) {
		v.hit(v.session.EnumEntriesWithBody, n)
	}
}

func visitObject(v *visitor, n *syntax.Node) {
	s := v.session
	v.hit(s.Objects, n)

	if n.Parent != nil && n.Parent.Kind == syntax.KindFile {
		v.hit(s.TopLevelObjects, n)
	}

	if n.Has(syntax.AttrCompanion) {
		v.hit(s.CompanionObjects, n)
	}
}

func visitFunction(v *visitor, n *syntax.Node) {
	s := v.session
	v.hit(s.Functions, n)

	if n.Has(syntax.AttrInline) {
		v.hit(s.InlineFunctions, n)
	}

	if n.Has(syntax.AttrExtension) {
		v.hit(s.ExtensionFunctions, n)

		if n.Enclosing(syntax.KindClass) != nil {
			v.hit(s.ExtensionFunctionsInClasses, n)
		}
	}
}

func visitLambda(v *visitor, n *syntax.Node) {
	v.hit(v.session.Lambdas, n)

	if n.Has(syntax.AttrReturnType) {
		v.hit(v.session.LambdasWithDeclaredReturnType, n)
	}
}

func visitLabeled(v *visitor, n *syntax.Node) {
	v.hit(v.session.LabeledExpressions, n)
}

func visitJump(v *visitor, n *syntax.Node) {
	if n.Has(syntax.AttrLabel) {
		v.hit(v.session.QualifiedBreakContinue, n)
	}
}

func visitReturn(v *visitor, n *syntax.Node) {
	if n.Has(syntax.AttrLabel) {
		v.hit(v.session.ReturnWithLabel, n)
	}
}

func visitWhile(v *visitor, n *syntax.Node) {
	v.hit(v.session.WhileLoops, n)
}

func visitDoWhile(v *visitor, n *syntax.Node) {
	v.hit(v.session.DoWhileLoops, n)
}

func visitWhen(v *visitor, n *syntax.Node) {
	if n.Has(syntax.AttrSubject) {
		v.hit(v.session.WhenWithExpression, n)
	} else {
		v.hit(v.session.WhenWithoutExpression, n)
	}
}

func visitWhenInRange(v *visitor, n *syntax.Node) {
	v.hit(v.session.WhenConditionInRange, n)
}

func visitProperty(v *visitor, n *syntax.Node) {
	s := v.session

	if n.Has(syntax.AttrVar) {
		v.hit(s.Vars, n)
		return
	}

	v.hit(s.Vals, n)

	getter := n.Child(syntax.KindGetter)
	if getter == nil {
		return
	}

	exprBody := getter.Has(syntax.AttrExprBody)

	v.hit(s.ValsWithGetter, n)
	if exprBody {
		v.hit(s.ValsWithGetterExpressionBody, n)
	}

	if n.Has(syntax.AttrOverride) {
		v.hit(s.OverrideValsWithGetter, n)
		if exprBody {
			v.hit(s.OverrideValsWithGetterExpressionBody, n)
		}
	}
}

func visitTypeParameter(v *visitor, n *syntax.Node) {
	v.hit(v.session.TypeParameters, n)

	if n.Has(syntax.AttrVariance) {
		v.hit(v.session.TypeParametersWithVariance, n)
	}
}

func visitTypeArgument(v *visitor, n *syntax.Node) {
	s := v.session
	v.hit(s.TypeArguments, n)

	switch {
	case n.Has(syntax.AttrStar):
		v.hit(s.TypeArgumentsWithStar, n)
	case n.Has(syntax.AttrVariance):
		v.hit(s.TypeArgumentsWithVariance, n)
	}
}

func visitRange(v *visitor, n *syntax.Node) {
	v.hit(v.session.RangeOperators, n)
}

func visitTypeCast(v *visitor, n *syntax.Node) {
	if !n.Has(syntax.AttrSafeCast) {
		v.hit(v.session.TypeCasts, n)
	}
}

func visitBackingField(v *visitor, n *syntax.Node) {
	v.hit(v.session.BackingFields, n)
}
