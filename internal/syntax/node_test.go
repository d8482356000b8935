package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineIndex(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		offset    int
		wantLine  int
		wantCount int
	}{
		{name: "empty file", src: "", offset: 0, wantLine: 1, wantCount: 1},
		{name: "first line", src: "val a = 1\nval b = 2\n", offset: 4, wantLine: 1, wantCount: 3},
		{name: "start of second line", src: "val a = 1\nval b = 2\n", offset: 10, wantLine: 2, wantCount: 3},
		{name: "newline belongs to its line", src: "a\nb", offset: 1, wantLine: 1, wantCount: 2},
		{name: "past the end", src: "a\nb", offset: 99, wantLine: 2, wantCount: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			li := NewLineIndex([]byte(tc.src))
			assert.Equal(t, tc.wantLine, li.Line(tc.offset))
			assert.Equal(t, tc.wantCount, li.Count())
		})
	}
}

func TestNode_Navigation(t *testing.T) {
	param := NewNode(KindTypeParameter, 0, 8, 9)
	inner := NewNode(KindClass, AttrInner, 20, 40)
	outer := NewNode(KindClass, 0, 0, 50,
		NewNode(KindTypeParameters, 0, 7, 10, param),
		NewNode(KindClassBody, 0, 12, 50, inner),
	)
	root := NewNode(KindFile, 0, 0, 50, outer)

	assert.Same(t, outer, inner.Enclosing(KindClass))
	assert.Same(t, root, inner.Enclosing(KindFile))
	assert.Nil(t, outer.Enclosing(KindClass))
	assert.Equal(t, 1, outer.TypeParameterCount())
	assert.Equal(t, 0, inner.TypeParameterCount())
	require.Len(t, outer.Members(), 1)
	assert.Same(t, inner, outer.Members()[0])
	assert.True(t, inner.Has(AttrInner))
	assert.False(t, inner.Has(AttrInner|AttrEnum))

	var kinds []Kind
	root.Walk(func(n *Node) { kinds = append(kinds, n.Kind) })
	assert.Equal(t, []Kind{KindFile, KindClass, KindTypeParameters, KindTypeParameter, KindClassBody, KindClass}, kinds)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "when-in-range", KindWhenInRange.String())
	assert.Equal(t, "unknown", Kind(200).String())
}
