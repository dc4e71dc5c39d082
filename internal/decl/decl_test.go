package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	testCases := []struct {
		kind     Kind
		expected string
	}{
		{KindPackage, "package"},
		{KindAggregate, "aggregate"},
		{KindFunction, "function"},
		{KindOther, "other"},
		{Kind(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.kind.String())
		})
	}
}

func TestDeclaration_Annotation(t *testing.T) {
	d := &Declaration{Kind: KindFunction, Name: "doIt"}

	t.Run("absent by default", func(t *testing.T) {
		text, ok := d.Annotation()
		assert.False(t, ok)
		assert.Empty(t, text)
	})

	t.Run("set and read back", func(t *testing.T) {
		d.SetAnnotation("hostlink::method:doIt")
		text, ok := d.Annotation()
		assert.True(t, ok)
		assert.Equal(t, "hostlink::method:doIt", text)
	})

	t.Run("empty annotation is still present", func(t *testing.T) {
		d.SetAnnotation("")
		text, ok := d.Annotation()
		assert.True(t, ok)
		assert.Empty(t, text)
	})

	t.Run("cleared annotation is absent", func(t *testing.T) {
		d.ClearAnnotation()
		_, ok := d.Annotation()
		assert.False(t, ok)
	})
}

func TestDeclaration_QualifiedName(t *testing.T) {
	fn := &Declaration{Kind: KindFunction, Name: "FreeFn"}
	assert.Equal(t, "FreeFn", fn.QualifiedName())

	method := &Declaration{Kind: KindFunction, Name: "DoIt", Receiver: "Widget"}
	assert.Equal(t, "Widget.DoIt", method.QualifiedName())
}

func TestDeclaration_AddChild(t *testing.T) {
	root := &Declaration{Kind: KindPackage, Name: "widgets"}
	agg := root.AddChild(&Declaration{Kind: KindAggregate, Name: "Widget"})
	agg.AddChild(&Declaration{Kind: KindFunction, Name: "DoIt", Receiver: "Widget"})

	assert.Len(t, root.Children, 1)
	assert.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "Widget.DoIt", root.Children[0].Children[0].QualifiedName())
}
