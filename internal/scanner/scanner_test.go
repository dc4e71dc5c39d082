package scanner

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmfoundry/hostlink/internal/decl"
	"github.com/wasmfoundry/hostlink/internal/marker"
	"github.com/wasmfoundry/hostlink/internal/symbol"
	"github.com/wasmfoundry/hostlink/pkg/descriptor"
)

// stubResolver resolves symbols from a fixed table keyed by qualified name
func stubResolver(symbols map[string]string) symbol.Resolver {
	return symbol.ResolverFunc(func(d *decl.Declaration) (string, error) {
		if sym, ok := symbols[d.QualifiedName()]; ok {
			return sym, nil
		}
		return "", fmt.Errorf("no symbol for %s", d.QualifiedName())
	})
}

func newFunction(name, annotation string, params []string, ret string) *decl.Declaration {
	d := &decl.Declaration{
		Kind: decl.KindFunction,
		Name: name,
		Sig:  &decl.Signature{Params: params, Result: ret},
	}
	if annotation != "" {
		d.SetAnnotation(annotation)
	}
	return d
}

func newAggregate(name, annotation string, children ...*decl.Declaration) *decl.Declaration {
	d := &decl.Declaration{Kind: decl.KindAggregate, Name: name, Children: children}
	if annotation != "" {
		d.SetAnnotation(annotation)
	}
	return d
}

func newRoot(children ...*decl.Declaration) *decl.Declaration {
	return &decl.Declaration{Kind: decl.KindPackage, Name: "widgets", Children: children}
}

func TestScan_EmitsNothingWithoutMarkers(t *testing.T) {
	testCases := []struct {
		name string
		root *decl.Declaration
	}{
		{
			name: "no annotations at all",
			root: newRoot(
				newAggregate("Widget", "", newFunction("DoIt", "", nil, "void")),
				newFunction("FreeFn", "", nil, "int"),
			),
		},
		{
			name: "annotations without the marker prefix",
			root: newRoot(
				newAggregate("Widget", "plain doc comment", newFunction("DoIt", "returns: nothing", nil, "void")),
				newFunction("FreeFn", "hostlink: single colon is not a marker", nil, "int"),
			),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			s := New(stubResolver(nil), &out)

			stats, err := s.Scan(tc.root)
			require.NoError(t, err)
			assert.Zero(t, stats.Emitted)
			assert.Empty(t, out.String())
		})
	}
}

func TestScan_MethodInsideMarkedAggregate(t *testing.T) {
	doIt := newFunction("DoX", "hostlink::method:doIt", []string{"int", "float"}, "void")
	root := newRoot(newAggregate("WidgetImpl", "hostlink::class:Widget", doIt))

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"DoX": "_ZN6WidgetdoX"}), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Emitted)
	assert.Equal(t, 1, stats.Methods)
	assert.Equal(t, "(method \"Widget\" _ZN6WidgetdoX \"doIt\" (\"int\" \"float\") \"void\")\n", out.String())
}

func TestScan_FreeFunction(t *testing.T) {
	root := newRoot(newFunction("FreeFn", "hostlink::func:doFree", nil, "int"))

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"FreeFn": "freeFn"}), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Emitted)
	assert.Equal(t, 1, stats.Functions)
	assert.Equal(t, "(func freeFn \"doFree\" () \"int\")\n", out.String())
}

func TestScan_ConstructorHasNoImportSegment(t *testing.T) {
	ctor := newFunction("NewWidget", "hostlink::constructor", []string{"string"}, "*Widget")
	root := newRoot(newAggregate("WidgetImpl", "hostlink::class:Widget", ctor))

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"NewWidget": "app.NewWidget"}), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Constructors)
	assert.Equal(t, "(constructor \"Widget\" app.NewWidget (\"string\") \"*Widget\")\n", out.String())
}

func TestScan_MembersWithoutTheirOwnMarkerAreSkipped(t *testing.T) {
	marked := newFunction("DoIt", "hostlink::method:doIt", nil, "void")
	bare := newFunction("Helper", "", nil, "void")
	documented := newFunction("Other", "just a doc comment", nil, "void")
	root := newRoot(newAggregate("WidgetImpl", "hostlink::class:Widget", marked, bare, documented))

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"DoIt": "_Za"}), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Emitted)
	assert.Equal(t, "(method \"Widget\" _Za \"doIt\" () \"void\")\n", out.String())
}

func TestScan_ClassContextDoesNotLeakToSiblings(t *testing.T) {
	// A method-kind marker is reachable only through an enclosing marked
	// aggregate; on a package-level function it stays unemitted.
	inside := newFunction("DoIt", "hostlink::method:doIt", nil, "void")
	outside := newFunction("Stray", "hostlink::method:stray", nil, "void")
	root := newRoot(
		newAggregate("WidgetImpl", "hostlink::class:Widget", inside),
		outside,
	)

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"DoIt": "_Za", "Stray": "_Zb"}), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Emitted)
	assert.NotContains(t, out.String(), "stray")
}

func TestScan_UnmarkedAggregateExportsNothing(t *testing.T) {
	method := newFunction("DoIt", "hostlink::method:doIt", nil, "void")
	root := newRoot(newAggregate("Widget", "", method))

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"DoIt": "_Za"}), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)
	assert.Zero(t, stats.Emitted)
}

func TestScan_OutputFollowsDeclarationOrder(t *testing.T) {
	root := newRoot(
		newAggregate("WidgetImpl", "hostlink::class:Widget",
			newFunction("DoIt", "hostlink::method:doIt", nil, "void"),
			newFunction("DoX", "hostlink::method:doX", nil, "void"),
		),
		newFunction("FreeFn", "hostlink::func:doFree", nil, "int"),
		newAggregate("GadgetImpl", "hostlink::class:Gadget",
			newFunction("Spin", "hostlink::method:spin", nil, "void"),
		),
	)

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{
		"DoIt": "_Z1", "DoX": "_Z2", "FreeFn": "_Z3", "Spin": "_Z4",
	}), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Emitted)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "_Z1")
	assert.Contains(t, lines[1], "_Z2")
	assert.Contains(t, lines[2], "_Z3")
	assert.Contains(t, lines[3], "_Z4")
}

func TestScan_FuncMarkerInsideMarkedAggregate(t *testing.T) {
	// A free-function directive on a member is emitted by the aggregate
	// sweep and again by the direct visit, both times without a class
	// segment. Matches the reference scanner exactly.
	member := newFunction("Detached", "hostlink::func:doDetached", nil, "void")
	root := newRoot(newAggregate("WidgetImpl", "hostlink::class:Widget", member))

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"Detached": "_Zd"}), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Emitted)
	assert.Equal(t, 2, stats.Functions)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, lines[0], lines[1])
	assert.NotContains(t, lines[0], "Widget")
}

func TestScan_UnknownKindEmitsAsWritten(t *testing.T) {
	member := newFunction("OnTick", "hostlink::callback:onTick", []string{"int64"}, "void")
	root := newRoot(newAggregate("WidgetImpl", "hostlink::class:Widget", member))

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"OnTick": "_Zt"}), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Methods)
	assert.Equal(t, "(callback \"Widget\" _Zt \"onTick\" (\"int64\") \"void\")\n", out.String())
}

func TestScan_NonFunctionMembersAreIgnored(t *testing.T) {
	field := &decl.Declaration{Kind: decl.KindOther, Name: "count"}
	field.SetAnnotation("hostlink::method:count")
	root := newRoot(newAggregate("WidgetImpl", "hostlink::class:Widget", field))

	var out bytes.Buffer
	s := New(stubResolver(nil), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)
	assert.Zero(t, stats.Emitted)
}

func TestScan_MalformedAggregateMarker(t *testing.T) {
	testCases := []struct {
		name       string
		annotation string
	}{
		{"missing class name", "hostlink::class"},
		{"empty class name", "hostlink::class:"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agg := newAggregate("WidgetImpl", tc.annotation)
			agg.Pos = decl.Position{File: "widgets.go", Line: 7}
			root := newRoot(agg)

			var out bytes.Buffer
			s := New(stubResolver(nil), &out)

			_, err := s.Scan(root)
			require.Error(t, err)

			var malformed *marker.MalformedError
			require.ErrorAs(t, err, &malformed)
			assert.Contains(t, err.Error(), "widgets.go:7")
		})
	}
}

func TestScan_MalformedMemberMarker(t *testing.T) {
	member := newFunction("DoIt", "hostlink::method", nil, "void")
	member.Pos = decl.Position{File: "widgets.go", Line: 12}
	root := newRoot(newAggregate("WidgetImpl", "hostlink::class:Widget", member))

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"DoIt": "_Za"}), &out)

	_, err := s.Scan(root)
	require.Error(t, err)

	var malformed *marker.MalformedError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "widgets.go:12")
}

func TestScan_InvalidMarkerHead(t *testing.T) {
	member := newFunction("DoIt", "hostlink::", nil, "void")
	root := newRoot(newAggregate("WidgetImpl", "hostlink::class:Widget", member))

	var out bytes.Buffer
	s := New(stubResolver(nil), &out)

	_, err := s.Scan(root)
	require.Error(t, err)

	var syntaxErr *marker.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestScan_MissingSignature(t *testing.T) {
	broken := &decl.Declaration{Kind: decl.KindFunction, Name: "FreeFn"}
	broken.SetAnnotation("hostlink::func:doFree")
	root := newRoot(broken)

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"FreeFn": "freeFn"}), &out)

	_, err := s.Scan(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no signature")
}

func TestScan_ResolverFailureAbortsThePass(t *testing.T) {
	root := newRoot(newFunction("FreeFn", "hostlink::func:doFree", nil, "int"))

	var out bytes.Buffer
	s := New(stubResolver(nil), &out)

	_, err := s.Scan(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve symbol")
	assert.Empty(t, out.String())
}

func TestEmit_ClassInvariant(t *testing.T) {
	// The walker can only reach emit with an empty class through a
	// free-function head, so the invariant is exercised directly: a
	// class-scoped kind without class context must never produce a line.
	member := newFunction("DoIt", "hostlink::method:doIt", nil, "void")

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"DoIt": "_Za"}), &out)

	err := s.emit(member, "")
	require.Error(t, err)

	var invariant *descriptor.InvariantError
	require.ErrorAs(t, err, &invariant)
	assert.Empty(t, out.String())
}

func TestScan_StatsCountEveryVisit(t *testing.T) {
	root := newRoot(
		newAggregate("WidgetImpl", "hostlink::class:Widget",
			newFunction("DoIt", "hostlink::method:doIt", nil, "void"),
			newFunction("NewWidget", "hostlink::constructor", nil, "*Widget"),
		),
		newFunction("FreeFn", "hostlink::func:doFree", nil, "int"),
	)

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{
		"DoIt": "_Z1", "NewWidget": "_Z2", "FreeFn": "_Z3",
	}), &out)

	stats, err := s.Scan(root)
	require.NoError(t, err)

	// root, aggregate, two members, free function
	assert.Equal(t, 5, stats.Visited)
	assert.Equal(t, 3, stats.Emitted)
	assert.Equal(t, 1, stats.Functions)
	assert.Equal(t, 1, stats.Methods)
	assert.Equal(t, 1, stats.Constructors)
}

func TestScan_RunsAreIndependent(t *testing.T) {
	root := newRoot(newFunction("FreeFn", "hostlink::func:doFree", nil, "int"))

	var out bytes.Buffer
	s := New(stubResolver(map[string]string{"FreeFn": "freeFn"}), &out)

	first, err := s.Scan(root)
	require.NoError(t, err)
	second, err := s.Scan(root)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}
