package gofront

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/wasmfoundry/hostlink/internal/decl"
)

// signatureRenderer produces the parameter and return spellings for a
// function declaration. The scanner copies these into descriptors verbatim,
// so both renderers must agree on the canonical forms: "void" for an empty
// result list, "(t1, t2)" for tuples, "...T" for variadic parameters.
type signatureRenderer func(node *ast.FuncDecl) *decl.Signature

// syntacticSignature spells types exactly as written in the source
func syntacticSignature(node *ast.FuncDecl) *decl.Signature {
	sig := &decl.Signature{Result: "void"}

	if node.Type.Params != nil {
		for _, field := range node.Type.Params.List {
			spelled := types.ExprString(field.Type)
			for i := 0; i < fieldArity(field); i++ {
				sig.Params = append(sig.Params, spelled)
			}
		}
	}

	if node.Type.Results != nil {
		var results []string
		for _, field := range node.Type.Results.List {
			spelled := types.ExprString(field.Type)
			for i := 0; i < fieldArity(field); i++ {
				results = append(results, spelled)
			}
		}
		sig.Result = renderResults(results)
	}

	return sig
}

// fieldArity is the number of parameters or results a field declares:
// "a, b int" counts twice, an anonymous field once.
func fieldArity(field *ast.Field) int {
	if len(field.Names) == 0 {
		return 1
	}
	return len(field.Names)
}

// typedSignature spells types through the checker, qualified by package name
// for anything outside pkg. It falls back to the syntactic spelling when the
// checker has no object for the declaration.
func typedSignature(pkg *packages.Package) signatureRenderer {
	qual := func(other *types.Package) string {
		if other == pkg.Types {
			return ""
		}
		return other.Name()
	}

	return func(node *ast.FuncDecl) *decl.Signature {
		obj, ok := pkg.TypesInfo.Defs[node.Name].(*types.Func)
		if !ok || obj == nil {
			return syntacticSignature(node)
		}
		typedSig, ok := obj.Type().(*types.Signature)
		if !ok {
			return syntacticSignature(node)
		}

		sig := &decl.Signature{Result: "void"}

		params := typedSig.Params()
		for i := 0; i < params.Len(); i++ {
			spelled := types.TypeString(params.At(i).Type(), qual)
			if typedSig.Variadic() && i == params.Len()-1 {
				if slice, ok := params.At(i).Type().(*types.Slice); ok {
					spelled = "..." + types.TypeString(slice.Elem(), qual)
				}
			}
			sig.Params = append(sig.Params, spelled)
		}

		results := typedSig.Results()
		if results.Len() > 0 {
			spelled := make([]string, 0, results.Len())
			for i := 0; i < results.Len(); i++ {
				spelled = append(spelled, types.TypeString(results.At(i).Type(), qual))
			}
			sig.Result = renderResults(spelled)
		}

		return sig
	}
}

func renderResults(results []string) string {
	switch len(results) {
	case 0:
		return "void"
	case 1:
		return results[0]
	default:
		return "(" + strings.Join(results, ", ") + ")"
	}
}
