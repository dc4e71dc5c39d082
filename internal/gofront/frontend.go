// Package gofront builds resolved declaration trees from Go source. It is
// the only package that touches the Go parser and type checker; the scanner
// consumes the decl tree without knowing where it came from.
//
// Three modes produce the same tree shape: ParseSource for a single snippet,
// ParseDirectory for a package directory without type information, and
// LoadPackage for a fully type-checked load through the build system. Struct
// type declarations become aggregate nodes, methods attach as children of
// their receiver's aggregate, package-level functions hang off the root. The
// annotation of a node is the first doc-comment line carrying the marker
// prefix, with the comment syntax stripped.
package gofront

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/wasmfoundry/hostlink/internal/decl"
	"github.com/wasmfoundry/hostlink/internal/marker"
)

// Frontend turns Go source into declaration trees
type Frontend struct {
	fileSet *token.FileSet
}

// NewFrontend creates a new front end with its own file set
func NewFrontend() *Frontend {
	return &Frontend{
		fileSet: token.NewFileSet(),
	}
}

// ParseSource parses source code from a string, primarily for tests and
// single snippets. Type spellings are syntactic and the package path is
// empty.
func (f *Frontend) ParseSource(filename, source string) (*decl.Declaration, error) {
	file, err := parser.ParseFile(f.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return f.buildTree(file.Name.Name, "", []*ast.File{file}, syntacticSignature), nil
}

// ParseDirectory parses every non-test Go file of the single package in dir,
// without type checking. pkgPath is the import path the caller resolved for
// the directory; it lands on every node for symbol resolution. Files are
// processed in name order so emission order is stable.
func (f *Frontend) ParseDirectory(dir, pkgPath string) (*decl.Declaration, error) {
	noTests := func(fi fs.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}
	pkgs, err := parser.ParseDir(f.fileSet, dir, noTests, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in directory %s", dir)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found in directory %s", dir)
	}

	var pkg *ast.Package
	var pkgName string
	for name, p := range pkgs {
		pkg = p
		pkgName = name
		break
	}

	names := make([]string, 0, len(pkg.Files))
	for name := range pkg.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	files := make([]*ast.File, 0, len(names))
	for _, name := range names {
		files = append(files, pkg.Files[name])
	}

	return f.buildTree(pkgName, pkgPath, files, syntacticSignature), nil
}

// LoadPackage loads the package in dir through the build system, with full
// type information. Type spellings come from the checker, qualified by
// package name for anything outside the loaded package. The import path is
// whatever the build system resolves for dir.
func (f *Frontend) LoadPackage(dir string) (*decl.Declaration, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  dir,
		Fset: f.fileSet,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %s: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go package found in %s", dir)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		msgs := make([]string, 0, len(pkg.Errors))
		for _, pkgErr := range pkg.Errors {
			msgs = append(msgs, pkgErr.Error())
		}
		return nil, fmt.Errorf("failed to load package %s: %s", pkg.PkgPath, strings.Join(msgs, "; "))
	}

	return f.buildTree(pkg.Name, pkg.PkgPath, pkg.Syntax, typedSignature(pkg)), nil
}

// buildTree assembles the declaration tree from parsed files. The first pass
// places package-level declarations in source order; the second attaches
// methods under their receiver's aggregate, which Go allows to be declared
// after the method. Constructor-marked factory functions are adopted by the
// aggregate their first result names, since Go spells constructors as
// package-level factories rather than members.
func (f *Frontend) buildTree(pkgName, pkgPath string, files []*ast.File, render signatureRenderer) *decl.Declaration {
	root := &decl.Declaration{Kind: decl.KindPackage, Name: pkgName, PkgPath: pkgPath}
	if len(files) > 0 {
		root.Pos = f.position(files[0].Package)
	}

	aggregates := make(map[string]*decl.Declaration)
	var factories []*ast.FuncDecl

	for _, file := range files {
		for _, top := range file.Decls {
			switch node := top.(type) {
			case *ast.GenDecl:
				f.addGenDecl(root, aggregates, node, pkgPath)
			case *ast.FuncDecl:
				if node.Recv != nil {
					continue
				}
				if text, ok := annotationFrom(node.Doc); ok && marker.HasConstructorHead(text) {
					factories = append(factories, node)
					continue
				}
				root.AddChild(f.functionNode(node, pkgPath, render))
			}
		}
	}

	for _, file := range files {
		for _, top := range file.Decls {
			node, ok := top.(*ast.FuncDecl)
			if !ok || node.Recv == nil {
				continue
			}
			fn := f.functionNode(node, pkgPath, render)
			fn.Receiver, fn.PtrReceiver = receiverType(node)
			if owner, ok := aggregates[fn.Receiver]; ok {
				owner.AddChild(fn)
			} else {
				// Methods on non-struct types have no aggregate to live
				// under; they stay reachable at the package level.
				root.AddChild(fn)
			}
		}
	}

	for _, node := range factories {
		fn := f.functionNode(node, pkgPath, render)
		if owner, ok := aggregates[constructedType(node)]; ok {
			owner.AddChild(fn)
		} else {
			root.AddChild(fn)
		}
	}

	return root
}

// constructedType names the aggregate a factory function constructs: the
// base type of its first result.
func constructedType(node *ast.FuncDecl) string {
	if node.Type.Results == nil || len(node.Type.Results.List) == 0 {
		return ""
	}
	t := node.Type.Results.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	return baseTypeName(t)
}

// addGenDecl places type, var and const declarations. Only struct types
// become aggregates; everything else is an Other node the scanner recurses
// through without emitting.
func (f *Frontend) addGenDecl(root *decl.Declaration, aggregates map[string]*decl.Declaration, node *ast.GenDecl, pkgPath string) {
	switch node.Tok {
	case token.TYPE:
		for _, spec := range node.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			child := &decl.Declaration{
				Name:    typeSpec.Name.Name,
				PkgPath: pkgPath,
				Pos:     f.position(typeSpec.Pos()),
			}
			if _, isStruct := typeSpec.Type.(*ast.StructType); isStruct {
				child.Kind = decl.KindAggregate
				aggregates[child.Name] = child

				doc := typeSpec.Doc
				if doc == nil {
					doc = node.Doc
				}
				if text, ok := annotationFrom(doc); ok {
					child.SetAnnotation(text)
				}
			} else {
				child.Kind = decl.KindOther
			}
			root.AddChild(child)
		}
	case token.VAR, token.CONST:
		for _, spec := range node.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, name := range valueSpec.Names {
				root.AddChild(&decl.Declaration{
					Kind:    decl.KindOther,
					Name:    name.Name,
					PkgPath: pkgPath,
					Pos:     f.position(name.Pos()),
				})
			}
		}
	}
}

func (f *Frontend) functionNode(node *ast.FuncDecl, pkgPath string, render signatureRenderer) *decl.Declaration {
	fn := &decl.Declaration{
		Kind:    decl.KindFunction,
		Name:    node.Name.Name,
		PkgPath: pkgPath,
		Sig:     render(node),
		Pos:     f.position(node.Pos()),
	}
	if text, ok := annotationFrom(node.Doc); ok {
		fn.SetAnnotation(text)
	}
	return fn
}

func (f *Frontend) position(pos token.Pos) decl.Position {
	p := f.fileSet.Position(pos)
	return decl.Position{File: p.Filename, Line: p.Line}
}

// annotationFrom returns the first doc-comment line carrying the marker
// prefix, stripped of the comment syntax and surrounding whitespace.
func annotationFrom(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, comment := range doc.List {
		text := strings.TrimPrefix(comment.Text, "//")
		text = strings.TrimSpace(text)
		if strings.HasPrefix(text, marker.Prefix) {
			return text, true
		}
	}
	return "", false
}

// receiverType extracts the base type name of a method receiver and whether
// the receiver is a pointer. Generic receivers reduce to their base name.
func receiverType(node *ast.FuncDecl) (string, bool) {
	if node.Recv == nil || len(node.Recv.List) == 0 {
		return "", false
	}
	t := node.Recv.List[0].Type
	ptr := false
	if star, ok := t.(*ast.StarExpr); ok {
		ptr = true
		t = star.X
	}
	return baseTypeName(t), ptr
}

func baseTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return baseTypeName(t.X)
	case *ast.IndexListExpr:
		return baseTypeName(t.X)
	case *ast.ParenExpr:
		return baseTypeName(t.X)
	}
	return ""
}
