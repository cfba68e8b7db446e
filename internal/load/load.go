// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package load turns Go packages into type-checked [tree.Unit] values.
package load

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"maps"
	"os"
	"slices"
	"strings"

	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/packages"

	"fillmore-labs.com/patternguard/tree"
)

var (
	// ErrPackage is returned for packages that do not compile.
	ErrPackage = errors.New("package has errors")

	// ErrNoPackages is returned when the patterns match nothing.
	ErrNoPackages = errors.New("no packages matched")
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
	packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports

// Package is one type-checked package.
type Package struct {
	Path  string
	Fset  *token.FileSet
	Types *types.Package
	Info  *types.Info
	Units []*tree.Unit
}

// Config controls [Packages].
type Config struct {
	// Dir is the working directory of the build system, empty for the current directory.
	Dir string

	// Tests includes test files and test packages.
	Tests bool
}

// Packages loads and type-checks the packages matching patterns.
func (c Config) Packages(ctx context.Context, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     c.Dir,
		Tests:   c.Tests,
		Fset:    token.NewFileSet(),
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("can't load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoPackages, patterns)
	}

	var errs []error

	result := make([]*Package, 0, len(pkgs))
	for _, pkg := range testVariants(pkgs) {
		p, err := fromPackages(cfg.Fset, pkg)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		result = append(result, p)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return result, nil
}

// testVariants drops test binaries and packages superseded by their test variant.
func testVariants(pkgs []*packages.Package) []*packages.Package {
	ids := make(map[string]struct{}, len(pkgs))
	for _, pkg := range pkgs {
		ids[pkg.ID] = struct{}{}
	}

	result := make([]*packages.Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.ID, ".test") {
			continue
		}

		if _, ok := ids[pkg.PkgPath+" ["+pkg.PkgPath+".test]"]; ok && pkg.ID == pkg.PkgPath {
			continue
		}

		result = append(result, pkg)
	}

	return result
}

func fromPackages(fset *token.FileSet, pkg *packages.Package) (*Package, error) {
	if len(pkg.Errors) > 0 {
		errs := make([]error, 0, len(pkg.Errors))
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}

		return nil, fmt.Errorf("%w %s: %w", ErrPackage, pkg.ID, errors.Join(errs...))
	}

	// Cgo output and other generated compile inputs are not user source.
	files := make([]*ast.File, 0, len(pkg.Syntax))
	for _, f := range pkg.Syntax {
		if slices.Contains(pkg.GoFiles, fset.File(f.FileStart).Name()) {
			files = append(files, f)
		}
	}

	units, err := units(fset, files, pkg.Types, pkg.TypesInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", pkg.ID, err)
	}

	return &Package{Path: pkg.PkgPath, Fset: fset, Types: pkg.Types, Info: pkg.TypesInfo, Units: units}, nil
}

// units wraps files sharing one inspector. Source is read from disk unless given in sources.
func units(fset *token.FileSet, files []*ast.File, pkg *types.Package, info *types.Info, sources map[string][]byte) ([]*tree.Unit, error) {
	in := inspector.New(files)

	result := make([]*tree.Unit, 0, len(files))
	for c := range in.Root().Children() {
		file, _ := c.Node().(*ast.File)
		name := fset.File(file.FileStart).Name()

		src, ok := sources[name]
		if !ok {
			var err error
			if src, err = os.ReadFile(name); err != nil {
				return nil, err
			}
		}

		u, err := tree.UnitAt(fset, c, pkg, info, src)
		if err != nil {
			return nil, err
		}

		result = append(result, u)
	}

	return result, nil
}

// Sources returns the source of every unit, keyed by file name.
func (p *Package) Sources() map[string][]byte {
	sources := make(map[string][]byte, len(p.Units))
	for _, u := range p.Units {
		sources[u.Filename()] = u.Source()
	}

	return sources
}

// File is an in-memory source file.
type File struct {
	Name string
	Src  []byte
}

// Source parses and type-checks in-memory files as the package path.
// Imports are resolved from installed export data.
func Source(path string, files ...File) (*Package, error) {
	return check(path, files, nil)
}

// Recheck parses and type-checks the package again with some files replaced.
// Files not in changed keep their current source.
func (p *Package) Recheck(changed map[string][]byte) (*Package, error) {
	files := make([]File, 0, len(p.Units))
	for _, u := range p.Units {
		files = append(files, File{Name: u.Filename(), Src: u.Source()})
	}

	for name, src := range changed {
		i := slices.IndexFunc(files, func(f File) bool { return f.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("file %s is not part of package %s", name, p.Path)
		}

		files[i].Src = src
	}

	var known []*types.Package
	if p.Types != nil {
		known = p.Types.Imports()
	}

	return check(p.Path, files, known)
}

func check(path string, files []File, known []*types.Package) (*Package, error) {
	fset := token.NewFileSet()

	syntax := make([]*ast.File, 0, len(files))
	sources := make(map[string][]byte, len(files))

	for _, file := range files {
		f, err := parser.ParseFile(fset, file.Name, file.Src, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, err
		}

		syntax = append(syntax, f)
		sources[file.Name] = file.Src
	}

	imp := &recheckImporter{known: make(map[string]*types.Package, len(known)), fallback: importer.Default()}
	for _, dep := range known {
		imp.known[dep.Path()] = dep
	}

	info := NewInfo()
	conf := types.Config{Importer: imp}

	pkg, err := conf.Check(path, fset, syntax, info)
	if err != nil {
		return nil, err
	}

	units, err := units(fset, syntax, pkg, info, sources)
	if err != nil {
		return nil, err
	}

	return &Package{Path: path, Fset: fset, Types: pkg, Info: info, Units: units}, nil
}

// Fingerprint digests the package sources, the exported API of its imports
// and key, which describes the analysis configuration.
func (p *Package) Fingerprint(key string) string {
	h := sha256.New()

	h.Write([]byte(p.Path + "\x00" + key + "\x00")) // never fails

	if p.Types != nil {
		deps := make(map[string]*types.Package, len(p.Types.Imports()))
		for _, dep := range p.Types.Imports() {
			deps[dep.Path()] = dep
		}

		for _, path := range slices.Sorted(maps.Keys(deps)) {
			h.Write([]byte("import=" + path + "\x00"))

			scope := deps[path].Scope()
			for _, name := range scope.Names() {
				if obj := scope.Lookup(name); obj.Exported() {
					h.Write([]byte(types.ObjectString(obj, nil) + "\x00"))
				}
			}
		}
	}

	for _, u := range p.Units {
		sum := sha256.Sum256(u.Source())
		h.Write([]byte("file=" + u.Filename() + "\x00"))
		h.Write(sum[:])
	}

	return hex.EncodeToString(h.Sum(nil))
}

// NewInfo returns a [types.Info] with all maps checkers consult.
func NewInfo() *types.Info {
	return &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Instances:  make(map[*ast.Ident]types.Instance),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}
}

// recheckImporter resolves imports to the packages of the original check,
// so types stay identical across passes. Imports added by fixes use fallback.
type recheckImporter struct {
	known    map[string]*types.Package
	fallback types.Importer
}

func (i *recheckImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := i.known[path]; ok {
		return pkg, nil
	}

	return i.fallback.Import(path)
}
