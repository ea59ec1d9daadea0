// Package frontend runs the lexer, parser and resolver over the files of
// one module.
//
// Files are parsed concurrently, each with its own scope manager and
// reporter, into detached file scopes. Once every file is done the scopes
// are attached to the module in request order and all refs are resolved
// in one pass, so a file may use what a later file declares.
package frontend

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"treeswift/pkg/ast"
	"treeswift/pkg/diag"
	"treeswift/pkg/lexer"
	"treeswift/pkg/parser"
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// Source is one named input.
type Source struct {
	Name string
	Text string
}

// Result is the outcome of a run. Module holds the files that parsed
// without a fatal; the ledger has a bundle for every requested file.
type Result struct {
	Module      *ast.Module
	Ledger      *diag.Ledger
	Resolutions []scope.Resolution
}

// unit is the state of one file between the phases.
type unit struct {
	name  string
	open  func() (io.ReadCloser, error)
	file  *ast.File
	r     *diag.Reporter
	lines []string
}

// ParseFiles reads and parses the files at paths. The returned error is
// set only when ctx is done; unreadable files, syntax and scope errors are
// in the ledger.
func ParseFiles(ctx context.Context, cfg Config, paths []string) (*Result, error) {
	units := make([]*unit, len(paths))
	for i, p := range paths {
		units[i] = &unit{name: p, open: func() (io.ReadCloser, error) { return os.Open(p) }}
	}
	return run(ctx, cfg, units)
}

// ParseSources is ParseFiles for in-memory inputs.
func ParseSources(ctx context.Context, cfg Config, srcs []Source) (*Result, error) {
	units := make([]*unit, len(srcs))
	for i, s := range srcs {
		units[i] = &unit{name: s.Name, open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(s.Text)), nil
		}}
	}
	return run(ctx, cfg, units)
}

func run(ctx context.Context, cfg Config, units []*unit) (*Result, error) {
	var prelude *scope.Scope
	if !cfg.NoPrelude {
		prelude = scope.Prelude()
	}
	module := scope.NewModule(cfg.ModuleName, prelude)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs())
	for _, u := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			u.parse(module, cfg.MaxErrors)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Module: &ast.Module{Name: cfg.ModuleName, Scope: module},
		Ledger: &diag.Ledger{},
	}
	byFile := make(map[*scope.Scope]*unit)
	for _, u := range units {
		if u.file == nil {
			continue
		}
		for _, err := range module.Attach(u.file.Scope) {
			u.scopeError(err)
		}
		u.checkImports(cfg)
		byFile[u.file.Scope] = u
		res.Module.Files = append(res.Module.Files, u.file)
	}

	res.Resolutions = scope.Resolve(module)
	for _, x := range res.Resolutions {
		if x.Resolved() {
			continue
		}
		if u := byFile[fileScope(x.Ref.Scope)]; u != nil {
			u.scopeError(x.Err())
		}
	}

	for _, u := range units {
		res.Ledger.Add(u.r.Bundle(u.name, u.lines))
	}
	return res, nil
}

// parse runs the first phase for one file. A file that cannot be read
// gets a fatal in its own bundle and stays out of the module.
func (u *unit) parse(module *scope.Scope, maxErrors int) {
	u.r = diag.NewReporter(maxErrors)
	rc, err := u.open()
	if err != nil {
		_ = u.r.Fatal(source.Pos{}, "cannot open file: %v", pathCause(err))
		return
	}
	defer rc.Close()

	cs := source.NewCharStream(rc)
	m := scope.NewFileManager(module, u.name)
	f, perr := parser.ParseFile(u.name, lexer.NewStream(cs), m, u.r)
	u.lines = cs.Lines()
	if err := cs.Err(); err != nil {
		if !u.r.HasFatal() {
			_ = u.r.Fatal(source.Pos{}, "cannot read file: %v", pathCause(err))
		}
		return
	}
	if perr == nil {
		u.file = f
	}
}

// pathCause drops the path from err; the bundle already names the file.
func pathCause(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// scopeError records a second phase failure against the file. The cap
// still applies: the failure that exceeds it is recorded as the file's
// fatal, and every later one is dropped without a diagnostic.
func (u *unit) scopeError(err error) {
	if u.r.HasFatal() {
		return
	}
	pos := source.Pos{}
	var se *scope.Error
	if errors.As(err, &se) {
		pos = se.Pos
	}
	_ = u.r.Error(pos, "%s", err)
}

// checkImports reports imports of modules the configuration does not know.
func (u *unit) checkImports(cfg Config) {
	for _, p := range u.file.Procedures {
		imp, ok := p.(*ast.ImportDecl)
		if !ok || len(imp.Path) == 0 || cfg.known(imp.Path[0]) {
			continue
		}
		u.scopeError(&scope.Error{Kind: scope.NoSuchModule, Name: imp.Path[0], Pos: imp.Pos})
	}
}

func fileScope(s *scope.Scope) *scope.Scope {
	for ; s != nil; s = s.Parent {
		if s.Kind == scope.File {
			return s
		}
	}
	return nil
}
