package main

import (
	"context"
	"strings"

	"treeswift/pkg/ast"
	"treeswift/pkg/diag"
	"treeswift/pkg/frontend"
	"treeswift/pkg/lexer"
)

const replFile = "<repl>"

// session keeps the entries accepted so far. Every entry is parsed
// together with them so earlier declarations stay in scope.
type session struct {
	cfg      frontend.Config
	accepted []string
	procs    int
}

func newSession(cfg frontend.Config) *session {
	return &session{cfg: cfg}
}

// outcome is the result of one entry: either the procedures it added or
// the diagnostics that rejected it.
type outcome struct {
	Procedures []ast.Procedure
	Bundle     *diag.Bundle
	Scope      string
}

func (s *session) source(entry string) string {
	return strings.Join(append(append([]string(nil), s.accepted...), entry), "\n")
}

func (s *session) run(entry string) (*frontend.Result, error) {
	src := []frontend.Source{{Name: replFile, Text: s.source(entry)}}
	return frontend.ParseSources(context.Background(), s.cfg, src)
}

// incomplete reports whether entry only fails because input ended too
// early, so another line should be read before evaluating it.
func (s *session) incomplete(entry string) bool {
	res, err := s.run(entry)
	if err != nil {
		return false
	}
	for _, b := range res.Ledger.Bundles() {
		for _, d := range b.Diagnostics {
			if strings.HasSuffix(d.Message, "found end of file") || d.Message == lexer.MsgUnexpectedEOF {
				return true
			}
		}
	}
	return false
}

// eval parses entry. Entries with errors are not kept.
func (s *session) eval(entry string) (*outcome, error) {
	res, err := s.run(entry)
	if err != nil {
		return nil, err
	}
	b := res.Ledger.Bundles()[0]
	if b.HasErrors() {
		return &outcome{Bundle: b}, nil
	}
	f := res.Module.Files[0]
	out := &outcome{Procedures: f.Procedures[s.procs:], Bundle: b, Scope: res.Module.Scope.String()}
	s.accepted = append(s.accepted, entry)
	s.procs = len(f.Procedures)
	return out, nil
}

func (s *session) reset() {
	s.accepted = nil
	s.procs = 0
}
