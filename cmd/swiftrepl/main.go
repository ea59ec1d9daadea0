package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"treeswift/pkg/ast"
	"treeswift/pkg/frontend"
)

const (
	historyFile = ".treeswift_history"
	promptMain  = "swift> "
	promptCont  = "  ...> "
)

const help = `Type declarations and statements; each entry sees the ones before it.
  :ast     toggle printing of the syntax tree of each entry (on)
  :scopes  print the scope tree of the session
  :reset   forget every entry
  :quit    leave`

func main() {
	fmt.Println("treeswift front end REPL. Type :help for commands.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newSession(frontend.DefaultConfig())
	showAST := true
	lastScope := ""
	for {
		entry, ok := readEntry(ln, s)
		if !ok {
			fmt.Println()
			return
		}
		trimmed := strings.TrimSpace(entry)
		switch trimmed {
		case "":
			continue
		case ":quit":
			return
		case ":help":
			fmt.Println(help)
			continue
		case ":reset":
			s.reset()
			lastScope = ""
			continue
		case ":ast":
			showAST = !showAST
			continue
		case ":scopes":
			fmt.Print(lastScope)
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			fmt.Println("unknown command. Type :help for commands.")
			continue
		}

		out, err := s.eval(entry)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
		if err := out.Bundle.Write(os.Stderr); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if out.Bundle.HasErrors() {
			continue
		}
		lastScope = out.Scope
		if showAST {
			for _, p := range out.Procedures {
				_ = ast.Dump(os.Stdout, p)
			}
		}
	}
}

// readEntry reads lines until they form an entry that does not end early.
func readEntry(ln *liner.State, s *session) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		entry := b.String()
		if strings.HasPrefix(strings.TrimSpace(entry), ":") || !s.incomplete(entry) {
			return entry, true
		}
	}
}
