package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"treeswift/pkg/ast"
	"treeswift/pkg/frontend"
	"treeswift/pkg/lexer"
	"treeswift/pkg/source"
)

const testSource = `let greeting = "hello"
func shout(s: String) -> String { return s }
print(shout(greeting))
`

func main() {
	showTokens := flag.Bool("tokens", true, "print the token stream")
	showAST := flag.Bool("ast", true, "print the syntax tree")
	showScopes := flag.Bool("scopes", true, "print the scope tree with resolutions")
	flag.Parse()

	name := "test.swift"
	src := testSource
	if flag.NArg() > 0 {
		name = flag.Arg(0)
		data, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = string(data)
	}

	fmt.Printf("Source:\n%s\n", src)

	// Lex
	if *showTokens {
		tokens := lexer.NewStream(source.FromString(src)).All()
		fmt.Printf("Tokens (%d)\n", len(tokens))
		for _, tok := range tokens {
			fmt.Printf("  %s %s\n", tok.Pos, tok)
		}
		fmt.Println()
	}

	// Parse and resolve
	res, err := frontend.ParseSources(context.Background(), frontend.DefaultConfig(), []frontend.Source{{Name: name, Text: src}})
	if err != nil {
		fmt.Fprintln(os.Stderr, "front end error:", err)
		os.Exit(1)
	}

	if *showAST {
		fmt.Println("AST")
		if err := ast.Dump(os.Stdout, res.Module); err != nil {
			fmt.Fprintln(os.Stderr, "dump error:", err)
			os.Exit(1)
		}
		fmt.Println()
	}

	if *showScopes {
		fmt.Println("Scopes")
		fmt.Print(res.Module.Scope)
		fmt.Println()
	}

	fmt.Println("Diagnostics")
	if err := res.Ledger.Report(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "report error:", err)
		os.Exit(1)
	}
	if res.Ledger.HasErrors() {
		os.Exit(1)
	}
}
