package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"treeswift/pkg/ast"
	"treeswift/pkg/diag"
	"treeswift/pkg/frontend"
	"treeswift/pkg/utils"
)

func main() {
	cfg := frontend.DefaultConfig()
	maxErrors := flag.Int("max-errors", cfg.MaxErrors, "errors per file before the file is abandoned")
	jobs := flag.Int("jobs", cfg.Jobs, "files parsed at once")
	moduleName := flag.String("module", cfg.ModuleName, "name of the module the files belong to")
	modules := flag.String("modules", strings.Join(cfg.KnownModules, ","), "comma separated modules that may be imported")
	noPrelude := flag.Bool("no-prelude", false, "do not declare the standard library")
	dump := flag.Bool("dump", false, "print the syntax tree of every file that parsed")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "nothing to do: provide .swift files or directories")
		flag.Usage()
		os.Exit(2)
	}

	cfg.MaxErrors = *maxErrors
	cfg.Jobs = *jobs
	cfg.ModuleName = *moduleName
	cfg.KnownModules = splitList(*modules)
	cfg.NoPrelude = *noPrelude

	files, err := utils.SourceFiles(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(1)
	}
	paths := make([]string, len(files))
	for i, arg := range files {
		full, _, err := utils.GetPathInfo(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad path %q: %v\n", arg, err)
			os.Exit(1)
		}
		paths[i] = full
	}

	res, err := frontend.ParseFiles(context.Background(), cfg, paths)
	if err != nil {
		fmt.Fprintln(os.Stderr, "front end failed:", err)
		os.Exit(1)
	}

	os.Exit(output(res, *dump, os.Stdout, os.Stderr))
}

// output prints the diagnostics of res and, only when there are no
// errors, the requested results. It returns the exit code.
func output(res *frontend.Result, dump bool, stdout, stderr io.Writer) int {
	if err := res.Ledger.Report(stderr); err != nil {
		fmt.Fprintln(stderr, "report failed:", err)
		return 1
	}
	if res.Ledger.HasErrors() {
		fmt.Fprintf(stderr, "%d error(s), %d fatal\n", res.Ledger.Count(diag.Error), res.Ledger.Count(diag.Fatal))
		return 1
	}
	if dump {
		if err := ast.Dump(stdout, res.Module); err != nil {
			fmt.Fprintln(stderr, "dump failed:", err)
			return 1
		}
	}
	fmt.Fprintf(stdout, "parsed %d file(s), %d reference(s) resolved\n", len(res.Module.Files), len(res.Resolutions))
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
