package frontend

import (
	"runtime"

	"treeswift/pkg/diag"
	"treeswift/pkg/scope"
)

// Config controls a front end run.
type Config struct {
	// ModuleName names the module the files are merged into.
	ModuleName string
	// MaxErrors is the per-file error cap; the error after it aborts the file.
	MaxErrors int
	// Jobs bounds the number of files parsed at once. Values below 1 mean
	// one job per CPU.
	Jobs int
	// KnownModules lists the modules an import may name.
	KnownModules []string
	// NoPrelude leaves the standard types, functions and operators out.
	NoPrelude bool
}

// DefaultConfig returns the settings the CLI starts from.
func DefaultConfig() Config {
	return Config{
		ModuleName:   "main",
		MaxErrors:    diag.DefaultMaxErrors,
		Jobs:         runtime.NumCPU(),
		KnownModules: []string{scope.PreludeName, "Foundation", "Darwin"},
	}
}

func (c Config) jobs() int {
	if c.Jobs < 1 {
		return runtime.NumCPU()
	}
	return c.Jobs
}

func (c Config) known(module string) bool {
	for _, m := range c.KnownModules {
		if m == module {
			return true
		}
	}
	return false
}
