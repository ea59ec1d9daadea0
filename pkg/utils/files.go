package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// GetPathInfo resolves relPath to an absolute, cleaned path and the
// directory that holds it.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	return fullPath, filepath.Dir(fullPath), nil
}

// SourceFiles expands the arguments of a driver: files are kept as given,
// directories contribute their .swift files in name order.
func SourceFiles(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".swift") {
				out = append(out, filepath.Join(arg, e.Name()))
			}
		}
	}
	return out, nil
}
