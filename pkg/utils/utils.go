package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SplitTrimString splits s around sep, trims the parts and drops the empty
// ones. It is used for the lists of codes like "4006381333931, 5901234123457".
func SplitTrimString(s, sep string) []string {
	parts := make([]string, 0)
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// FileExists returns true if name is a regular file. A directory is an error.
func FileExists(name string) (bool, error) {
	infos, err := os.Stat(name)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if infos.IsDir() {
		return false, fmt.Errorf("path %s is a directory", name)
	}
	return true, nil
}

// AbsPath returns the absolute path for a directory of the configuration
// search paths, where ~ is the home directory and a leading $VAR is replaced
// by the value of the environment variable.
func AbsPath(inPath string) string {
	if rest, ok := strings.CutPrefix(inPath, "~"); ok {
		inPath = "$HOME" + rest
	}
	if strings.HasPrefix(inPath, "$") {
		end := strings.IndexRune(inPath, os.PathSeparator)
		if end < 0 {
			end = len(inPath)
		}
		inPath = os.Getenv(inPath[1:end]) + inPath[end:]
	}

	p, err := filepath.Abs(inPath)
	if err != nil {
		return ""
	}
	return p
}
