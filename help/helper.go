// Package help holds small process-environment helpers.
package help

import (
	"os"
	"os/user"
)

// HomeDir resolves the invoking user's home directory, falling back to the
// current directory.
func HomeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if u, err := user.Current(); err == nil && u.HomeDir != "" {
		return u.HomeDir
	}
	if h := os.Getenv("USERPROFILE"); h != "" {
		return h
	}
	return "."
}

// LookupEnv returns the first non-empty value among the named variables.
func LookupEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
