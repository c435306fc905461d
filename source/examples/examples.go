// Package examples holds the built-in example programs, one per file in programs/.
package examples

import (
	"embed"
	"sort"
	"strings"
)

//go:embed programs/*.secd
var programs embed.FS

const suffix = ".secd"

// The source text of the named example.
func Get(name string) (string, bool) {
	data, err := programs.ReadFile("programs/" + name + suffix)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func Names() []string {
	entries, _ := programs.ReadDir("programs")
	names := []string{}
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), suffix))
	}
	sort.Strings(names)
	return names
}

// The first comment line of an example, which says what it computes.
func Summary(name string) string {
	src, ok := Get(name)
	if !ok {
		return ""
	}
	first, _, _ := strings.Cut(src, "\n")
	return strings.TrimSpace(strings.TrimPrefix(first, "#"))
}
