package jdk

import (
	"path/filepath"
	"regexp"
	"strings"
)

// vendorRule pairs a predicate with the vendor it identifies. Rules are
// evaluated in order against the lower-cased full path and leaf directory
// name; the first hit wins. Adding a vendor means adding a row, not
// touching control flow.
type vendorRule struct {
	vendor string
	match  func(path, leaf string) bool
}

var vendorRules = []vendorRule{
	{"Temurin", func(path, leaf string) bool {
		return strings.Contains(path, "temurin") || strings.Contains(leaf, "adoptium")
	}},
	{"Oracle", func(path, leaf string) bool {
		return strings.Contains(path, "oracle") ||
			(strings.HasPrefix(leaf, "jdk-") && !strings.Contains(leaf, "openjdk"))
	}},
	{"Amazon Corretto", func(path, leaf string) bool {
		return strings.Contains(path, "amazon-corretto") || strings.Contains(leaf, "corretto")
	}},
	{"Zulu", func(path, leaf string) bool {
		return strings.Contains(leaf, "zulu")
	}},
	{"GraalVM", func(path, leaf string) bool {
		return strings.Contains(leaf, "graalvm")
	}},
	{"OpenJDK", func(path, leaf string) bool {
		return strings.Contains(leaf, "openjdk") || strings.Contains(path, "openjdk")
	}},
	{"OpenJDK", func(path, leaf string) bool {
		return strings.HasPrefix(leaf, "jdk") || strings.Contains(leaf, "java-")
	}},
}

var (
	namePrefixJunk = regexp.MustCompile(`[^a-zA-Z0-9-]+`)
	nameJunk       = regexp.MustCompile(`[^a-zA-Z0-9.-]+`)
)

// Identify derives the canonical display name and best-guess vendor for a
// JDK home. The result is heuristic: distinct paths may produce the same
// name, and callers must disambiguate by path, never merge.
func Identify(home, version string) (name, vendor string) {
	pathLower := strings.ToLower(home)
	leaf := filepath.Base(home)
	leafLower := strings.ToLower(leaf)

	for _, rule := range vendorRules {
		if rule.match(pathLower, leafLower) {
			vendor = rule.vendor
			break
		}
	}

	var prefix string
	if vendor != "" {
		prefix = strings.ReplaceAll(strings.ToLower(vendor), " ", "")
	} else {
		prefix = strings.Trim(namePrefixJunk.ReplaceAllString(leafLower, "-"), "-")
	}

	parts := make([]string, 0, 2)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	if version != "" {
		parts = append(parts, version)
	}
	name = strings.Join(parts, "-")

	name = strings.Trim(nameJunk.ReplaceAllString(name, "-"), "-")
	name = strings.ReplaceAll(name, "_", "-")
	if name == "" {
		name = leaf
	}
	return name, vendor
}
