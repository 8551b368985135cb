// Package hostname classifies node names against the production host naming
// scheme "p-<data center>-<function><serial>", e.g. "P-fra-sysk001".
//
// Classification is a prefix match: anything after the serial digits is
// ignored, so fully qualified names like "p-fra-sysk001.example.com" still
// classify. Names outside the scheme are reported as unclassified and are
// handled separately by the diagram builder.
package hostname

import "regexp"

// Parts are the components of a classified hostname. Matching is
// case-insensitive but the captured text keeps its original case.
type Parts struct {
	DataCenter string
	Function   string
	Serial     string
}

// pattern is anchored at the start only so trailing characters after the
// serial are ignored.
var pattern = regexp.MustCompile(`(?i)^p-([a-z]+)-([a-z]+)([0-9]+)`)

// Classify decomposes name into data center code, function code and serial.
// It reports false for names that do not start with the naming scheme.
func Classify(name string) (Parts, bool) {
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return Parts{}, false
	}
	return Parts{DataCenter: m[1], Function: m[2], Serial: m[3]}, true
}
