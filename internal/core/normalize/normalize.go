// Package normalize provides a deterministic name folder used by the classifier
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition (also folds width and ligatures)
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Collapse separator runs (space tab - _ . / :) to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Folder is concurrency safe when used with the pool below
type Folder struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		// decomposition must run before mark removal so composed
		// diacritics like é lose their accent too
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
		)
	},
}

// New constructs a Folder
func New() *Folder { return &Folder{} }

// Fold returns the folded form of a name following the pipeline described above
func (f *Folder) Fold(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-4 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 5 collapse separators and trim
	ns = collapseSeparators(ns)

	return ns
}

// Fold is a package level convenience over a shared Folder
func Fold(s string) string { return defaultFolder.Fold(s) }

var defaultFolder = New()

// isSeparator reports whether r splits name segments
// endpoint and model names mix hyphens underscores dots and slashes freely
func isSeparator(r rune) bool {
	switch r {
	case '-', '_', '.', '/', ':':
		return true
	}
	return unicode.IsSpace(r)
}

// collapseSeparators converts separator runs to a single ASCII space and trims edges
func collapseSeparators(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inSep := false
	for _, r := range s {
		if isSeparator(r) {
			inSep = true
			continue
		}
		if inSep && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSep = false
		b.WriteRune(r)
	}
	return b.String()
}
