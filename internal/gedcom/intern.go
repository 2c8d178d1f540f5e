package gedcom

import "sort"

// Interner deduplicates xref ids, which are written once at definition and
// read many times as references. In replacement mode it additionally rewrites
// every raw id to a freshly generated one; the raw spelling is discarded at
// the end of the session but each raw id maps to the same replacement no
// matter how often or in what order it is looked up.
type Interner struct {
	ids      []string // sorted distinct raw ids
	replaced []string // parallel to ids; only populated in replacement mode
	replace  bool
	generate func(prefix string) string
}

// defaultXRefPrefix seeds generated ids for raw ids with no leading letters.
const defaultXRefPrefix = "X"

// NewInterner creates an Interner. When replace is true, generate must
// produce a fresh id for a given alphabetic prefix; the Database's xref
// counter serves that role in a session.
func NewInterner(replace bool, generate func(prefix string) string) *Interner {
	return &Interner{replace: replace, generate: generate}
}

// Intern returns the canonical id for raw. The lookup is an ordered binary
// search over the distinct ids seen so far; a miss inserts at the sorted
// position. Idempotent and order-independent.
func (in *Interner) Intern(raw string) string {
	i := sort.SearchStrings(in.ids, raw)
	if i < len(in.ids) && in.ids[i] == raw {
		if in.replace {
			return in.replaced[i]
		}
		return in.ids[i]
	}

	in.ids = append(in.ids, "")
	copy(in.ids[i+1:], in.ids[i:])
	in.ids[i] = raw

	if !in.replace {
		return raw
	}
	gen := in.generate(replacementPrefix(raw))
	in.replaced = append(in.replaced, "")
	copy(in.replaced[i+1:], in.replaced[i:])
	in.replaced[i] = gen
	return gen
}

// Len returns the number of distinct raw ids interned so far.
func (in *Interner) Len() int {
	return len(in.ids)
}

// replacementPrefix extracts the leading alphabetic run of a raw id,
// ignoring the '@' delimiters, e.g. "@IND42@" -> "IND". Ids with no leading
// letters fall back to the fixed default prefix.
func replacementPrefix(raw string) string {
	s := raw
	if len(s) > 0 && s[0] == '@' {
		s = s[1:]
	}
	end := 0
	for end < len(s) && (s[end] >= 'A' && s[end] <= 'Z' || s[end] >= 'a' && s[end] <= 'z') {
		end++
	}
	if end == 0 {
		return defaultXRefPrefix
	}
	return s[:end]
}
