package memdb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rhettc/idascripts/pkg/addrdb"
)

// FindText scans addresses at or after ea in ascending order and returns the
// first one whose attached text matches pattern. Matching is substring and
// case-insensitive unless flags say otherwise; an unparsable regex pattern
// matches nothing.
func (r *DB) FindText(ea uint64, pattern string, flags addrdb.SearchFlag) uint64 {
	match, err := textMatcher(pattern, flags)
	if err != nil {
		return addrdb.BADADDR
	}
	start := ea
	if start < r.base {
		start = r.base
	}
	for cur := start; cur < r.End(); cur++ {
		text, ok := r.text[cur]
		if ok && match(text) {
			return cur
		}
	}
	return addrdb.BADADDR
}

func textMatcher(pattern string, flags addrdb.SearchFlag) (func(string) bool, error) {
	if flags.IsRegex() {
		if !flags.IsCaseSensitive() {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		return re.MatchString, nil
	}
	if flags.IsCaseSensitive() {
		return func(s string) bool { return strings.Contains(s, pattern) }, nil
	}
	lower := strings.ToLower(pattern)
	return func(s string) bool { return strings.Contains(strings.ToLower(s), lower) }, nil
}

// FindBinary scans the raw bytes at or after ea, stopping before last, and
// returns the first address where pattern matches. The pattern is a
// whitespace-separated list of hex byte values; "?" matches any byte.
// A malformed or empty pattern matches nothing.
func (r *DB) FindBinary(ea, last uint64, pattern string) uint64 {
	pat, err := parsePattern(pattern)
	if err != nil || len(pat) == 0 {
		return addrdb.BADADDR
	}
	start := ea
	if start < r.base {
		start = r.base
	}
	end := r.End()
	if last < end {
		end = last
	}
	for cur := start; cur < end; cur++ {
		if r.matchAt(cur, pat) {
			return cur
		}
	}
	return addrdb.BADADDR
}

type patByte struct {
	value byte
	wild  bool
}

func parsePattern(pattern string) ([]patByte, error) {
	var pat []patByte
	for _, tok := range strings.Fields(pattern) {
		if tok == "?" || tok == "??" {
			pat = append(pat, patByte{wild: true})
			continue
		}
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("bad pattern byte %q: %w", tok, err)
		}
		pat = append(pat, patByte{value: byte(v)})
	}
	return pat, nil
}

func (r *DB) matchAt(ea uint64, pat []patByte) bool {
	i, ok := r.index(ea)
	if !ok || i+len(pat) > len(r.data) {
		return false
	}
	for j, p := range pat {
		if !p.wild && r.data[i+j] != p.value {
			return false
		}
	}
	return true
}
