package memdb

import (
	"testing"

	"github.com/tj/assert"

	"github.com/rhettc/idascripts/pkg/addrdb"
)

func TestFindText(t *testing.T) {
	r := New(0x1000, 0x100)
	r.SetText(0x1000, "push rbp")
	r.SetText(0x1001, "mov rbp, rsp")
	r.SetText(0x1004, "LDR PC, =0x8000")
	r.SetText(0x1008, "ret")

	cases := map[string]struct {
		ea      uint64
		pattern string
		flags   addrdb.SearchFlag
		want    uint64
	}{
		"Substring":       {ea: 0x1000, pattern: "rbp", want: 0x1000},
		"FromOffset":      {ea: 0x1001, pattern: "rbp", want: 0x1001},
		"CaseInsensitive": {ea: 0x1000, pattern: "ldr pc", want: 0x1004},
		"CaseSensitive":   {ea: 0x1000, pattern: "ldr pc", flags: addrdb.SearchCase, want: addrdb.BADADDR},
		"Regex":           {ea: 0x1000, pattern: "LDR +PC, =", flags: addrdb.SearchRegex, want: 0x1004},
		"RegexNoMatch":    {ea: 0x1000, pattern: "^pop", flags: addrdb.SearchRegex, want: addrdb.BADADDR},
		"BadRegex":        {ea: 0x1000, pattern: "(", flags: addrdb.SearchRegex, want: addrdb.BADADDR},
		"NoMatch":         {ea: 0x1000, pattern: "nop", want: addrdb.BADADDR},
		"Exhausted":       {ea: 0x1009, pattern: "rbp", want: addrdb.BADADDR},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.FindText(tc.ea, tc.pattern, tc.flags))
		})
	}
}

func TestFindBinary(t *testing.T) {
	r := NewFromBytes(0x1000, []byte{
		0x55, 0x48, 0x89, 0xe5, 0x00, 0x00, 0x00, 0xef,
		0x55, 0x48, 0x89, 0xe5,
	})

	cases := map[string]struct {
		ea      uint64
		last    uint64
		pattern string
		want    uint64
	}{
		"Exact":       {ea: 0x1000, last: addrdb.BADADDR, pattern: "55 48 89 e5", want: 0x1000},
		"Second":      {ea: 0x1001, last: addrdb.BADADDR, pattern: "55 48 89 e5", want: 0x1008},
		"Wildcard":    {ea: 0x1000, last: addrdb.BADADDR, pattern: "48 ? e5", want: 0x1001},
		"Wide":        {ea: 0x1000, last: addrdb.BADADDR, pattern: "00 00 00 ef", want: 0x1004},
		"Bounded":     {ea: 0x1001, last: 0x1008, pattern: "55", want: addrdb.BADADDR},
		"Truncated":   {ea: 0x1009, last: addrdb.BADADDR, pattern: "48 89 e5 c3", want: addrdb.BADADDR},
		"Malformed":   {ea: 0x1000, last: addrdb.BADADDR, pattern: "55 xx", want: addrdb.BADADDR},
		"Empty":       {ea: 0x1000, last: addrdb.BADADDR, pattern: "", want: addrdb.BADADDR},
		"OutOfBounds": {ea: 0x2000, last: addrdb.BADADDR, pattern: "55", want: addrdb.BADADDR},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.FindBinary(tc.ea, tc.last, tc.pattern))
		})
	}
}
