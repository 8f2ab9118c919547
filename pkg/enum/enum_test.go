package enum

import (
	"errors"
	"testing"

	"github.com/tj/assert"

	"github.com/rhettc/idascripts/pkg/addrdb"
	"github.com/rhettc/idascripts/pkg/memdb"
)

func TestResolveRange(t *testing.T) {
	cases := map[string]struct {
		selection *[2]uint64
		cursor    uint64
		opts      []Option
		want      addrdb.Range
	}{
		"ExplicitRange": {
			opts: []Option{In(addrdb.Range{First: 0x1000, Last: 0x2000})},
			want: addrdb.Range{First: 0x1000, Last: 0x2000},
		},
		"ExplicitRangeWins": {
			selection: &[2]uint64{0x5000, 0x6000},
			opts: []Option{
				Within(0x3000, 0x4000),
				In(addrdb.Range{First: 0x1000, Last: 0x2000}),
				Match("irrelevant"),
			},
			want: addrdb.Range{First: 0x1000, Last: 0x2000},
		},
		"Chunk": {
			opts: []Option{InChunk(addrdb.Chunk{Start: 0x1000, End: 0x1800})},
			want: addrdb.Range{First: 0x1000, Last: 0x1800},
		},
		"FirstOnly": {
			opts: []Option{From(0x1000)},
			want: addrdb.Range{First: 0x1000, Last: addrdb.BADADDR},
		},
		"FirstOnlyIgnoresSelection": {
			selection: &[2]uint64{0x5000, 0x6000},
			opts:      []Option{From(0x1000)},
			want:      addrdb.Range{First: 0x1000, Last: addrdb.BADADDR},
		},
		"BothBounds": {
			opts: []Option{Within(0x1000, 0x2000)},
			want: addrdb.Range{First: 0x1000, Last: 0x2000},
		},
		"NoArgsNoSelection": {
			cursor: 0x1234,
			want:   addrdb.Range{First: 0x1234, Last: addrdb.BADADDR},
		},
		"NoArgsSelection": {
			selection: &[2]uint64{0x5000, 0x6000},
			cursor:    0x1234,
			want:      addrdb.Range{First: 0x5000, Last: 0x6000},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := memdb.New(0, 0x10000)
			db.SetCursor(tc.cursor)
			if tc.selection != nil {
				db.Select(tc.selection[0], tc.selection[1])
			}
			got := resolveRange(db, newOptions(tc.opts))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveStart(t *testing.T) {
	db := memdb.New(0, 0x10000)
	db.SetCursor(0x1234)
	db.Select(0x5000, 0x6000)

	// the selection is never consulted for a single start address
	assert.Equal(t, uint64(0x1234), resolveStart(db, newOptions(nil)))
	assert.Equal(t, uint64(0x2000), resolveStart(db, newOptions([]Option{From(0x2000)})))
	assert.Equal(t, uint64(0x3000), resolveStart(db, newOptions([]Option{
		In(addrdb.Range{First: 0x3000, Last: 0x4000}),
	})))
}

func TestMissingArgument(t *testing.T) {
	db := memdb.New(0x1000, 0x100)

	cases := map[string]struct {
		build func() (Seq, error)
		want  error
	}{
		"TextsNoPattern": {
			build: func() (Seq, error) { return Texts(db, From(0x1000)) },
			want:  ErrMissingPattern,
		},
		"BinariesNoPattern": {
			build: func() (Seq, error) { return Binaries(db, From(0x1000)) },
			want:  ErrMissingPattern,
		},
		"BytesThatNoPredicate": {
			build: func() (Seq, error) { return BytesThat(db, From(0x1000)) },
			want:  ErrMissingPredicate,
		},
		// a predicate does not satisfy the pattern slot and vice versa
		"TextsPredicateOnly": {
			build: func() (Seq, error) {
				return Texts(db, From(0x1000), That(addrdb.Flags.IsCode))
			},
			want: ErrMissingPattern,
		},
		"BytesThatPatternOnly": {
			build: func() (Seq, error) {
				return BytesThat(db, From(0x1000), Match("55"))
			},
			want: ErrMissingPredicate,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			seq, err := tc.build()
			assert.Nil(t, seq, "no partial sequence on setup failure")
			assert.True(t, errors.Is(err, tc.want))
			assert.True(t, errors.Is(err, ErrMissingArgument))
		})
	}
}
