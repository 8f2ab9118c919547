// Package enum provides lazy enumeration over addresses in a program
// database that satisfy a structural condition:
//
//   - Addrs      - every address in a range
//   - Heads      - defined item starts
//   - NotTails   - heads plus undefined bytes
//   - Undefs     - undefined bytes
//   - Code       - code addresses
//   - BytesThat  - addresses whose flags satisfy a predicate
//   - Texts      - text search matches
//   - Binaries   - binary pattern matches
//   - ArrayItems - elements of one array item
//   - NonFuncs   - code not owned by any function
//   - Funcs      - function starts
//   - FChunks    - function chunk starts
//
// The range an enumerator operates on can be given in several ways:
//
//   - In(rng) or InChunk(chunk): an explicit range
//   - Within(first, last): explicit bounds
//   - From(first): from first until the end of the address space
//   - no range option: the active selection when there is one, otherwise
//     from the cursor until the end of the address space
//
// An explicit range always wins over bare bounds. Every sequence is
// forward-only and pull-based: nothing is read from the database until the
// caller asks for the next address, so the classification state may change
// between steps (for instance when the consuming loop defines items).
package enum

import (
	"errors"
	"fmt"

	"github.com/rhettc/idascripts/pkg/addrdb"
)

var (
	// ErrMissingArgument is the base error for a required option that was
	// not supplied.
	ErrMissingArgument = errors.New("missing argument")

	ErrMissingPattern   = fmt.Errorf("%w: search pattern", ErrMissingArgument)
	ErrMissingPredicate = fmt.Errorf("%w: flag predicate", ErrMissingArgument)
)

type options struct {
	rng     *addrdb.Range
	first   *uint64
	last    *uint64
	pattern *string
	pred    func(addrdb.Flags) bool
	search  addrdb.SearchFlag
}

type Option func(*options)

// In restricts the enumeration to an explicit range.
func In(rng addrdb.Range) Option {
	return func(o *options) { o.rng = &rng }
}

// InChunk restricts the enumeration to the bounds of a function chunk, as
// returned by the database's chunk traversal.
func InChunk(c addrdb.Chunk) Option {
	return In(c.Bounds())
}

// From starts the enumeration at first and runs until the end of the
// address space.
func From(first uint64) Option {
	return func(o *options) { o.first = &first }
}

// Within restricts the enumeration to [first, last).
func Within(first, last uint64) Option {
	return func(o *options) {
		o.first = &first
		o.last = &last
	}
}

// Match supplies the search pattern for Texts and Binaries.
func Match(pattern string) Option {
	return func(o *options) { o.pattern = &pattern }
}

// That supplies the flag predicate for BytesThat.
func That(pred func(addrdb.Flags) bool) Option {
	return func(o *options) { o.pred = pred }
}

// Search supplies text search modifiers for Texts.
func Search(flags addrdb.SearchFlag) Option {
	return func(o *options) { o.search |= flags }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// resolveRange determines the address range an enumerator operates on, in
// priority order: explicit range, explicit bounds, the active selection,
// and finally from the cursor until the end of the space.
func resolveRange(db addrdb.Database, o options) addrdb.Range {
	if o.rng != nil {
		return *o.rng
	}
	if o.first == nil {
		if active, first, last := db.Selection(); active {
			return addrdb.Range{First: first, Last: last}
		}
		return addrdb.RangeTo(db.Cursor())
	}
	if o.last == nil {
		return addrdb.RangeTo(*o.first)
	}
	return addrdb.Range{First: *o.first, Last: *o.last}
}

// resolveStart determines a single start address: the start of an explicit
// range or bound when given, the cursor otherwise. The selection is
// deliberately not consulted.
func resolveStart(db addrdb.Database, o options) uint64 {
	if o.rng != nil {
		return o.rng.First
	}
	if o.first != nil {
		return *o.first
	}
	return db.Cursor()
}
