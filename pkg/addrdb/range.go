package addrdb

import "fmt"

// Range is a half-open interval [First, Last) over the address space.
// Last may be BADADDR, meaning "until the end of the space".
type Range struct {
	First uint64
	Last  uint64
}

// RangeTo returns the range [first, BADADDR).
func RangeTo(first uint64) Range {
	return Range{First: first, Last: BADADDR}
}

// Empty reports whether the range contains no addresses. A malformed range
// (First > Last) is empty as well.
func (r Range) Empty() bool { return r.First >= r.Last }

// Contains reports whether ea lies inside the range.
func (r Range) Contains(ea uint64) bool { return r.First <= ea && ea < r.Last }

// Bounded reports whether the range has an explicit upper bound.
func (r Range) Bounded() bool { return r.Last != BADADDR }

// Len returns the number of addresses in the range, 0 when empty.
func (r Range) Len() uint64 {
	if r.Empty() {
		return 0
	}
	return r.Last - r.First
}

func (r Range) String() string {
	if !r.Bounded() {
		return fmt.Sprintf("[%#x, end)", r.First)
	}
	return fmt.Sprintf("[%#x, %#x)", r.First, r.Last)
}

// Chunk is one contiguous address range owned by a function. A function may
// own several chunks; Tail marks the ones that are not the head chunk.
type Chunk struct {
	Start uint64
	End   uint64
	Tail  bool
}

// Bounds returns the chunk's address range.
func (r Chunk) Bounds() Range { return Range{First: r.Start, Last: r.End} }

// Contains reports whether ea lies inside the chunk.
func (r Chunk) Contains(ea uint64) bool { return r.Start <= ea && ea < r.End }
