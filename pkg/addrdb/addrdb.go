package addrdb

// BADADDR is the end-of-space sentinel. Every stepping and search primitive
// returns it when no further matching address exists.
const BADADDR = ^uint64(0)

// SearchFlag modifies text search behavior.
type SearchFlag uint32

const (
	SearchRegex SearchFlag = 1 << iota
	SearchCase
)

func (r SearchFlag) IsRegex() bool         { return r&SearchRegex != 0 }
func (r SearchFlag) IsCaseSensitive() bool { return r&SearchCase != 0 }

// Database is the host analysis database the enumerators delegate to.
// The module never mutates it; implementations are free to be mutated by
// the caller between successive stepping calls.
type Database interface {
	// Flags returns the classification of ea. Addresses outside the
	// database return the zero Flags (unknown).
	Flags(ea uint64) Flags

	// NextHead returns the first head strictly after ea and before last,
	// or BADADDR.
	NextHead(ea, last uint64) uint64
	// NextNotTail returns the first non-tail address strictly after ea,
	// or BADADDR.
	NextNotTail(ea uint64) uint64
	// NextUnknown returns the first undefined byte strictly after ea,
	// or BADADDR.
	NextUnknown(ea uint64) uint64
	// NextCode returns the first code address strictly after ea, or BADADDR.
	NextCode(ea uint64) uint64
	// NextThat returns the first address strictly after ea and before last
	// whose flags satisfy pred, or BADADDR.
	NextThat(ea, last uint64, pred func(Flags) bool) uint64

	// FindText returns the first address at or after ea whose rendered
	// text matches pattern, or BADADDR.
	FindText(ea uint64, pattern string, flags SearchFlag) uint64
	// FindBinary returns the first address at or after ea and before last
	// where the raw bytes match pattern, or BADADDR. The pattern is a
	// sequence of hex byte values; "?" matches any byte.
	FindBinary(ea, last uint64, pattern string) uint64

	// ItemSize returns the size in bytes of the item starting at ea,
	// 1 when ea is not a defined head.
	ItemSize(ea uint64) uint64
	// ElemSize returns the size of one array element of the data item at
	// ea, 1 when ea is not a data head.
	ElemSize(ea uint64) uint64

	// Chunk returns the function chunk containing ea.
	Chunk(ea uint64) (Chunk, bool)
	// NextChunk returns the first chunk starting strictly after ea.
	NextChunk(ea uint64) (Chunk, bool)
	// NextFunc returns the first non-tail chunk starting strictly after ea.
	NextFunc(ea uint64) (Chunk, bool)

	// Selection reports whether a UI range selection is active and, if so,
	// its half-open bounds.
	Selection() (bool, uint64, uint64)
	// Cursor returns the current cursor address.
	Cursor() uint64
}
