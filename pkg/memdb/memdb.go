package memdb

import (
	"fmt"
	"sort"

	"github.com/rhettc/idascripts/pkg/addrdb"
)

// DB is an in-memory program database implementing addrdb.Database. It
// covers one contiguous address range [base, base+len) and keeps a raw byte
// buffer with a parallel classification array. It is the reference host
// implementation and the fake the enumerator tests run against.
//
// DB is not safe for concurrent use.
type DB struct {
	base  uint64
	data  []byte
	flags []addrdb.Flags
	elem  map[uint64]uint64
	text  map[uint64]string

	chunks []addrdb.Chunk
	segs   *segments

	cursor    uint64
	selActive bool
	selFirst  uint64
	selLast   uint64
}

var _ addrdb.Database = &DB{}

// New creates an empty database of size undefined bytes based at base.
func New(base uint64, size int) *DB {
	return NewFromBytes(base, make([]byte, size))
}

// NewFromBytes creates a database over a copy of data based at base. All
// bytes start out undefined.
func NewFromBytes(base uint64, data []byte) *DB {
	d := make([]byte, len(data))
	copy(d, data)
	return &DB{
		base:   base,
		data:   d,
		flags:  make([]addrdb.Flags, len(data)),
		elem:   map[uint64]uint64{},
		text:   map[uint64]string{},
		segs:   newSegments(),
		cursor: base,
	}
}

// Base returns the lowest address in the database.
func (r *DB) Base() uint64 { return r.base }

// End returns the first address past the database.
func (r *DB) End() uint64 { return r.base + uint64(len(r.data)) }

// Bounds returns the full address range of the database.
func (r *DB) Bounds() addrdb.Range { return addrdb.Range{First: r.base, Last: r.End()} }

func (r *DB) index(ea uint64) (int, bool) {
	if ea < r.base || ea >= r.End() {
		return 0, false
	}
	return int(ea - r.base), true
}

func (r *DB) Flags(ea uint64) addrdb.Flags {
	i, ok := r.index(ea)
	if !ok {
		return 0
	}
	return r.flags[i]
}

// Byte returns the raw byte at ea.
func (r *DB) Byte(ea uint64) (byte, error) {
	i, ok := r.index(ea)
	if !ok {
		return 0, fmt.Errorf("address %#x outside database %s", ea, r.Bounds())
	}
	return r.data[i], nil
}

// MarkCode defines a code item of size bytes at ea. Every byte of the item
// must currently be undefined.
func (r *DB) MarkCode(ea, size uint64) error {
	return r.define(ea, size, addrdb.FlagCode)
}

// MarkData defines a data item of itemLen bytes at ea, made of elements of
// elemLen bytes each. Every byte of the item must currently be undefined.
func (r *DB) MarkData(ea, itemLen, elemLen uint64) error {
	if elemLen == 0 || itemLen%elemLen != 0 {
		return fmt.Errorf("item size %d is not a multiple of element size %d", itemLen, elemLen)
	}
	if err := r.define(ea, itemLen, addrdb.FlagData); err != nil {
		return err
	}
	r.elem[ea] = elemLen
	return nil
}

func (r *DB) define(ea, size uint64, head addrdb.Flags) error {
	if size == 0 {
		return fmt.Errorf("zero-sized item at %#x", ea)
	}
	first, ok := r.index(ea)
	if !ok {
		return fmt.Errorf("address %#x outside database %s", ea, r.Bounds())
	}
	if _, ok := r.index(ea + size - 1); !ok {
		return fmt.Errorf("item [%#x, %#x) extends past database %s", ea, ea+size, r.Bounds())
	}
	for i := first; i < first+int(size); i++ {
		if !r.flags[i].IsUnknown() {
			return fmt.Errorf("byte %#x already defined as %s", r.base+uint64(i), r.flags[i])
		}
	}
	r.flags[first] = head
	for i := first + 1; i < first+int(size); i++ {
		r.flags[i] = addrdb.FlagTail
	}
	return nil
}

// Undefine clears the classification of size bytes starting at ea.
func (r *DB) Undefine(ea, size uint64) error {
	first, ok := r.index(ea)
	if !ok {
		return fmt.Errorf("address %#x outside database %s", ea, r.Bounds())
	}
	for i := first; i < len(r.flags) && i < first+int(size); i++ {
		r.flags[i] = 0
		delete(r.elem, r.base+uint64(i))
		delete(r.text, r.base+uint64(i))
	}
	return nil
}

// SetText attaches rendered text to ea, making it visible to FindText.
func (r *DB) SetText(ea uint64, text string) {
	r.text[ea] = text
}

// Text returns the rendered text attached to ea.
func (r *DB) Text(ea uint64) string { return r.text[ea] }

func (r *DB) ItemSize(ea uint64) uint64 {
	i, ok := r.index(ea)
	if !ok || !r.flags[i].IsHead() {
		return 1
	}
	n := 1
	for i+n < len(r.flags) && r.flags[i+n].IsTail() {
		n++
	}
	return uint64(n)
}

func (r *DB) ElemSize(ea uint64) uint64 {
	if s, ok := r.elem[ea]; ok {
		return s
	}
	return 1
}

func (r *DB) NextHead(ea, last uint64) uint64 {
	return r.nextThat(ea, last, addrdb.Flags.IsHead)
}

func (r *DB) NextNotTail(ea uint64) uint64 {
	return r.nextThat(ea, addrdb.BADADDR, addrdb.Flags.IsNotTail)
}

func (r *DB) NextUnknown(ea uint64) uint64 {
	return r.nextThat(ea, addrdb.BADADDR, addrdb.Flags.IsUnknown)
}

func (r *DB) NextCode(ea uint64) uint64 {
	return r.nextThat(ea, addrdb.BADADDR, addrdb.Flags.IsCode)
}

func (r *DB) NextThat(ea, last uint64, pred func(addrdb.Flags) bool) uint64 {
	return r.nextThat(ea, last, pred)
}

// nextThat scans strictly after ea, stopping at last or at the end of the
// database, whichever comes first.
func (r *DB) nextThat(ea, last uint64, pred func(addrdb.Flags) bool) uint64 {
	if ea == addrdb.BADADDR {
		return addrdb.BADADDR
	}
	start := ea + 1
	if start < r.base {
		start = r.base
	}
	end := r.End()
	if last < end {
		end = last
	}
	for cur := start; cur < end; cur++ {
		if pred(r.flags[cur-r.base]) {
			return cur
		}
	}
	return addrdb.BADADDR
}

// AddChunk registers a function chunk [start, end). Chunks must not overlap.
func (r *DB) AddChunk(start, end uint64, tail bool) error {
	if start >= end {
		return fmt.Errorf("invalid chunk bounds [%#x, %#x)", start, end)
	}
	for _, c := range r.chunks {
		if start < c.End && c.Start < end {
			return fmt.Errorf("chunk [%#x, %#x) overlaps existing [%#x, %#x)", start, end, c.Start, c.End)
		}
	}
	r.chunks = append(r.chunks, addrdb.Chunk{Start: start, End: end, Tail: tail})
	sort.Slice(r.chunks, func(i, j int) bool {
		return r.chunks[i].Start < r.chunks[j].Start
	})
	return nil
}

func (r *DB) Chunk(ea uint64) (addrdb.Chunk, bool) {
	i := sort.Search(len(r.chunks), func(i int) bool {
		return ea < r.chunks[i].End
	})
	if i < len(r.chunks) && r.chunks[i].Contains(ea) {
		return r.chunks[i], true
	}
	return addrdb.Chunk{}, false
}

func (r *DB) NextChunk(ea uint64) (addrdb.Chunk, bool) {
	i := sort.Search(len(r.chunks), func(i int) bool {
		return r.chunks[i].Start > ea
	})
	if i < len(r.chunks) {
		return r.chunks[i], true
	}
	return addrdb.Chunk{}, false
}

func (r *DB) NextFunc(ea uint64) (addrdb.Chunk, bool) {
	for c, ok := r.NextChunk(ea); ok; c, ok = r.NextChunk(c.Start) {
		if !c.Tail {
			return c, true
		}
	}
	return addrdb.Chunk{}, false
}

// Segments returns the database's segment table.
func (r *DB) Segments() Segments { return r.segs }

// SetCursor moves the cursor address.
func (r *DB) SetCursor(ea uint64) { r.cursor = ea }

func (r *DB) Cursor() uint64 { return r.cursor }

// Select activates a UI range selection [first, last).
func (r *DB) Select(first, last uint64) {
	r.selActive = true
	r.selFirst = first
	r.selLast = last
}

// ClearSelection deactivates the selection.
func (r *DB) ClearSelection() { r.selActive = false }

func (r *DB) Selection() (bool, uint64, uint64) {
	if !r.selActive {
		return false, 0, 0
	}
	return true, r.selFirst, r.selLast
}
