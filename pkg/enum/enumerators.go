package enum

import (
	"iter"

	"github.com/rhettc/idascripts/pkg/addrdb"
)

// Seq is a lazy, forward-only sequence of addresses.
type Seq = iter.Seq[uint64]

// Addrs enumerates every address in the range.
func Addrs(db addrdb.Database, opts ...Option) Seq {
	rng := resolveRange(db, newOptions(opts))
	return func(yield func(uint64) bool) {
		for ea := rng.First; ea < rng.Last; ea++ {
			if !yield(ea) {
				return
			}
		}
	}
}

// Heads enumerates the start addresses of defined items.
func Heads(db addrdb.Database, opts ...Option) Seq {
	rng := resolveRange(db, newOptions(opts))
	return walk(rng,
		func(ea uint64) bool { return db.Flags(ea).IsHead() },
		func(ea uint64) uint64 { return db.NextHead(ea, rng.Last) },
	)
}

// NotTails enumerates heads plus undefined bytes.
func NotTails(db addrdb.Database, opts ...Option) Seq {
	rng := resolveRange(db, newOptions(opts))
	return walk(rng,
		func(ea uint64) bool { return db.Flags(ea).IsNotTail() },
		db.NextNotTail,
	)
}

// Undefs enumerates undefined bytes.
func Undefs(db addrdb.Database, opts ...Option) Seq {
	rng := resolveRange(db, newOptions(opts))
	return walk(rng,
		func(ea uint64) bool { return db.Flags(ea).IsUnknown() },
		db.NextUnknown,
	)
}

// Code enumerates code addresses.
func Code(db addrdb.Database, opts ...Option) Seq {
	rng := resolveRange(db, newOptions(opts))
	return walk(rng,
		func(ea uint64) bool { return db.Flags(ea).IsCode() },
		db.NextCode,
	)
}

// BytesThat enumerates the addresses whose flags satisfy the predicate
// supplied with That. Fails with ErrMissingPredicate when none was given.
func BytesThat(db addrdb.Database, opts ...Option) (Seq, error) {
	o := newOptions(opts)
	if o.pred == nil {
		return nil, ErrMissingPredicate
	}
	rng := resolveRange(db, o)
	return walk(rng,
		func(ea uint64) bool { return o.pred(db.Flags(ea)) },
		func(ea uint64) uint64 { return db.NextThat(ea, rng.Last, o.pred) },
	), nil
}

// walk seeds the cursor at the start of the range and repeatedly applies a
// stepping primitive. The first position is tested explicitly since the
// stepping primitives skip the position they start from.
func walk(rng addrdb.Range, test func(uint64) bool, step func(uint64) uint64) Seq {
	return func(yield func(uint64) bool) {
		ea := rng.First
		if ea < rng.Last && !test(ea) {
			ea = step(ea)
		}
		for ea != addrdb.BADADDR && ea < rng.Last {
			if !yield(ea) {
				return
			}
			ea = step(ea)
		}
	}
}

// Texts enumerates text search matches for the pattern supplied with Match,
// honoring the modifiers supplied with Search. Fails with ErrMissingPattern
// when no pattern was given.
//
// Example: rename every matching function start.
//
//	seq, err := enum.Texts(db, enum.Within(first, addrdb.BADADDR),
//		enum.Match("LDR *PC, ="), enum.Search(addrdb.SearchRegex))
//	if err != nil {
//		return err
//	}
//	for ea := range seq {
//		// inspect or rename the item at ea
//	}
func Texts(db addrdb.Database, opts ...Option) (Seq, error) {
	o := newOptions(opts)
	if o.pattern == nil {
		return nil, ErrMissingPattern
	}
	rng := resolveRange(db, o)
	pattern, flags := *o.pattern, o.search
	return func(yield func(uint64) bool) {
		ea := db.FindText(rng.First, pattern, flags)
		for ea != addrdb.BADADDR && ea < rng.Last {
			if !yield(ea) {
				return
			}
			ea = db.FindText(db.NextHead(ea, rng.Last), pattern, flags)
		}
	}, nil
}

// Binaries enumerates binary search matches for the byte pattern supplied
// with Match, e.g. "00 00 00 ef". Fails with ErrMissingPattern when no
// pattern was given.
func Binaries(db addrdb.Database, opts ...Option) (Seq, error) {
	o := newOptions(opts)
	if o.pattern == nil {
		return nil, ErrMissingPattern
	}
	rng := resolveRange(db, o)
	pattern := *o.pattern
	return func(yield func(uint64) bool) {
		ea := db.FindBinary(rng.First, rng.Last, pattern)
		for ea != addrdb.BADADDR && ea < rng.Last {
			if !yield(ea) {
				return
			}
			ea = db.FindBinary(ea+1, rng.Last, pattern)
		}
	}, nil
}

// ArrayItems enumerates the elements of the array item at the start
// address: base, base+elem, ... for itemsize/elemsize elements. The start
// is the explicit range or bound when given, the cursor otherwise.
func ArrayItems(db addrdb.Database, opts ...Option) Seq {
	ea := resolveStart(db, newOptions(opts))
	return func(yield func(uint64) bool) {
		size := db.ItemSize(ea)
		elem := db.ElemSize(ea)
		if elem == 0 {
			return
		}
		for i := uint64(0); i < size/elem; i++ {
			if !yield(ea + i*elem) {
				return
			}
		}
	}
}

// NonFuncs enumerates code addresses not owned by any function chunk.
func NonFuncs(db addrdb.Database, opts ...Option) Seq {
	rng := resolveRange(db, newOptions(opts))
	return func(yield func(uint64) bool) {
		ea := rng.First
		for ea != addrdb.BADADDR && ea < rng.Last {
			nextcode := db.NextCode(ea)
			thischunk, inChunk := db.Chunk(ea)
			nextchunk, more := db.NextChunk(ea)
			switch {
			case inChunk:
				ea = thischunk.End
			case db.Flags(ea).IsCode():
				if !yield(ea) {
					return
				}
				ea = db.NextHead(ea, rng.Last)
			case !more:
				return
			case nextcode < nextchunk.Start:
				ea = nextcode
			default:
				ea = nextchunk.End
			}
		}
	}
}

// Funcs enumerates function start addresses. Tail chunks are skipped, so a
// function with several chunks is reported once, at its head chunk.
func Funcs(db addrdb.Database, opts ...Option) Seq {
	rng := resolveRange(db, newOptions(opts))
	return func(yield func(uint64) bool) {
		chunk, ok := db.Chunk(rng.First)
		if !ok {
			chunk, ok = db.NextChunk(rng.First)
		}
		for ok && chunk.Start < rng.Last && chunk.Tail {
			chunk, ok = db.NextChunk(chunk.Start)
		}
		for ok && chunk.Start < rng.Last {
			if !yield(chunk.Start) {
				return
			}
			chunk, ok = db.NextFunc(chunk.Start)
		}
	}
}

// FChunks enumerates the start addresses of all function chunks in the
// range, tail chunks included.
func FChunks(db addrdb.Database, opts ...Option) Seq {
	rng := resolveRange(db, newOptions(opts))
	return func(yield func(uint64) bool) {
		chunk, ok := db.Chunk(rng.First)
		if !ok {
			chunk, ok = db.NextChunk(rng.First)
		}
		for ok && chunk.Start < rng.Last {
			if !yield(chunk.Start) {
				return
			}
			chunk, ok = db.NextChunk(chunk.Start)
		}
	}
}
