package memdb

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"
)

// LoadX86 classifies a run of 64-bit x86 instructions starting at ea: each
// decoded instruction becomes a code item and its Intel-syntax rendering is
// attached as text. Decoding stops at the first undecodable byte or at the
// end of the database, leaving the rest undefined.
//
// Returns the address past the last decoded instruction.
func (r *DB) LoadX86(ea uint64) (uint64, error) {
	i, ok := r.index(ea)
	if !ok {
		return ea, fmt.Errorf("address %#x outside database %s", ea, r.Bounds())
	}
	cur := ea
	for i < len(r.data) {
		inst, err := x86asm.Decode(r.data[i:], 64)
		if err != nil {
			break
		}
		if err := r.MarkCode(cur, uint64(inst.Len)); err != nil {
			return cur, err
		}
		r.SetText(cur, x86asm.IntelSyntax(inst, cur, nil))
		i += inst.Len
		cur += uint64(inst.Len)
	}
	return cur, nil
}
