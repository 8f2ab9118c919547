package addrdb

// Flags classifies a single address. At most one of the class bits is set:
// a byte is a code head, a data head, a tail byte of a defined item, or
// undefined (zero Flags).
type Flags uint32

const (
	FlagCode Flags = 1 << iota
	FlagData
	FlagTail
)

func (r Flags) IsCode() bool { return r&FlagCode != 0 }
func (r Flags) IsData() bool { return r&FlagData != 0 }
func (r Flags) IsTail() bool { return r&FlagTail != 0 }

// IsUnknown reports whether the byte has not been classified as part of
// any defined item.
func (r Flags) IsUnknown() bool { return r&(FlagCode|FlagData|FlagTail) == 0 }

// IsHead reports whether the byte starts a defined item.
func (r Flags) IsHead() bool { return r&(FlagCode|FlagData) != 0 }

// IsNotTail reports whether the byte is a head or undefined.
func (r Flags) IsNotTail() bool { return !r.IsTail() }

func (r Flags) String() string {
	switch {
	case r.IsCode():
		return "code"
	case r.IsData():
		return "data"
	case r.IsTail():
		return "tail"
	default:
		return "unknown"
	}
}
