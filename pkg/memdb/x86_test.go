package memdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadX86(t *testing.T) {
	// push rbp; mov rbp, rsp; ret; then a truncated 0x0f opcode
	r := NewFromBytes(0x1000, []byte{0x55, 0x48, 0x89, 0xe5, 0xc3, 0x0f})

	end, err := r.LoadX86(0x1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1005), end)

	for _, ea := range []uint64{0x1000, 0x1001, 0x1004} {
		assert.True(t, r.Flags(ea).IsCode(), "expected code head at %#x", ea)
	}
	assert.True(t, r.Flags(0x1002).IsTail())
	assert.True(t, r.Flags(0x1005).IsUnknown(), "undecodable byte stays undefined")

	assert.Equal(t, uint64(3), r.ItemSize(0x1001))
	assert.True(t, strings.Contains(strings.ToLower(r.Text(0x1000)), "push"))
	assert.True(t, strings.Contains(strings.ToLower(r.Text(0x1001)), "mov"))

	_, err = r.LoadX86(0x2000)
	assert.Error(t, err)
}
