package rv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowlang/low/compiler/ir"
	"github.com/lowlang/low/compiler/isa"
)

func TestEncodeSizes(t *testing.T) {
	a := New()
	f := ir.NewFunction()

	v := ir.Value(0)
	ebb := ir.Ebb(0)

	for _, tc := range []struct {
		name string
		data ir.InstructionData
		size isa.CodeOffset
	}{
		{"iconst small", ir.MakeIconst(ir.I32, 7), 2},
		{"iconst medium", ir.MakeIconst(ir.I32, 1000), 4},
		{"iadd", ir.MakeBinary(ir.OpIadd, ir.I32, v, v), 4},
		{"icmp", ir.MakeBinary(ir.OpIcmp, ir.I32, v, v), 4},
		{"iadd_imm", ir.MakeBinaryImm(ir.OpIaddImm, ir.I32, v, 100), 4},
		{"brz", ir.MakeBranch(ir.OpBrz, v, ebb), 2},
		{"jump", ir.MakeJump(ebb), 4},
		{"return", ir.MakeReturn(), 2},
	} {
		enc, err := a.Encode(f, &tc.data, tc.data.Typ)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.size, a.EncInfo().Bytes(enc), tc.name)

		t.Logf("%-14s %v", tc.name, a.EncInfo().DisplayEnc(enc))
	}
}

func TestEncodeLegalize(t *testing.T) {
	a := New()
	f := ir.NewFunction()

	v := ir.Value(0)

	for _, tc := range []struct {
		name string
		data ir.InstructionData
		want isa.Legalize
	}{
		{"iconst wide type", ir.MakeIconst(ir.I64, 7), isa.Narrow},
		{"iadd wide type", ir.MakeBinary(ir.OpIadd, ir.I64, v, v), isa.Narrow},
		{"iconst huge", ir.MakeIconst(ir.I32, 1 << 20), isa.Expand},
		{"iconst byte type", ir.MakeIconst(ir.I8, 1), isa.Expand},
		{"br_table", ir.MakeBranchTable(v, ir.JumpTable(0)), isa.Expand},
		{"heap_addr", ir.MakeHeapAddr(ir.I32, ir.Heap(0), v, 1), isa.Expand},
		{"global_addr", ir.MakeGlobalAddr(ir.I32, ir.GlobalVar(0)), isa.Expand},
	} {
		_, err := a.Encode(f, &tc.data, tc.data.Typ)

		var lg isa.Legalize
		require.ErrorAs(t, err, &lg, tc.name)
		assert.Equal(t, tc.want, lg, tc.name)
	}
}

func TestWiderBranch(t *testing.T) {
	a := New()
	f := ir.NewFunction()

	data := ir.MakeBranch(ir.OpBrz, ir.Value(0), ir.Ebb(0))

	enc, err := a.Encode(f, &data, data.Typ)
	require.NoError(t, err)

	wider, ok := a.EncInfo().WiderBranch(enc)
	require.True(t, ok)

	assert.Equal(t, isa.CodeOffset(4), a.EncInfo().Bytes(wider))
	assert.Equal(t, enc.Bits(), wider.Bits())

	_, ok = a.EncInfo().WiderBranch(wider)
	assert.False(t, ok)
}
