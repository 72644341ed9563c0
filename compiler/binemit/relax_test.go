package binemit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowlang/low/compiler/ir"
	"github.com/lowlang/low/compiler/isa/rv"
)

// twoEbbFunc is ebb0: brz + pad iadds + jump, ebb1: return.
func twoEbbFunc(t *testing.T, pad int) (f *ir.Function, br ir.Inst) {
	t.Helper()

	f = ir.WithNameSignature(ir.TestcaseName("relax"), ir.NewSignature(ir.Fast))

	ebb0 := f.Dfg.MakeEbb()
	ebb1 := f.Dfg.MakeEbb()

	v := f.Dfg.AppendEbbParam(ebb0, ir.I32)

	f.Layout.AppendEbb(ebb0)
	f.Layout.AppendEbb(ebb1)

	br = f.Dfg.MakeInst(ir.MakeBranch(ir.OpBrz, v, ebb1))
	f.Layout.AppendInst(br, ebb0)

	for i := 0; i < pad; i++ {
		inst := f.Dfg.MakeInst(ir.MakeBinary(ir.OpIadd, ir.I32, v, v))
		f.Layout.AppendInst(inst, ebb0)
	}

	jump := f.Dfg.MakeInst(ir.MakeJump(ebb1))
	f.Layout.AppendInst(jump, ebb0)

	ret := f.Dfg.MakeInst(ir.MakeReturn())
	f.Layout.AppendInst(ret, ebb1)

	return f, br
}

func encodeAll(t *testing.T, f *ir.Function, tisa ir.TargetIsa) {
	t.Helper()

	for _, ebb := range f.Layout.Ebbs() {
		it := f.Layout.EbbInsts(ebb)

		for {
			inst, ok := it.Next()
			if !ok {
				break
			}

			require.NoError(t, f.UpdateEncoding(inst, tisa))
		}
	}
}

func TestRelaxShortBranchStays(t *testing.T) {
	tisa := rv.New()
	f, br := twoEbbFunc(t, 4)

	encodeAll(t, f, tisa)
	short := f.Encodings.Get(br)

	size, err := RelaxBranches(context.Background(), f, tisa)
	require.NoError(t, err)

	// brz(2) + 4*iadd(4) + jump(4) + return(2)
	assert.Equal(t, CodeOffset(24), size)
	assert.Equal(t, short, f.Encodings.Get(br))

	assert.Equal(t, CodeOffset(0), f.Offsets.Get(ir.Ebb(0)))
	assert.Equal(t, CodeOffset(22), f.Offsets.Get(ir.Ebb(1)))
}

func TestRelaxWidensFarBranch(t *testing.T) {
	tisa := rv.New()

	// 100 iadds put ebb1 about 400 bytes out, past the 256-byte reach of
	// the compressed branch.
	f, br := twoEbbFunc(t, 100)

	encodeAll(t, f, tisa)
	short := f.Encodings.Get(br)
	require.Equal(t, CodeOffset(2), tisa.EncInfo().Bytes(short))

	size, err := RelaxBranches(context.Background(), f, tisa)
	require.NoError(t, err)

	wide := f.Encodings.Get(br)
	assert.NotEqual(t, short, wide)
	assert.Equal(t, CodeOffset(4), tisa.EncInfo().Bytes(wide))

	// brz(4) + 100*iadd(4) + jump(4) + return(2)
	assert.Equal(t, CodeOffset(410), size)
	assert.Equal(t, CodeOffset(408), f.Offsets.Get(ir.Ebb(1)))
}

func TestRelaxOffsetsEnableInstOffsets(t *testing.T) {
	tisa := rv.New()
	f, _ := twoEbbFunc(t, 1)

	encodeAll(t, f, tisa)

	assert.Panics(t, func() { f.InstOffsets(ir.Ebb(0), tisa.EncInfo()) })

	_, err := RelaxBranches(context.Background(), f, tisa)
	require.NoError(t, err)

	it := f.InstOffsets(ir.Ebb(1), tisa.EncInfo())

	off, _, size, ok := it.Next()
	require.True(t, ok)

	assert.Equal(t, f.Offsets.Get(ir.Ebb(1)), off)
	assert.Equal(t, CodeOffset(2), size)

	_, _, _, ok = it.Next()
	assert.False(t, ok)
}
