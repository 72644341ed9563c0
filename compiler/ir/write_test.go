package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowlang/low/compiler/ir"
	"github.com/lowlang/low/compiler/isa"
)

func TestWriteFunction(t *testing.T) {
	f, _ := sampleFunc(t)

	gv := f.CreateGlobalVar(ir.VMContextGlobal(16))
	f.SetStackLimit(gv)
	f.CreateStackSlot(ir.StackSlotData{Kind: ir.ExplicitSlot, Size: 8})
	f.CreateJumpTable(ir.JumpTableOf(ir.Ebb(0)))

	got := f.String()
	t.Logf("function:\n%s", got)

	assert.Contains(t, got, "function %sample(i32) -> i32 {\n")
	assert.Contains(t, got, "    ss0 = explicit_slot 8\n")
	assert.Contains(t, got, "    gv0 = vmctx+16\n")
	assert.Contains(t, got, "    stack_limit = gv0\n")
	assert.Contains(t, got, "    jt0 = jump_table ebb0\n")
	assert.Contains(t, got, "ebb0(v0: i32):\n")
	assert.Contains(t, got, "v1 = iconst.i32 7\n")
	assert.Contains(t, got, "v2 = iadd.i32 v0, v1\n")
	assert.Contains(t, got, "return v2\n")
}

func TestWriteFunctionWithIsa(t *testing.T) {
	f, insts := sampleFunc(t)
	tisa := newTestIsa()

	require.NoError(t, f.UpdateEncoding(insts[0], tisa))
	f.Encodings.Set(insts[1], isa.NewEncoding(2, 0x3a))

	got := f.Display(tisa).String()
	t.Logf("function:\n%s", got)

	assert.Contains(t, got, "[short#00 ]")
	assert.Contains(t, got, "[long#3a  ]")
	assert.Contains(t, got, "[-        ]")
}

func TestDisplayInst(t *testing.T) {
	f := ir.NewFunction()

	ebb0 := f.Dfg.MakeEbb()
	ebb1 := f.Dfg.MakeEbb()
	v0 := f.Dfg.AppendEbbParam(ebb0, ir.I32)

	jt := f.CreateJumpTable(ir.JumpTableOf(ebb0, ebb1))
	ss := f.CreateStackSlot(ir.StackSlotData{Kind: ir.ExplicitSlot, Size: 8})

	sig := f.ImportSignature(sampleSignature())
	fn := f.ImportFunction(ir.ExtFuncData{Name: ir.TestcaseName("callee"), Signature: sig})

	for _, tc := range []struct {
		data ir.InstructionData
		want string
	}{
		{ir.MakeIconst(ir.I32, -3), "v1 = iconst.i32 -3"},
		{ir.MakeBinaryImm(ir.OpIaddImm, ir.I32, v0, 40), "v2 = iadd_imm.i32 v0, 40"},
		{ir.MakeJump(ebb1), "jump ebb1"},
		{ir.MakeBranch(ir.OpBrnz, v0, ebb1), "brnz v0, ebb1"},
		{ir.MakeBranchTable(v0, jt), "br_table v0, jt0"},
		{ir.MakeCall(fn, v0), "v3 = call fn0(v0)"},
		{ir.MakeStackLoad(ir.I32, ss, 4), "v4 = stack_load.i32 ss0, 4"},
		{ir.MakeStackStore(v0, ss, 4), "stack_store v0, ss0, 4"},
		{ir.MakeReturn(v0), "return v0"},
	} {
		inst := f.Dfg.MakeInst(tc.data)

		assert.Equal(t, tc.want, f.Dfg.DisplayInst(inst, nil))
	}
}
