package compiler

import (
	"context"
	"strings"
	"testing"

	"github.com/lowlang/low/compiler/ir"
	"github.com/lowlang/low/compiler/isa/rv"
)

func TestSmoke(t *testing.T) {
	sig := ir.NewSignature(ir.Fast)
	sig.AddParam(ir.AbiParam{Type: ir.I32})
	sig.AddReturn(ir.AbiParam{Type: ir.I32})

	f := ir.WithNameSignature(ir.TestcaseName("double"), sig)

	ebb := f.Dfg.MakeEbb()
	v0 := f.Dfg.AppendEbbParam(ebb, ir.I32)
	f.Layout.AppendEbb(ebb)

	add := f.Dfg.MakeInst(ir.MakeBinary(ir.OpIadd, ir.I32, v0, v0))
	f.Layout.AppendInst(add, ebb)

	ret := f.Dfg.MakeInst(ir.MakeReturn(f.Dfg.FirstResult(add)))
	f.Layout.AppendInst(ret, ebb)

	ctx := context.Background()

	obj, err := CompileFunction(ctx, f, rv.New())
	if err != nil {
		t.Errorf("compile func: %v", err)
	}

	t.Logf("result:\n%s", obj)

	if !strings.Contains(string(obj), "[R#00") {
		t.Errorf("no encoding annotations in the output")
	}

	if f.Offsets.IsEmpty() {
		t.Errorf("code layout not computed")
	}
}

func TestCompileUnencodable(t *testing.T) {
	sig := ir.NewSignature(ir.Fast)
	sig.AddParam(ir.AbiParam{Type: ir.I64})

	f := ir.WithNameSignature(ir.TestcaseName("wide"), sig)

	ebb := f.Dfg.MakeEbb()
	v0 := f.Dfg.AppendEbbParam(ebb, ir.I64)
	f.Layout.AppendEbb(ebb)

	add := f.Dfg.MakeInst(ir.MakeBinary(ir.OpIadd, ir.I64, v0, v0))
	f.Layout.AppendInst(add, ebb)

	ret := f.Dfg.MakeInst(ir.MakeReturn(f.Dfg.FirstResult(add)))
	f.Layout.AppendInst(ret, ebb)

	_, err := CompileFunction(context.Background(), f, rv.New())
	if err == nil {
		t.Fatalf("expected a legalize directive")
	}

	t.Logf("directive: %v", err)

	if !strings.Contains(err.Error(), "narrow") {
		t.Errorf("want narrow directive, got: %v", err)
	}
}
