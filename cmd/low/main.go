package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/lowlang/low/compiler/binemit"
	"github.com/lowlang/low/compiler/diag"
	"github.com/lowlang/low/compiler/ir"
	"github.com/lowlang/low/compiler/isa/rv"
	"github.com/lowlang/low/compiler/verifier"
)

func main() {
	demoCmd := &cli.Command{
		Name:        "demo",
		Description: "build a sample function, encode it and print the code layout",
		Action:      demoAct,
	}

	app := &cli.Command{
		Name:        "low",
		Description: "low is a tool for poking at the low code generator",
		Commands: []*cli.Command{
			demoCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func demoAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	f := buildDemo()

	err = verifier.Verify(f)
	if err != nil {
		return errors.New("verify:\n%s", diag.PrettyError(f, nil, err))
	}

	tisa := rv.New()

	for _, ebb := range f.Layout.Ebbs() {
		it := f.Layout.EbbInsts(ebb)

		for {
			inst, ok := it.Next()
			if !ok {
				break
			}

			err = f.UpdateEncoding(inst, tisa)
			if err != nil {
				return errors.Wrap(err, "encode %v", inst)
			}
		}
	}

	_, err = binemit.RelaxBranches(ctx, f, tisa)
	if err != nil {
		return errors.Wrap(err, "relax branches")
	}

	fmt.Printf("%v\n", f.Display(tisa))

	for _, ebb := range f.Layout.Ebbs() {
		it := f.InstOffsets(ebb, tisa.EncInfo())

		for {
			off, inst, size, ok := it.Next()
			if !ok {
				break
			}

			fmt.Printf("%06x  %-6v %d bytes\n", off, inst, size)
		}
	}

	return nil
}

// buildDemo makes a function taking one i32 and returning its triple,
// with a loop flavored control flow to give relaxation a branch to check.
func buildDemo() *ir.Function {
	sig := ir.NewSignature(ir.Fast)
	sig.AddParam(ir.AbiParam{Type: ir.I32})
	sig.AddReturn(ir.AbiParam{Type: ir.I32})

	f := ir.WithNameSignature(ir.TestcaseName("demo"), sig)

	f.CreateStackSlot(ir.StackSlotData{Kind: ir.ExplicitSlot, Size: 8})

	ebb0 := f.Dfg.MakeEbb()
	ebb1 := f.Dfg.MakeEbb()

	v0 := f.Dfg.AppendEbbParam(ebb0, ir.I32)

	f.Layout.AppendEbb(ebb0)
	f.Layout.AppendEbb(ebb1)

	add1 := f.Dfg.MakeInst(ir.MakeBinary(ir.OpIadd, ir.I32, v0, v0))
	f.Layout.AppendInst(add1, ebb0)
	v1 := f.Dfg.FirstResult(add1)

	br := f.Dfg.MakeInst(ir.MakeBranch(ir.OpBrz, v1, ebb1))
	f.Layout.AppendInst(br, ebb0)

	jump := f.Dfg.MakeInst(ir.MakeJump(ebb1))
	f.Layout.AppendInst(jump, ebb0)

	add2 := f.Dfg.MakeInst(ir.MakeBinary(ir.OpIadd, ir.I32, v1, v0))
	f.Layout.AppendInst(add2, ebb1)
	v2 := f.Dfg.FirstResult(add2)

	ret := f.Dfg.MakeInst(ir.MakeReturn(v2))
	f.Layout.AppendInst(ret, ebb1)

	return f
}
