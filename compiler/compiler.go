package compiler

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/lowlang/low/compiler/binemit"
	"github.com/lowlang/low/compiler/diag"
	"github.com/lowlang/low/compiler/ir"
	"github.com/lowlang/low/compiler/verifier"
)

// CompileFunction drives one function through the backend pipeline: verify,
// encode, relax, render. The result is the annotated textual form of the
// function with its code layout computed; emitting machine bytes is the
// next stage.
//
// An isa.Legalize directive coming out of encoding is returned to the
// caller: transforming the instruction so a retry can succeed is the
// legalizer's job, which sits outside this package.
func CompileFunction(ctx context.Context, f *ir.Function, tisa ir.TargetIsa) (obj []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile function", "name", f.Name, "isa", tisa.Name())
	defer tr.Finish("err", &err)

	err = verifier.Verify(f)
	if err != nil {
		tr.Printw("verifier", "err", diag.PrettyError(f, tisa, err))

		return nil, errors.Wrap(err, "verify")
	}

	err = encodeFunction(f, tisa)
	if err != nil {
		return nil, err
	}

	size, err := binemit.RelaxBranches(ctx, f, tisa)
	if err != nil {
		return nil, errors.Wrap(err, "relax branches")
	}

	tr.Printw("code layout", "size", size)

	obj = ir.WriteFunction(nil, f, tisa)

	return obj, nil
}

func encodeFunction(f *ir.Function, tisa ir.TargetIsa) error {
	for _, ebb := range f.Layout.Ebbs() {
		it := f.Layout.EbbInsts(ebb)

		for {
			inst, ok := it.Next()
			if !ok {
				break
			}

			err := f.UpdateEncoding(inst, tisa)
			if err != nil {
				return errors.Wrap(err, "encode %v", inst)
			}
		}
	}

	return nil
}
