// Package verifier checks the referential invariants the IR tables do not
// enforce on their own: handles crossing table boundaries must point at
// entities that actually exist.
package verifier

import (
	"fmt"

	"github.com/lowlang/low/compiler/ir"
)

type (
	// Error is one verifier finding. Loc points at the offending entity
	// when the finding is entity-scoped, nil otherwise.
	Error struct {
		Loc     ir.AnyEntity
		Message string
	}
)

func (e *Error) Error() string {
	if e.Loc != nil {
		return fmt.Sprintf("%v: %s", e.Loc, e.Message)
	}

	return e.Message
}

func errAt(at ir.AnyEntity, f string, args ...any) *Error {
	return &Error{Loc: at, Message: fmt.Sprintf(f, args...)}
}

// Verify checks f and returns the first inconsistency found as *Error.
func Verify(f *ir.Function) error {
	if err := verifyTables(f); err != nil {
		return err
	}

	for _, ebb := range f.Layout.Ebbs() {
		if err := verifyEbb(f, ebb); err != nil {
			return err
		}
	}

	return nil
}

func verifyTables(f *ir.Function) error {
	if lim := f.StackLimit; lim != ir.NoGlobalVar && int(lim) >= f.GlobalVars.Len() {
		return errAt(lim, "stack limit is not a declared global variable")
	}

	for i := 0; i < f.GlobalVars.Len(); i++ {
		gv := ir.GlobalVar(i)
		d := f.GlobalVars.At(gv)

		if d.Kind == ir.GlobalDeref && (d.Base < 0 || d.Base >= gv) {
			return errAt(gv, "deref base %v not declared before it", d.Base)
		}
	}

	if entry := f.Layout.EntryBlock(); entry != ir.NoEbb {
		params := f.Dfg.EbbParams(entry)

		if len(params) != len(f.Signature.Params) {
			return errAt(entry, "entry block has %d params, signature has %d", len(params), len(f.Signature.Params))
		}

		for i, v := range params {
			if got, want := f.Dfg.ValueType(v), f.Signature.Params[i].Type; got != want {
				return errAt(entry, "entry param %v is %v, signature wants %v", v, got, want)
			}
		}
	}

	for i := 0; i < f.JumpTables.Len(); i++ {
		jt := ir.JumpTable(i)

		for _, ebb := range f.JumpTables.At(jt).Entries() {
			if ebb != ir.NoEbb && !f.Layout.Contains(ebb) {
				return errAt(jt, "entry %v is not in the layout", ebb)
			}
		}
	}

	return nil
}

func verifyEbb(f *ir.Function, ebb ir.Ebb) error {
	last := f.Layout.LastInst(ebb)
	if last == ir.NoInst {
		return errAt(ebb, "empty extended basic block")
	}

	if !f.Dfg.InstData(last).Opcode.IsTerminator() {
		return errAt(last, "%v is not terminated", ebb)
	}

	it := f.Layout.EbbInsts(ebb)

	for {
		inst, ok := it.Next()
		if !ok {
			break
		}

		d := f.Dfg.InstData(inst)

		for _, a := range d.Args {
			if !f.Dfg.ValueIsValid(a) {
				return errAt(inst, "argument %v is not defined", a)
			}
		}

		if inst != last && d.Opcode.IsTerminator() {
			return errAt(inst, "terminator in the middle of %v", ebb)
		}

		if d.Dest != ir.NoEbb && !f.Layout.Contains(d.Dest) {
			return errAt(inst, "branch destination %v is not in the layout", d.Dest)
		}

		if d.Table != ir.NoJumpTable && int(d.Table) >= f.JumpTables.Len() {
			return errAt(inst, "jump table %v is not declared", d.Table)
		}
	}

	return nil
}
