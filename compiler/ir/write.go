package ir

import (
	"github.com/nikandfor/hacked/hfmt"
)

type (
	// DisplayFunction renders a function, with ISA-specific encoding
	// annotations when an ISA context is bound in.
	DisplayFunction struct {
		f    *Function
		tisa TargetIsa
	}
)

// Display returns a view rendering the function with annotations for the
// given ISA. Pass nil for the generic, architecture-neutral form.
func (f *Function) Display(tisa TargetIsa) DisplayFunction {
	return DisplayFunction{f: f, tisa: tisa}
}

func (f *Function) String() string { return f.Display(nil).String() }

func (d DisplayFunction) String() string {
	return string(WriteFunction(nil, d.f, d.tisa))
}

// WriteFunction appends the textual form of the function to b.
func WriteFunction(b []byte, f *Function, tisa TargetIsa) []byte {
	b = hfmt.Appendf(b, "function %v%v {\n", f.Name, f.Signature)

	b = writePreamble(b, f)

	for _, ebb := range f.Layout.Ebbs() {
		b = append(b, '\n')
		b = writeEbb(b, f, tisa, ebb)
	}

	b = append(b, "}\n"...)

	return b
}

func writePreamble(b []byte, f *Function) []byte {
	for i := 0; i < f.StackSlots.Len(); i++ {
		ss := StackSlot(i)
		b = hfmt.Appendf(b, "    %v = %v\n", ss, *f.StackSlots.At(ss))
	}

	for i := 0; i < f.GlobalVars.Len(); i++ {
		gv := GlobalVar(i)
		b = hfmt.Appendf(b, "    %v = %v\n", gv, *f.GlobalVars.At(gv))

		if gv == f.StackLimit {
			b = hfmt.Appendf(b, "    stack_limit = %v\n", gv)
		}
	}

	for i := 0; i < f.Heaps.Len(); i++ {
		h := Heap(i)
		b = hfmt.Appendf(b, "    %v = %v\n", h, *f.Heaps.At(h))
	}

	for i := 0; i < f.JumpTables.Len(); i++ {
		jt := JumpTable(i)
		b = hfmt.Appendf(b, "    %v = %v\n", jt, *f.JumpTables.At(jt))
	}

	for i := 0; i < f.Dfg.Signatures.Len(); i++ {
		sig := SigRef(i)
		b = hfmt.Appendf(b, "    %v = signature%v\n", sig, *f.Dfg.Signatures.At(sig))
	}

	for i := 0; i < f.Dfg.ExtFuncs.Len(); i++ {
		fn := FuncRef(i)
		b = hfmt.Appendf(b, "    %v = function %v\n", fn, *f.Dfg.ExtFuncs.At(fn))
	}

	return b
}

func writeEbb(b []byte, f *Function, tisa TargetIsa, ebb Ebb) []byte {
	b = append(b, ebb.String()...)

	if params := f.Dfg.EbbParams(ebb); len(params) != 0 {
		b = append(b, '(')

		for i, v := range params {
			if i != 0 {
				b = append(b, ", "...)
			}

			b = hfmt.Appendf(b, "%v: %v", v, f.Dfg.ValueType(v))
		}

		b = append(b, ')')
	}

	b = append(b, ":\n"...)

	it := f.Layout.EbbInsts(ebb)

	for {
		inst, ok := it.Next()
		if !ok {
			break
		}

		b = writeInst(b, f, tisa, inst)
	}

	return b
}

func writeInst(b []byte, f *Function, tisa TargetIsa, inst Inst) []byte {
	if tisa != nil {
		enc := f.Encodings.Get(inst)
		b = hfmt.Appendf(b, "[%-9s] ", tisa.EncInfo().DisplayEnc(enc))
	}

	if srcloc := f.Srclocs.Get(inst); !srcloc.IsDefault() {
		b = hfmt.Appendf(b, "%v ", srcloc)
	}

	b = hfmt.Appendf(b, "    %s\n", f.Dfg.DisplayInst(inst, tisa))

	return b
}
