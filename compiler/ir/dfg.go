package ir

import (
	"fmt"
	"strings"

	"github.com/lowlang/low/compiler/entity"
)

type (
	// DataFlowGraph holds the primary definition of every instruction, EBB
	// and value, plus the imported signatures and external functions that
	// call instructions reference.
	DataFlowGraph struct {
		insts   entity.Prim[Inst, InstructionData]
		results entity.Map[Inst, []Value]

		values entity.Prim[Value, valueData]

		numEbbs   int32
		ebbParams entity.Map[Ebb, []Value]

		// Signatures of functions callable from this one.
		Signatures entity.Prim[SigRef, Signature]
		// ExtFuncs declared for direct calls.
		ExtFuncs entity.Prim[FuncRef, ExtFuncData]
	}

	valueData struct {
		Typ Type

		// Def is the defining instruction, or NoInst for EBB params.
		Def Inst
		Ebb Ebb
	}
)

func (g *DataFlowGraph) Clear() {
	g.insts.Clear()
	g.results.Clear()
	g.values.Clear()
	g.numEbbs = 0
	g.ebbParams.Clear()
	g.Signatures.Clear()
	g.ExtFuncs.Clear()
}

func (g *DataFlowGraph) Clone() DataFlowGraph {
	cp := DataFlowGraph{
		insts:      g.insts.Clone(),
		results:    g.results.Clone(),
		values:     g.values.Clone(),
		numEbbs:    g.numEbbs,
		ebbParams:  g.ebbParams.Clone(),
		Signatures: g.Signatures.Clone(),
		ExtFuncs:   g.ExtFuncs.Clone(),
	}

	for i := 0; i < cp.results.Len(); i++ {
		r := cp.results.Ref(Inst(i))
		*r = append([]Value{}, *r...)
	}

	for i := 0; i < cp.ebbParams.Len(); i++ {
		p := cp.ebbParams.Ref(Ebb(i))
		*p = append([]Value{}, *p...)
	}

	for i := 0; i < cp.insts.Len(); i++ {
		d := cp.insts.At(Inst(i))
		d.Args = append([]Value{}, d.Args...)
	}

	for i := 0; i < cp.Signatures.Len(); i++ {
		s := cp.Signatures.At(SigRef(i))
		*s = s.Clone()
	}

	return cp
}

func (g *DataFlowGraph) MakeEbb() Ebb {
	ebb := Ebb(g.numEbbs)
	g.numEbbs++

	return ebb
}

func (g *DataFlowGraph) NumEbbs() int { return int(g.numEbbs) }

func (g *DataFlowGraph) AppendEbbParam(ebb Ebb, typ Type) Value {
	v := g.values.Push(valueData{Typ: typ, Def: NoInst, Ebb: ebb})

	p := g.ebbParams.Ref(ebb)
	*p = append(*p, v)

	return v
}

func (g *DataFlowGraph) EbbParams(ebb Ebb) []Value { return g.ebbParams.Get(ebb) }

// MakeInst adds an instruction and materializes its result values.
// Call results follow the callee signature returns.
func (g *DataFlowGraph) MakeInst(data InstructionData) Inst {
	inst := g.insts.Push(data)

	switch {
	case data.Opcode.HasResult():
		v := g.values.Push(valueData{Typ: data.Opcode.ResultType(data.Typ), Def: inst, Ebb: NoEbb})
		g.results.Set(inst, []Value{v})
	case data.Opcode == OpCall:
		sig := g.Signatures.At(g.ExtFuncs.At(data.FnRef).Signature)

		var res []Value
		for _, r := range sig.Returns {
			res = append(res, g.values.Push(valueData{Typ: r.Type, Def: inst, Ebb: NoEbb}))
		}

		g.results.Set(inst, res)
	}

	return inst
}

func (g *DataFlowGraph) InstData(inst Inst) *InstructionData { return g.insts.At(inst) }

func (g *DataFlowGraph) NumInsts() int  { return g.insts.Len() }
func (g *DataFlowGraph) NumValues() int { return g.values.Len() }

func (g *DataFlowGraph) ValueIsValid(v Value) bool {
	return v >= 0 && int(v) < g.values.Len()
}

func (g *DataFlowGraph) InstResults(inst Inst) []Value { return g.results.Get(inst) }

func (g *DataFlowGraph) FirstResult(inst Inst) Value {
	res := g.results.Get(inst)
	if len(res) == 0 {
		return NoValue
	}

	return res[0]
}

func (g *DataFlowGraph) ValueType(v Value) Type { return g.values.At(v).Typ }

// CtrlTypevar is the controlling type variable disambiguating a polymorphic
// instruction during encoding selection.
func (g *DataFlowGraph) CtrlTypevar(inst Inst) Type { return g.insts.At(inst).Typ }

// DisplayInst renders one instruction. isa selects ISA-specific operand
// spelling; nil renders the generic form.
func (g *DataFlowGraph) DisplayInst(inst Inst, isa TargetIsa) string {
	var b strings.Builder

	d := g.insts.At(inst)

	if res := g.results.Get(inst); len(res) != 0 {
		for i, v := range res {
			if i != 0 {
				b.WriteString(", ")
			}

			b.WriteString(v.String())
		}

		b.WriteString(" = ")
	}

	b.WriteString(d.Opcode.String())

	if d.Typ != VOID {
		b.WriteByte('.')
		b.WriteString(d.Typ.String())
	}

	sep := " "
	arg := func(a fmt.Stringer) {
		b.WriteString(sep)
		b.WriteString(a.String())
		sep = ", "
	}

	switch d.Opcode {
	case OpIconst:
		fmt.Fprintf(&b, " %d", d.Imm)
	case OpIaddImm:
		arg(d.Args[0])
		fmt.Fprintf(&b, ", %d", d.Imm)
	case OpJump, OpBrz, OpBrnz:
		rest := d.Args

		if d.Opcode != OpJump {
			arg(rest[0])
			rest = rest[1:]
		}

		arg(d.Dest)

		// Arguments bound to the destination EBB params.
		if len(rest) != 0 {
			b.WriteByte('(')

			for i, a := range rest {
				if i != 0 {
					b.WriteString(", ")
				}

				b.WriteString(a.String())
			}

			b.WriteByte(')')
		}
	case OpBrTable:
		arg(d.Args[0])
		arg(d.Table)
	case OpCall:
		arg(d.FnRef)

		b.WriteByte('(')

		for i, a := range d.Args {
			if i != 0 {
				b.WriteString(", ")
			}

			b.WriteString(a.String())
		}

		b.WriteByte(')')
	case OpStackLoad:
		arg(d.SS)
		fmt.Fprintf(&b, ", %d", d.Imm)
	case OpStackStore:
		arg(d.Args[0])
		arg(d.SS)
		fmt.Fprintf(&b, ", %d", d.Imm)
	case OpHeapAddr:
		arg(d.H)
		arg(d.Args[0])
		fmt.Fprintf(&b, ", %d", d.Imm)
	case OpGlobalAddr:
		arg(d.GV)
	default:
		for _, a := range d.Args {
			arg(a)
		}
	}

	return b.String()
}
