package ir

import "github.com/lowlang/low/compiler/entity"

type (
	// Layout is the program order of EBBs and of instructions within each
	// EBB. The data flow graph defines instructions; only the ones inserted
	// here are part of the function body.
	Layout struct {
		ebbs  []Ebb
		insts entity.Map[Ebb, []Inst]
	}

	// InstIter walks one EBB's instructions in program order.
	InstIter struct {
		insts []Inst
	}
)

func (l *Layout) Clear() {
	l.ebbs = l.ebbs[:0]
	l.insts.Clear()
}

func (l *Layout) Clone() Layout {
	cp := Layout{
		ebbs:  append([]Ebb{}, l.ebbs...),
		insts: l.insts.Clone(),
	}

	for i := 0; i < cp.insts.Len(); i++ {
		in := cp.insts.Ref(Ebb(i))
		*in = append([]Inst{}, *in...)
	}

	return cp
}

// AppendEbb puts ebb last in the layout.
func (l *Layout) AppendEbb(ebb Ebb) {
	l.ebbs = append(l.ebbs, ebb)
}

// AppendInst puts inst last in ebb.
func (l *Layout) AppendInst(inst Inst, ebb Ebb) {
	in := l.insts.Ref(ebb)
	*in = append(*in, inst)
}

// EntryBlock is the first EBB in the layout, NoEbb if the layout is empty.
func (l *Layout) EntryBlock() Ebb {
	if len(l.ebbs) == 0 {
		return NoEbb
	}

	return l.ebbs[0]
}

// Ebbs returns the EBBs in layout order. The slice aliases the layout.
func (l *Layout) Ebbs() []Ebb { return l.ebbs }

// Contains reports whether ebb has been inserted in the layout.
func (l *Layout) Contains(ebb Ebb) bool {
	for _, e := range l.ebbs {
		if e == ebb {
			return true
		}
	}

	return false
}

func (l *Layout) EbbInsts(ebb Ebb) InstIter {
	return InstIter{insts: l.insts.Get(ebb)}
}

// LastInst is the terminator position of ebb, NoInst if the EBB is empty.
func (l *Layout) LastInst(ebb Ebb) Inst {
	in := l.insts.Get(ebb)
	if len(in) == 0 {
		return NoInst
	}

	return in[len(in)-1]
}

func (it *InstIter) Next() (Inst, bool) {
	if len(it.insts) == 0 {
		return NoInst, false
	}

	inst := it.insts[0]
	it.insts = it.insts[1:]

	return inst, true
}
