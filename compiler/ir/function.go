package ir

import (
	"github.com/lowlang/low/compiler/entity"
	"github.com/lowlang/low/compiler/isa"
)

type (
	GlobalVars = entity.Prim[GlobalVar, GlobalVarData]
	Heaps      = entity.Prim[Heap, HeapData]
	JumpTables = entity.Prim[JumpTable, JumpTableData]

	InstEncodings  = entity.Map[Inst, isa.Encoding]
	ValueLocations = entity.Map[Value, ValueLoc]
	EbbOffsets     = entity.Map[Ebb, isa.CodeOffset]
	SourceLocs     = entity.Map[Inst, SourceLoc]

	// Function owns everything belonging to one function body: the entity
	// tables, the data flow graph, the layout and the per-entity side
	// tables filled in by later passes. Nothing here is shared between
	// functions; one goroutine drives one Function at a time.
	Function struct {
		Name ExternalName

		Signature Signature

		StackSlots StackSlots

		// StackLimit is the global variable the stack pointer is checked
		// against, NoGlobalVar if the function has no stack limit.
		StackLimit GlobalVar

		GlobalVars GlobalVars

		Heaps Heaps

		JumpTables JumpTables

		Dfg DataFlowGraph

		Layout Layout

		// Encodings per instruction. Unencoded instructions hold the
		// zero encoding.
		Encodings InstEncodings

		// Locations assigned to values by register allocation.
		Locations ValueLocations

		// Offsets of EBB headers. Empty until branch relaxation computes
		// the code layout; then every EBB has its offset. Never partial.
		Offsets EbbOffsets

		// Srclocs preserves the original source position per instruction.
		Srclocs SourceLocs
	}

	// InstOffsetIter yields (offset, inst, size) for one EBB in program
	// order. Unencoded instructions have size 0.
	InstOffsetIter struct {
		encinfo   *isa.EncInfo
		encodings *InstEncodings
		offset    isa.CodeOffset
		iter      InstIter
	}
)

// WithNameSignature creates a function with the given name and signature and
// all tables empty.
func WithNameSignature(name ExternalName, sig Signature) *Function {
	return &Function{
		Name:       name,
		Signature:  sig,
		StackLimit: NoGlobalVar,
	}
}

// NewFunction creates an anonymous function with the Fast calling convention.
func NewFunction() *Function {
	return WithNameSignature(ExternalName{}, NewSignature(Fast))
}

// Clear empties every table, keeping capacity for reuse. The signature is
// reset to the Fast calling convention. The name is left as is.
func (f *Function) Clear() {
	f.Signature.Clear(Fast)
	f.StackSlots.Clear()
	f.StackLimit = NoGlobalVar
	f.GlobalVars.Clear()
	f.Heaps.Clear()
	f.JumpTables.Clear()
	f.Dfg.Clear()
	f.Layout.Clear()
	f.Encodings.Clear()
	f.Locations.Clear()
	f.Offsets.Clear()
	f.Srclocs.Clear()
}

// Clone deep-copies the function. The clone keeps the entity numbering of
// the original, so handles work interchangeably on both. Not a fast
// operation.
func (f *Function) Clone() *Function {
	return &Function{
		Name:       f.Name,
		Signature:  f.Signature.Clone(),
		StackSlots: f.StackSlots.Clone(),
		StackLimit: f.StackLimit,
		GlobalVars: f.GlobalVars.Clone(),
		Heaps:      f.Heaps.Clone(),
		JumpTables: cloneJumpTables(&f.JumpTables),
		Dfg:        f.Dfg.Clone(),
		Layout:     f.Layout.Clone(),
		Encodings:  f.Encodings.Clone(),
		Locations:  f.Locations.Clone(),
		Offsets:    f.Offsets.Clone(),
		Srclocs:    f.Srclocs.Clone(),
	}
}

func cloneJumpTables(jts *JumpTables) JumpTables {
	cp := jts.Clone()

	for i := 0; i < cp.Len(); i++ {
		jt := cp.At(JumpTable(i))
		*jt = jt.Clone()
	}

	return cp
}

// CreateJumpTable declares a jump table for use by br_table instructions.
func (f *Function) CreateJumpTable(data JumpTableData) JumpTable {
	return f.JumpTables.Push(data)
}

// InsertJumpTableEntry overwrites one entry of a declared jump table.
// index must be within the table length.
func (f *Function) InsertJumpTableEntry(jt JumpTable, index int, ebb Ebb) {
	f.JumpTables.At(jt).SetEntry(index, ebb)
}

// CreateStackSlot declares a frame slot for use by stack_load, stack_store
// and stack_addr instructions.
func (f *Function) CreateStackSlot(data StackSlotData) StackSlot {
	return f.StackSlots.Push(data)
}

// CreateGlobalVar declares a global variable accessible to the function.
func (f *Function) CreateGlobalVar(data GlobalVarData) GlobalVar {
	return f.GlobalVars.Push(data)
}

// CreateHeap declares a heap accessible to the function.
func (f *Function) CreateHeap(data HeapData) Heap {
	return f.Heaps.Push(data)
}

// SetStackLimit swaps the stack limit reference, returning the previous one.
// The handle is not checked against GlobalVars here.
func (f *Function) SetStackLimit(gv GlobalVar) GlobalVar {
	prev := f.StackLimit
	f.StackLimit = gv

	return prev
}

// ImportSignature declares a signature that external function imports can
// refer to.
func (f *Function) ImportSignature(sig Signature) SigRef {
	return f.Dfg.Signatures.Push(sig)
}

// ImportFunction declares an external function import.
func (f *Function) ImportFunction(data ExtFuncData) FuncRef {
	return f.Dfg.ExtFuncs.Push(data)
}

// SpecialParam finds the value bound to the last signature parameter with
// the given purpose, NoValue if there is none. The function must have an
// entry block.
func (f *Function) SpecialParam(purpose ArgumentPurpose) Value {
	entry := f.Layout.EntryBlock()
	if entry == NoEbb {
		panic("function is empty")
	}

	i := f.Signature.SpecialParamIndex(purpose)
	if i < 0 {
		return NoValue
	}

	return f.Dfg.EbbParams(entry)[i]
}

// InstOffsets iterates the instructions of ebb with their byte offsets and
// encoded sizes. Usable only after branch relaxation has computed the code
// layout.
func (f *Function) InstOffsets(ebb Ebb, encinfo *isa.EncInfo) InstOffsetIter {
	if f.Offsets.IsEmpty() {
		panic("code layout must be computed first")
	}

	return InstOffsetIter{
		encinfo:   encinfo,
		encodings: &f.Encodings,
		offset:    f.Offsets.Get(ebb),
		iter:      f.Layout.EbbInsts(ebb),
	}
}

// Encode asks the target ISA for an encoding of inst. Does not mutate the
// function; the error, if any, is an isa.Legalize directive.
func (f *Function) Encode(inst Inst, tisa TargetIsa) (isa.Encoding, error) {
	return tisa.Encode(f, f.Dfg.InstData(inst), f.Dfg.CtrlTypevar(inst))
}

// UpdateEncoding encodes inst and stores the result in the encodings table.
// On failure the table entry is left untouched.
func (f *Function) UpdateEncoding(inst Inst, tisa TargetIsa) error {
	e, err := f.Encode(inst, tisa)
	if err != nil {
		return err
	}

	f.Encodings.Set(inst, e)

	return nil
}

func (it *InstOffsetIter) Next() (isa.CodeOffset, Inst, isa.CodeOffset, bool) {
	inst, ok := it.iter.Next()
	if !ok {
		return 0, NoInst, 0, false
	}

	size := it.encinfo.Bytes(it.encodings.Get(inst))
	offset := it.offset
	it.offset += size

	return offset, inst, size, true
}
