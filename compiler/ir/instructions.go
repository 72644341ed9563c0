package ir

type (
	Opcode int8

	// InstructionData is the full description of one instruction: opcode,
	// controlling type variable, value arguments and whatever immediate or
	// entity operands the opcode calls for. Unused entity fields hold the
	// No* sentinels.
	InstructionData struct {
		Opcode Opcode
		Typ    Type

		Args []Value
		Imm  int64

		Dest  Ebb
		Table JumpTable
		FnRef FuncRef

		SS StackSlot
		GV GlobalVar
		H  Heap
	}
)

const (
	OpInvalid Opcode = iota
	OpIconst
	OpIadd
	OpIaddImm
	OpIsub
	OpImul
	OpIcmp
	OpJump
	OpBrz
	OpBrnz
	OpBrTable
	OpCall
	OpReturn
	OpStackLoad
	OpStackStore
	OpHeapAddr
	OpGlobalAddr
)

func emptyData(op Opcode, typ Type) InstructionData {
	return InstructionData{
		Opcode: op,
		Typ:    typ,
		Dest:   NoEbb,
		Table:  NoJumpTable,
		FnRef:  NoFuncRef,
		SS:     NoStackSlot,
		GV:     NoGlobalVar,
		H:      NoHeap,
	}
}

func MakeIconst(typ Type, imm int64) InstructionData {
	d := emptyData(OpIconst, typ)
	d.Imm = imm

	return d
}

func MakeBinary(op Opcode, typ Type, x, y Value) InstructionData {
	d := emptyData(op, typ)
	d.Args = []Value{x, y}

	return d
}

func MakeBinaryImm(op Opcode, typ Type, x Value, imm int64) InstructionData {
	d := emptyData(op, typ)
	d.Args = []Value{x}
	d.Imm = imm

	return d
}

func MakeJump(dest Ebb, args ...Value) InstructionData {
	d := emptyData(OpJump, VOID)
	d.Args = args
	d.Dest = dest

	return d
}

func MakeBranch(op Opcode, cond Value, dest Ebb) InstructionData {
	d := emptyData(op, VOID)
	d.Args = []Value{cond}
	d.Dest = dest

	return d
}

func MakeBranchTable(index Value, table JumpTable) InstructionData {
	d := emptyData(OpBrTable, VOID)
	d.Args = []Value{index}
	d.Table = table

	return d
}

func MakeCall(fn FuncRef, args ...Value) InstructionData {
	d := emptyData(OpCall, VOID)
	d.Args = args
	d.FnRef = fn

	return d
}

func MakeReturn(args ...Value) InstructionData {
	d := emptyData(OpReturn, VOID)
	d.Args = args

	return d
}

func MakeStackLoad(typ Type, ss StackSlot, offset int64) InstructionData {
	d := emptyData(OpStackLoad, typ)
	d.SS = ss
	d.Imm = offset

	return d
}

func MakeStackStore(x Value, ss StackSlot, offset int64) InstructionData {
	d := emptyData(OpStackStore, VOID)
	d.Args = []Value{x}
	d.SS = ss
	d.Imm = offset

	return d
}

func MakeHeapAddr(typ Type, h Heap, index Value, size int64) InstructionData {
	d := emptyData(OpHeapAddr, typ)
	d.Args = []Value{index}
	d.H = h
	d.Imm = size

	return d
}

func MakeGlobalAddr(typ Type, gv GlobalVar) InstructionData {
	d := emptyData(OpGlobalAddr, typ)
	d.GV = gv

	return d
}

// HasResult reports whether the opcode defines a value.
// Call results come from the callee signature instead.
func (op Opcode) HasResult() bool {
	switch op {
	case OpIconst, OpIadd, OpIaddImm, OpIsub, OpImul, OpIcmp,
		OpStackLoad, OpHeapAddr, OpGlobalAddr:
		return true
	}

	return false
}

// IsBranch reports whether the opcode transfers control to Dest or Table.
func (op Opcode) IsBranch() bool {
	switch op {
	case OpJump, OpBrz, OpBrnz, OpBrTable:
		return true
	}

	return false
}

// IsTerminator reports whether the opcode ends an extended basic block.
func (op Opcode) IsTerminator() bool {
	switch op {
	case OpJump, OpBrTable, OpReturn:
		return true
	}

	return false
}

// ResultType is the type of the value the instruction defines given its
// controlling type variable.
func (op Opcode) ResultType(ctrl Type) Type {
	switch op {
	case OpIcmp:
		return B1
	default:
		return ctrl
	}
}

func (op Opcode) String() string {
	switch op {
	case OpIconst:
		return "iconst"
	case OpIadd:
		return "iadd"
	case OpIaddImm:
		return "iadd_imm"
	case OpIsub:
		return "isub"
	case OpImul:
		return "imul"
	case OpIcmp:
		return "icmp"
	case OpJump:
		return "jump"
	case OpBrz:
		return "brz"
	case OpBrnz:
		return "brnz"
	case OpBrTable:
		return "br_table"
	case OpCall:
		return "call"
	case OpReturn:
		return "return"
	case OpStackLoad:
		return "stack_load"
	case OpStackStore:
		return "stack_store"
	case OpHeapAddr:
		return "heap_addr"
	case OpGlobalAddr:
		return "global_addr"
	}

	return "badop"
}
