package ir

import (
	"fmt"

	"tlog.app/go/tlog/tlwire"
)

type (
	// Entity handles. Each namespace numbers its entities independently,
	// in creation order. Handles are never reused.

	Ebb       int32
	Inst      int32
	Value     int32
	StackSlot int32
	GlobalVar int32
	Heap      int32
	JumpTable int32
	SigRef    int32
	FuncRef   int32

	// AnyEntity is any of the handles above, used where an error or a log
	// message points at one entity of unknown kind.
	AnyEntity interface {
		fmt.Stringer
	}
)

const (
	NoEbb       Ebb       = -1
	NoInst      Inst      = -1
	NoValue     Value     = -1
	NoStackSlot StackSlot = -1
	NoGlobalVar GlobalVar = -1
	NoHeap      Heap      = -1
	NoJumpTable JumpTable = -1
	NoSigRef    SigRef    = -1
	NoFuncRef   FuncRef   = -1
)

func (x Ebb) String() string       { return ent("ebb", int32(x)) }
func (x Inst) String() string      { return ent("inst", int32(x)) }
func (x Value) String() string     { return ent("v", int32(x)) }
func (x StackSlot) String() string { return ent("ss", int32(x)) }
func (x GlobalVar) String() string { return ent("gv", int32(x)) }
func (x Heap) String() string      { return ent("heap", int32(x)) }
func (x JumpTable) String() string { return ent("jt", int32(x)) }
func (x SigRef) String() string    { return ent("sig", int32(x)) }
func (x FuncRef) String() string   { return ent("fn", int32(x)) }

func ent(pref string, x int32) string {
	if x < 0 {
		return pref + "-"
	}

	return fmt.Sprintf("%s%d", pref, x)
}

func (x Ebb) TlogAppend(b []byte) []byte       { return entTlogAppend(b, "ebb", int32(x)) }
func (x Inst) TlogAppend(b []byte) []byte      { return entTlogAppend(b, "inst", int32(x)) }
func (x Value) TlogAppend(b []byte) []byte     { return entTlogAppend(b, "v", int32(x)) }
func (x StackSlot) TlogAppend(b []byte) []byte { return entTlogAppend(b, "ss", int32(x)) }
func (x GlobalVar) TlogAppend(b []byte) []byte { return entTlogAppend(b, "gv", int32(x)) }
func (x JumpTable) TlogAppend(b []byte) []byte { return entTlogAppend(b, "jt", int32(x)) }

func entTlogAppend(b []byte, pref string, x int32) []byte {
	var e tlwire.Encoder

	if x < 0 {
		return e.AppendNil(b)
	}

	return e.AppendFormat(b, "%s%d", pref, x)
}
