package ir

import (
	"fmt"

	"github.com/lowlang/low/compiler/entity"
)

type (
	// StackSlotData is a fixed-size allocation in the function frame,
	// referenced by stack_load, stack_store and stack_addr instructions.
	StackSlotData struct {
		Kind StackSlotKind
		Size uint32

		// Offset from the frame base, assigned by frame layout.
		Offset int32
	}

	StackSlotKind int8

	StackSlots = entity.Prim[StackSlot, StackSlotData]
)

const (
	ExplicitSlot StackSlotKind = iota
	SpillSlot
	IncomingArg
	OutgoingArg
)

func (k StackSlotKind) String() string {
	switch k {
	case ExplicitSlot:
		return "explicit_slot"
	case SpillSlot:
		return "spill_slot"
	case IncomingArg:
		return "incoming_arg"
	case OutgoingArg:
		return "outgoing_arg"
	}

	return "badslot"
}

func (d StackSlotData) String() string {
	if d.Offset != 0 {
		return fmt.Sprintf("%v %d, offset %d", d.Kind, d.Size, d.Offset)
	}

	return fmt.Sprintf("%v %d", d.Kind, d.Size)
}
