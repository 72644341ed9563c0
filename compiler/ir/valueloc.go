package ir

import "fmt"

type (
	// RegUnit names one register of the target register bank.
	RegUnit uint16

	// ValueLoc is where register allocation put a value.
	ValueLoc struct {
		Kind ValueLocKind

		Reg  RegUnit
		Slot StackSlot
	}

	ValueLocKind int8
)

const (
	LocUnassigned ValueLocKind = iota
	LocReg
	LocStack
)

func RegLoc(r RegUnit) ValueLoc      { return ValueLoc{Kind: LocReg, Reg: r} }
func StackLoc(ss StackSlot) ValueLoc { return ValueLoc{Kind: LocStack, Slot: ss} }

func (l ValueLoc) IsAssigned() bool { return l.Kind != LocUnassigned }

func (l ValueLoc) String() string {
	switch l.Kind {
	case LocReg:
		return fmt.Sprintf("%%r%d", l.Reg)
	case LocStack:
		return l.Slot.String()
	}

	return "-"
}
