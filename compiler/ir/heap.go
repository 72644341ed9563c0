package ir

import "fmt"

type (
	// HeapData describes an addressable memory region with the metadata
	// heap_addr needs for bounds checking.
	HeapData struct {
		// Base is the global variable holding the heap start address,
		// or NoGlobalVar for the ISA-reserved heap register.
		Base GlobalVar

		MinSize   uint64
		GuardSize uint64

		Style HeapStyle

		// BoundGV holds the current size for dynamic heaps.
		BoundGV GlobalVar
		// Bound is the fixed address range of static heaps.
		Bound uint64
	}

	HeapStyle int8
)

const (
	HeapDynamic HeapStyle = iota
	HeapStatic
)

func (d HeapData) String() string {
	base := "reserved_reg"
	if d.Base != NoGlobalVar {
		base = d.Base.String()
	}

	switch d.Style {
	case HeapDynamic:
		return fmt.Sprintf("dynamic %v, min %#x, bound %v, guard %#x", base, d.MinSize, d.BoundGV, d.GuardSize)
	case HeapStatic:
		return fmt.Sprintf("static %v, min %#x, bound %#x, guard %#x", base, d.MinSize, d.Bound, d.GuardSize)
	}

	return "badheap"
}
