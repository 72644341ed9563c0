package isa

import (
	"fmt"

	"tlog.app/go/tlog/tlwire"
)

type (
	// CodeOffset is a byte offset from the function entry point.
	CodeOffset uint32

	// Encoding identifies how an instruction is realized in machine code:
	// a recipe index and recipe-specific encoding bits. The zero value means
	// unencoded, it is not a valid recipe.
	Encoding struct {
		recipe uint16
		bits   uint16
	}

	// EncInfo describes the encoding recipes of one target ISA well enough
	// for branch relaxation and code size computation.
	EncInfo struct {
		// Names of the recipes, indexed by recipe number. Index 0 is the
		// unencoded sentinel.
		Names []string

		// Sizes in bytes per recipe.
		Sizes []CodeOffset

		// BranchRange is the reach of a short branch in bytes, 0 when the
		// recipe is not a branch.
		BranchRange []CodeOffset

		// Wider maps a branch recipe to the next longer-reach recipe that
		// takes the same encoding bits, 0 when there is none.
		Wider []int
	}

	// Legalize directs the legalizer how to transform an instruction that
	// could not be encoded. It is the expected outcome for any instruction
	// the target does not implement directly, returned as an error value.
	Legalize int8
)

const (
	// Expand replaces the instruction with a sequence of simpler ones.
	Expand Legalize = iota
	// Narrow splits controlled values into target-sized halves.
	Narrow
)

// NewEncoding makes an encoding from a recipe number and encoding bits.
// Recipe 0 is reserved for the unencoded sentinel.
func NewEncoding(recipe, bits uint16) Encoding {
	return Encoding{recipe: recipe, bits: bits}
}

func (e Encoding) Recipe() int  { return int(e.recipe) }
func (e Encoding) Bits() uint16 { return e.bits }

// IsLegal reports whether the encoding is a real recipe rather than the
// unencoded default.
func (e Encoding) IsLegal() bool { return e.recipe != 0 }

func (e Encoding) String() string {
	if !e.IsLegal() {
		return "-"
	}

	return fmt.Sprintf("%d#%02x", e.recipe, e.bits)
}

func (e Encoding) TlogAppend(b []byte) []byte {
	var enc tlwire.Encoder

	if !e.IsLegal() {
		return enc.AppendNil(b)
	}

	return enc.AppendFormat(b, "%d#%02x", e.recipe, e.bits)
}

// Bytes is the encoded size of an instruction, 0 for unencoded ones.
func (i *EncInfo) Bytes(e Encoding) CodeOffset {
	if !e.IsLegal() {
		return 0
	}

	return i.Sizes[e.recipe]
}

// WiderBranch re-encodes a branch with the next longer-reach recipe.
// Reports false when the encoding is already the widest one.
func (i *EncInfo) WiderBranch(e Encoding) (Encoding, bool) {
	if !e.IsLegal() || i.Wider[e.recipe] == 0 {
		return Encoding{}, false
	}

	return NewEncoding(uint16(i.Wider[e.recipe]), e.bits), true
}

// DisplayEnc renders an encoding with its recipe name.
func (i *EncInfo) DisplayEnc(e Encoding) string {
	if !e.IsLegal() {
		return "-"
	}

	return fmt.Sprintf("%s#%02x", i.Names[e.recipe], e.Bits())
}

func (l Legalize) Error() string {
	return "legalize: " + l.String()
}

func (l Legalize) String() string {
	switch l {
	case Expand:
		return "expand"
	case Narrow:
		return "narrow"
	}

	return "badaction"
}
