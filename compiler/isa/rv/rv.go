// Package rv is a small RISC-V flavored target: 32-bit registers, 4-byte
// base recipes and 2-byte compressed ones. It exists to drive the encoding
// and relaxation machinery; it is not a complete RISC-V backend.
package rv

import (
	"github.com/lowlang/low/compiler/ir"
	"github.com/lowlang/low/compiler/isa"
)

type (
	Isa struct {
		encinfo isa.EncInfo
	}
)

// Recipes. 0 is the unencoded sentinel.
const (
	recipeR    = 1 // reg-reg ALU
	recipeI    = 2 // 12-bit immediate ALU, loads
	recipeCI   = 3 // compressed 6-bit immediate
	recipeB    = 4 // conditional branch
	recipeCB   = 5 // compressed conditional branch
	recipeJ    = 6 // jump and link
	recipeCRet = 7 // compressed return
	recipeS    = 8 // store
)

func New() *Isa {
	return &Isa{
		encinfo: isa.EncInfo{
			Names:       []string{"-", "R", "I", "CI", "B", "CB", "J", "Cret", "S"},
			Sizes:       []isa.CodeOffset{0, 4, 4, 2, 4, 2, 4, 2, 4},
			BranchRange: []isa.CodeOffset{0, 0, 0, 0, 4096, 256, 1 << 20, 0, 0},
			Wider:       []int{0, 0, 0, 0, 0, recipeB, 0, 0, 0},
		},
	}
}

func (a *Isa) Name() string { return "rv32" }

func (a *Isa) EncInfo() *isa.EncInfo { return &a.encinfo }

// Encode picks a recipe for the instruction, or returns a legalize
// directive when nothing fits. I64 asks for narrowing into 32-bit halves,
// everything else unencodable asks for expansion.
func (a *Isa) Encode(f *ir.Function, d *ir.InstructionData, ctrl ir.Type) (isa.Encoding, error) {
	switch d.Opcode {
	case ir.OpIconst:
		return a.encodeIconst(d, ctrl)
	case ir.OpIadd, ir.OpIsub, ir.OpImul, ir.OpIcmp:
		if ctrl == ir.I64 {
			return isa.Encoding{}, isa.Narrow
		}
		if ctrl != ir.I32 {
			return isa.Encoding{}, isa.Expand
		}

		return isa.NewEncoding(recipeR, funct(d.Opcode)), nil
	case ir.OpIaddImm:
		if ctrl == ir.I64 {
			return isa.Encoding{}, isa.Narrow
		}
		if ctrl != ir.I32 || !fits(d.Imm, 12) {
			return isa.Encoding{}, isa.Expand
		}

		return isa.NewEncoding(recipeI, funct(ir.OpIadd)), nil
	case ir.OpBrz, ir.OpBrnz:
		return isa.NewEncoding(recipeCB, funct(d.Opcode)), nil
	case ir.OpJump, ir.OpCall:
		return isa.NewEncoding(recipeJ, 0), nil
	case ir.OpReturn:
		return isa.NewEncoding(recipeCRet, 0), nil
	case ir.OpStackLoad:
		if ctrl == ir.I64 {
			return isa.Encoding{}, isa.Narrow
		}
		if ctrl != ir.I32 || !fits(d.Imm, 12) {
			return isa.Encoding{}, isa.Expand
		}

		return isa.NewEncoding(recipeI, 0x03), nil
	case ir.OpStackStore:
		if !fits(d.Imm, 12) {
			return isa.Encoding{}, isa.Expand
		}

		return isa.NewEncoding(recipeS, 0x23), nil
	}

	// br_table, heap_addr, global_addr and the rest expand into simpler
	// instructions first.
	return isa.Encoding{}, isa.Expand
}

func (a *Isa) encodeIconst(d *ir.InstructionData, ctrl ir.Type) (isa.Encoding, error) {
	if ctrl == ir.I64 {
		return isa.Encoding{}, isa.Narrow
	}
	if ctrl != ir.I32 {
		return isa.Encoding{}, isa.Expand
	}

	switch {
	case fits(d.Imm, 6):
		return isa.NewEncoding(recipeCI, 0x01), nil
	case fits(d.Imm, 12):
		return isa.NewEncoding(recipeI, 0x13), nil
	default:
		// Needs a lui+addi pair.
		return isa.Encoding{}, isa.Expand
	}
}

func funct(op ir.Opcode) uint16 {
	switch op {
	case ir.OpIadd:
		return 0x00
	case ir.OpIsub:
		return 0x20
	case ir.OpImul:
		return 0x01
	case ir.OpIcmp:
		return 0x02
	case ir.OpBrz:
		return 0x63
	case ir.OpBrnz:
		return 0xe3
	}

	return 0
}

func fits(x int64, bits int) bool {
	lim := int64(1) << (bits - 1)

	return x >= -lim && x < lim
}
