package ir

import "github.com/lowlang/low/compiler/isa"

type (
	// TargetIsa is the target instruction set the core asks to pick
	// encodings. Implemented per target under compiler/isa.
	TargetIsa interface {
		Name() string

		// Encode selects an encoding for an instruction, or returns an
		// isa.Legalize directive as the error when the instruction is not
		// directly encodable.
		Encode(f *Function, data *InstructionData, ctrlTyp Type) (isa.Encoding, error)

		EncInfo() *isa.EncInfo
	}
)
