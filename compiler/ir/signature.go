package ir

import (
	"fmt"
	"strings"
)

type (
	// Signature describes the parameters and results of a function along
	// with its calling convention.
	Signature struct {
		Params  []AbiParam
		Returns []AbiParam

		CallConv CallConv
	}

	AbiParam struct {
		Type    Type
		Purpose ArgumentPurpose
	}

	CallConv int8

	// ArgumentPurpose marks parameters with a special meaning for the ABI.
	ArgumentPurpose int8
)

const (
	// Fast is the baseline calling convention.
	Fast CallConv = iota
	Cold
	Native
)

const (
	PurposeNormal ArgumentPurpose = iota
	PurposeStructReturn
	PurposeLink
	PurposeFramePointer
	PurposeCalleeSaved
	PurposeVMContext
	PurposeSignatureID
	PurposeStackLimit
)

func NewSignature(cc CallConv) Signature {
	return Signature{CallConv: cc}
}

func (s *Signature) Clear(cc CallConv) {
	s.Params = s.Params[:0]
	s.Returns = s.Returns[:0]
	s.CallConv = cc
}

func (s *Signature) AddParam(p AbiParam) int {
	s.Params = append(s.Params, p)
	return len(s.Params) - 1
}

func (s *Signature) AddReturn(p AbiParam) int {
	s.Returns = append(s.Returns, p)
	return len(s.Returns) - 1
}

// SpecialParamIndex finds the last parameter with the given purpose.
// Returns -1 if there is none.
func (s *Signature) SpecialParamIndex(purpose ArgumentPurpose) int {
	for i := len(s.Params) - 1; i >= 0; i-- {
		if s.Params[i].Purpose == purpose {
			return i
		}
	}

	return -1
}

func (s *Signature) Clone() Signature {
	return Signature{
		Params:   append([]AbiParam{}, s.Params...),
		Returns:  append([]AbiParam{}, s.Returns...),
		CallConv: s.CallConv,
	}
}

func (s Signature) String() string {
	var b strings.Builder

	b.WriteByte('(')

	for i, p := range s.Params {
		if i != 0 {
			b.WriteString(", ")
		}

		b.WriteString(p.String())
	}

	b.WriteByte(')')

	if len(s.Returns) != 0 {
		b.WriteString(" -> ")

		for i, p := range s.Returns {
			if i != 0 {
				b.WriteString(", ")
			}

			b.WriteString(p.String())
		}
	}

	if s.CallConv != Fast {
		b.WriteByte(' ')
		b.WriteString(s.CallConv.String())
	}

	return b.String()
}

func (p AbiParam) String() string {
	if p.Purpose == PurposeNormal {
		return p.Type.String()
	}

	return fmt.Sprintf("%v %v", p.Type, p.Purpose)
}

func (cc CallConv) String() string {
	switch cc {
	case Fast:
		return "fast"
	case Cold:
		return "cold"
	case Native:
		return "native"
	}

	return "badcc"
}

func (p ArgumentPurpose) String() string {
	switch p {
	case PurposeNormal:
		return "normal"
	case PurposeStructReturn:
		return "sret"
	case PurposeLink:
		return "link"
	case PurposeFramePointer:
		return "fp"
	case PurposeCalleeSaved:
		return "csr"
	case PurposeVMContext:
		return "vmctx"
	case PurposeSignatureID:
		return "sigid"
	case PurposeStackLimit:
		return "stack_limit"
	}

	return "badpurpose"
}
