package ir

type (
	// Type is a value type, the domain of the controlling type variable
	// that disambiguates polymorphic instructions during encoding.
	Type int8
)

const (
	VOID Type = iota
	B1
	I8
	I16
	I32
	I64
	F32
	F64
)

func (t Type) Bits() int {
	switch t {
	case B1:
		return 1
	case I8:
		return 8
	case I16:
		return 16
	case I32, F32:
		return 32
	case I64, F64:
		return 64
	}

	return 0
}

func (t Type) String() string {
	switch t {
	case VOID:
		return "void"
	case B1:
		return "b1"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	}

	return "badtype"
}
