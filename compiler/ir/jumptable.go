package ir

import "strings"

type (
	// JumpTableData is an ordered sequence of branch destinations consumed
	// by br_table. The length is fixed at creation; entries are overwritten
	// in place. Entries may be NoEbb placeholders until filled in.
	//
	// Whether every stored Ebb exists in the layout is the verifier's
	// business, not checked here.
	JumpTableData struct {
		table []Ebb
	}
)

func NewJumpTableData(size int) JumpTableData {
	t := make([]Ebb, size)

	for i := range t {
		t[i] = NoEbb
	}

	return JumpTableData{table: t}
}

func JumpTableOf(ebbs ...Ebb) JumpTableData {
	return JumpTableData{table: ebbs}
}

// SetEntry overwrites the destination at index i.
// The index must be within the table length.
func (d *JumpTableData) SetEntry(i int, ebb Ebb) {
	d.table[i] = ebb
}

func (d *JumpTableData) Entry(i int) Ebb { return d.table[i] }

func (d *JumpTableData) Len() int { return len(d.table) }

// Entries returns the destinations in table order. The slice aliases the
// table; callers must not keep it across mutations.
func (d *JumpTableData) Entries() []Ebb { return d.table }

func (d *JumpTableData) Clone() JumpTableData {
	return JumpTableData{table: append([]Ebb{}, d.table...)}
}

func (d JumpTableData) String() string {
	var b strings.Builder

	b.WriteString("jump_table ")

	for i, ebb := range d.table {
		if i != 0 {
			b.WriteString(", ")
		}

		if ebb == NoEbb {
			b.WriteByte('0')
		} else {
			b.WriteString(ebb.String())
		}
	}

	return b.String()
}
