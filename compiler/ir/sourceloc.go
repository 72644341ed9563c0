package ir

import "fmt"

type (
	// SourceLoc points into the original source the function was compiled
	// from. It is preserved per instruction, never interpreted here.
	SourceLoc uint32
)

const NoSourceLoc SourceLoc = 0

func (l SourceLoc) IsDefault() bool { return l == NoSourceLoc }

func (l SourceLoc) String() string {
	if l.IsDefault() {
		return "@-"
	}

	return fmt.Sprintf("@%04x", uint32(l))
}
