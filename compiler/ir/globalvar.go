package ir

import "fmt"

type (
	// GlobalVarData describes where the address of a global variable comes
	// from: an offset into the VM context, a dereference of another global,
	// or a (possibly preemptible) symbol resolved at link time.
	GlobalVarData struct {
		Kind GlobalVarKind

		Base   GlobalVar // Deref only
		Offset int32     // VMContext, Deref

		Name ExternalName // Sym only
	}

	GlobalVarKind int8
)

const (
	GlobalVMContext GlobalVarKind = iota
	GlobalDeref
	GlobalSym
)

func VMContextGlobal(offset int32) GlobalVarData {
	return GlobalVarData{Kind: GlobalVMContext, Offset: offset}
}

func DerefGlobal(base GlobalVar, offset int32) GlobalVarData {
	return GlobalVarData{Kind: GlobalDeref, Base: base, Offset: offset}
}

func SymGlobal(name ExternalName) GlobalVarData {
	return GlobalVarData{Kind: GlobalSym, Name: name}
}

func (d GlobalVarData) String() string {
	switch d.Kind {
	case GlobalVMContext:
		return fmt.Sprintf("vmctx%+d", d.Offset)
	case GlobalDeref:
		return fmt.Sprintf("deref(%v)%+d", d.Base, d.Offset)
	case GlobalSym:
		return fmt.Sprintf("globalsym %v", d.Name)
	}

	return "badglobal"
}
