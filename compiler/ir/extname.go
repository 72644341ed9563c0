package ir

import "fmt"

type (
	// ExternalName is a symbolic identifier resolved outside the function:
	// either a test-case name or a (namespace, index) pair assigned by the
	// embedding environment.
	ExternalName struct {
		Name string

		User      bool
		Namespace uint32
		Index     uint32
	}

	// ExtFuncData describes an external function import: how to call it and
	// how to find its address.
	ExtFuncData struct {
		Name      ExternalName
		Signature SigRef
	}
)

func TestcaseName(name string) ExternalName {
	return ExternalName{Name: name}
}

func UserName(ns, index uint32) ExternalName {
	return ExternalName{User: true, Namespace: ns, Index: index}
}

func (n ExternalName) String() string {
	if n.User {
		return fmt.Sprintf("u%d:%d", n.Namespace, n.Index)
	}

	return "%" + n.Name
}

func (d ExtFuncData) String() string {
	return fmt.Sprintf("%v %v", d.Signature, d.Name)
}
