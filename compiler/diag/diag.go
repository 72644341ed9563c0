// Package diag renders compilation failures for humans.
package diag

import (
	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/lowlang/low/compiler/ir"
	"github.com/lowlang/low/compiler/verifier"
)

// PrettyVerifierError renders a verifier finding together with the function
// it was found in. When the finding is instruction-scoped the offending
// instruction is rendered on its own line before the full dump.
func PrettyVerifierError(f *ir.Function, tisa ir.TargetIsa, verr *verifier.Error) string {
	b := []byte(verr.Error())

	if inst, ok := verr.Loc.(ir.Inst); ok {
		b = hfmt.Appendf(b, "\n%v: %s\n", inst, f.Dfg.DisplayInst(inst, tisa))
	}

	b = append(b, '\n')
	b = ir.WriteFunction(b, f, tisa)

	return string(b)
}

// PrettyError renders any compilation error. Verifier findings get the
// detailed treatment above, everything else is its own message.
func PrettyError(f *ir.Function, tisa ir.TargetIsa, err error) string {
	var verr *verifier.Error
	if errors.As(err, &verr) {
		return PrettyVerifierError(f, tisa, verr)
	}

	return err.Error()
}
