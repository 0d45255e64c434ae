// Package errs defines the sentinel errors shared across softmag packages.
//
// Errors are grouped into three kinds matching the failure modes of the
// material models:
//
//   - ErrInvalidData: malformed construction or fitting input
//   - ErrOutOfRange: out-of-domain evaluation input
//   - ErrBadFit: underdetermined or ill-conditioned regression
//
// Every specific sentinel wraps its kind root, so both precise and
// kind-level matching work with errors.Is. Call sites add the violating
// values with fmt.Errorf("...: %w", sentinel).
package errs
