package translate

import "github.com/ghetzel/esquery/errs"

// Error, ErrorKind, and the four error kinds are re-exported from errs so
// callers of this package never need to import errs directly — the same
// "package-local alias over a shared errors package" idiom pivot's own
// dal.FieldNotFound/filter error plumbing uses informally across its
// packages.
type Error = errs.Error
type ErrorKind = errs.Kind

const (
	Unsupported = errs.Unsupported
	Evaluation  = errs.Evaluation
	Argument    = errs.Argument
	DomainRange = errs.DomainRange
)

func IsUnsupported(err error) bool { return errs.IsUnsupported(err) }
func IsEvaluation(err error) bool  { return errs.IsEvaluation(err) }
func IsArgument(err error) bool    { return errs.IsArgument(err) }
func IsDomainRange(err error) bool { return errs.IsDomainRange(err) }
