package translate

import (
	"github.com/ghetzel/esquery/criteria"
	"github.com/ghetzel/esquery/errs"
	"github.com/ghetzel/esquery/expr"
)

// translateHasValue implements Rule N's HasValue branch: `member.HasValue`
// translates to Exists; negation (`!member.HasValue`) falls out of
// Negate's Missing/Exists symmetry rather than being special-cased here.
func (self *Translator) translateHasValue(mem *expr.Member) (criteria.Criterion, error) {
	target, ok := mem.Target.(*expr.Member)

	if !ok {
		return nil, errs.New(errs.Unsupported, "HasValue must be accessed on a nullable member chain", mem)
	}

	field, _, err := self.fieldOf(target)

	if err != nil {
		return nil, err
	}

	return &criteria.Exists{Field: field}, nil
}
