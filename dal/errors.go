package dal

import (
	"errors"
)

var FieldNotFound = errors.New(`Field not found`)
var TypeMismatch = errors.New(`Type mismatch`)

func IsFieldNotFoundErr(err error) bool {
	return (err == FieldNotFound)
}

func IsTypeMismatchErr(err error) bool {
	return (err == TypeMismatch)
}
