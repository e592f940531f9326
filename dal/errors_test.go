package dal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsFieldNotFoundErr(t *testing.T) {
	assert := require.New(t)

	assert.True(IsFieldNotFoundErr(FieldNotFound))
	assert.False(IsFieldNotFoundErr(TypeMismatch))
	assert.False(IsFieldNotFoundErr(errors.New(`Field not found`)))
}

func TestIsTypeMismatchErr(t *testing.T) {
	assert := require.New(t)

	assert.True(IsTypeMismatchErr(TypeMismatch))
	assert.False(IsTypeMismatchErr(FieldNotFound))
	assert.False(IsTypeMismatchErr(nil))
}
