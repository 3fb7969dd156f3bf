package cvc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyNextID/cvc-go/pkg/cvc"
	"github.com/MyNextID/cvc-go/pkg/cvc/curve"
)

func TestErrorMatchesOnKind(t *testing.T) {
	_, err := cvc.CombineSecretKeys(make([]byte, 32), scalarBytes(1))
	require.Error(t, err)

	var e *cvc.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "CombineSecretKeys", e.Op)
	assert.Equal(t, cvc.KindInvalidKey1, e.Kind)
	assert.Equal(t, "cvc.CombineSecretKeys: invalid key 1: curve: scalar is zero", err.Error())

	assert.ErrorIs(t, err, cvc.ErrInvalidKey1)
	assert.ErrorIs(t, err, curve.ErrZeroScalar)
	assert.NotErrorIs(t, err, cvc.ErrInvalidKey2)

	wrapped := fmt.Errorf("issuing credential: %w", err)
	assert.ErrorIs(t, wrapped, cvc.ErrInvalidKey1)
	assert.Equal(t, cvc.KindInvalidKey1, cvc.KindOf(wrapped))
}

func TestKindClasses(t *testing.T) {
	tests := []struct {
		kind  cvc.Kind
		class cvc.Class
	}{
		{cvc.KindInvalidParams, cvc.ClassValidation},
		{cvc.KindInvalidKey1, cvc.ClassValidation},
		{cvc.KindInvalidKey2Length, cvc.ClassValidation},
		{cvc.KindInvalidPoint2, cvc.ClassValidation},
		{cvc.KindPoint1AtInfinity, cvc.ClassValidation},
		{cvc.KindResultZero, cvc.ClassArithmetic},
		{cvc.KindResultAtInfinity, cvc.ClassArithmetic},
		{cvc.KindZeroScalar, cvc.ClassArithmetic},
		{cvc.KindInsufficientBuffer, cvc.ClassCapacity},
		{cvc.KindExpansionTooLarge, cvc.ClassCapacity},
		{cvc.KindInputTooLarge, cvc.ClassCapacity},
		{cvc.KindExtractionFailed, cvc.ClassPrimitive},
		{cvc.KindResultConversionFailed, cvc.ClassPrimitive},
		{cvc.KindExpandFailed, cvc.ClassPrimitive},
		{cvc.KindHashToFieldFailed, cvc.ClassPrimitive},
		{cvc.KindRandomFailed, cvc.ClassPrimitive},
		{cvc.KindUnknown, cvc.ClassUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.class, tc.kind.Class())
		})
	}
}

func TestKindOfForeignError(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, cvc.KindUnknown, cvc.KindOf(err))
	assert.Equal(t, cvc.KindUnknown, cvc.KindOf(nil))
	assert.False(t, cvc.IsValidationError(err))
	assert.False(t, cvc.IsPrimitiveError(nil))
	assert.Equal(t, "Kind(99)", cvc.Kind(99).String())
}
