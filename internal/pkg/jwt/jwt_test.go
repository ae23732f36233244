package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSETokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	op := Operator{UserID: "u1", Name: "Marina", Role: RoleOperator, CompanyIDs: []string{"c1", "c2"}}

	token, expiresIn, err := svc.GenerateSSEToken(op)
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	got, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, op, got)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	token, _, err := svc.GenerateAccessToken(Operator{UserID: "u1", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(token)
	assert.Error(t, err)
}

func TestOperator_CanAccess(t *testing.T) {
	assert.True(t, Operator{Role: RoleAdmin}.CanAccess("any"))
	op := Operator{Role: RoleOperator, CompanyIDs: []string{"c1"}}
	assert.True(t, op.CanAccess("c1"))
	assert.False(t, op.CanAccess("c2"))
}

func TestOperatorFromContext(t *testing.T) {
	assert.Equal(t, Operator{}, OperatorFromContext(context.Background()))

	ctx := WithOperator(context.Background(), Operator{UserID: "u9", Name: "Paulo"})
	op := OperatorFromContext(ctx)
	assert.Equal(t, "Paulo", op.Signer())
	assert.Equal(t, "u9", Operator{UserID: "u9"}.Signer())
}
