package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connecta_backend/internal/services/dto"
)

func TestValidateRegisterRequest(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&dto.RegisterRequest{
		Email:    "fred@test.io",
		Password: "Password1!",
		FullName: "Fred Freelancer",
		UserType: "freelancer",
	})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&dto.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
		FullName: "Fred",
		UserType: "freelancer",
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
	assert.NotContains(t, vErr.Errors, "Email")
}

func TestValidateUserTypeRule(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&dto.RegisterRequest{
		Email:    "fred@test.io",
		Password: "Password1!",
		FullName: "Fred Freelancer",
		UserType: "superuser",
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "userType")
}

func TestValidatePaymentType(t *testing.T) {
	t.Parallel()
	v := New()

	req := &dto.CreatePaymentRequest{
		PayeeID:     "8cbbdd11-2a4f-4c2f-9c38-1b6ead62f185",
		Amount:      100,
		PaymentType: "tip",
	}
	assert.Error(t, v.Validate(req))

	req.PaymentType = "milestone"
	assert.NoError(t, v.Validate(req))
}
