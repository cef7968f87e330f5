package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("record not found")

	appErr := ErrNotFound(cause)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.ErrorIs(t, appErr, cause)

	var target *AppError
	require.ErrorAs(t, error(appErr), &target)
	assert.Equal(t, appErr, target)
}

func TestErrorStringIncludesDomainAndCode(t *testing.T) {
	t.Parallel()
	appErr := ErrInvalidStatus("contracts", "Contract is already closed")
	assert.Contains(t, appErr.Error(), "contracts")
	assert.Contains(t, appErr.Error(), string(CodeInvalidStatus))

	wrapped := InternalError(errors.New("dial tcp: refused"))
	assert.Contains(t, wrapped.Error(), "dial tcp: refused")
}

func TestMarshalJSONOmitsInternals(t *testing.T) {
	t.Parallel()
	appErr := InternalError(errors.New("secret db dsn leaked"))

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret db dsn")
	assert.NotContains(t, string(raw), "500")
	assert.Contains(t, string(raw), string(CodeInternalError))
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	t.Parallel()
	appErr := ValidationError(map[string]string{"email": "Must be a valid email address"})

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Must be a valid email address")
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}

func TestSentinelComparisons(t *testing.T) {
	t.Parallel()
	assert.True(t, Is(ErrCannotActOnSelf, ErrCannotActOnSelf))
	assert.False(t, Is(ErrCannotActOnSelf, ErrInvalidUserType))
}
