package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Resource: "provider", ID: "acme"}

	assert.Contains(t, err.Error(), "provider")
	assert.Contains(t, err.Error(), "acme")
	assert.True(t, IsNotFound(err))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "provider", Message: "must not be empty"}

	assert.Contains(t, err.Error(), "provider")
	assert.True(t, IsValidationError(err))

	bare := &ValidationError{Message: "bad input"}
	assert.Equal(t, "validation failed: bad input", bare.Error())
}

func TestAPIErrorStatusMapping(t *testing.T) {
	rateLimited := &APIError{Provider: "openai", StatusCode: 429, Message: "slow down"}
	assert.True(t, IsRateLimited(rateLimited))
	assert.False(t, IsProviderUnavailable(rateLimited))

	unavailable := &APIError{Provider: "openai", StatusCode: 503, Message: "down"}
	assert.True(t, IsProviderUnavailable(unavailable))
	assert.False(t, IsRateLimited(unavailable))

	clientSide := &APIError{Provider: "openai", StatusCode: 401, Message: "no key"}
	assert.False(t, IsRateLimited(clientSide))
	assert.False(t, IsProviderUnavailable(clientSide))
}

func TestAPIErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := WrapAPI("groq", 0, inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "groq")
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	assert.NoError(t, WrapIO("read", "/tmp/x", nil))
	assert.NoError(t, WrapParse("yaml", "x.yml", nil))
	assert.NoError(t, WrapAPI("openai", 500, nil))
}

func TestWrapIO(t *testing.T) {
	inner := errors.New("permission denied")
	err := WrapIO("write", "/etc/models.yml", inner)

	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "write", ioErr.Operation)
	assert.ErrorIs(t, err, inner)
}

func TestWrapParse(t *testing.T) {
	inner := errors.New("unexpected token")
	err := WrapParse("json", "db.json", inner)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "json", parseErr.Format)
	assert.ErrorIs(t, err, inner)
}
