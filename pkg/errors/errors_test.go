package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/aviaryworks/fieldguide/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "species",
			Query:    "Unknown Species XYZ",
		}
		assert.Equal(t, `species matching "Unknown Species XYZ" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("record", "dodo")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("record", "dodo")
		wrapped := errors.Join(errors.New("merge failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "name",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field name: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid query",
		}
		assert.Equal(t, "validation failed: invalid query", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("limit", 1000, "exceeds maximum")
		assert.Contains(t, err.Error(), "limit")
		assert.Contains(t, err.Error(), "exceeds maximum")
	})
}

func TestAPIError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &pkgerrors.APIError{
			Source:     "gbif",
			StatusCode: 503,
			Message:    "service unavailable",
			Endpoint:   "https://api.gbif.org/v1/species/search",
		}
		assert.Contains(t, err.Error(), "gbif")
		assert.Contains(t, err.Error(), "503")
		assert.True(t, pkgerrors.IsProviderUnavailable(err))
	})

	t.Run("rate limited maps to sentinel", func(t *testing.T) {
		err := pkgerrors.NewAPIError("inat", 429, "too many requests")
		assert.True(t, pkgerrors.IsRateLimited(err))
		assert.False(t, pkgerrors.IsProviderUnavailable(err))
	})

	t.Run("client error maps to nothing", func(t *testing.T) {
		err := pkgerrors.NewAPIError("unesco", 404, "no such dataset")
		assert.False(t, pkgerrors.IsRateLimited(err))
		assert.False(t, pkgerrors.IsProviderUnavailable(err))
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("boom")
		err := pkgerrors.WrapAPI("gbif", 500, base)
		assert.True(t, errors.Is(err, base))
	})
}

func TestTransportError(t *testing.T) {
	base := errors.New("dial tcp: no such host")
	err := pkgerrors.NewTransportError("gbif", base)
	assert.True(t, pkgerrors.IsTransport(err))
	assert.True(t, errors.Is(err, base))
	assert.Contains(t, err.Error(), "gbif")
}

func TestTimeoutError(t *testing.T) {
	err := pkgerrors.NewTimeoutError("fetch", "15s", "species search")
	assert.True(t, pkgerrors.IsTimeout(err))
	assert.Contains(t, err.Error(), "15s")
}

func TestGenerationError(t *testing.T) {
	tests := []struct {
		name     string
		kind     pkgerrors.GenerationKind
		sentinel error
	}{
		{"unauthorized", pkgerrors.GenerationUnauthorized, pkgerrors.ErrAPIKeyRequired},
		{"rate limited", pkgerrors.GenerationRateLimited, pkgerrors.ErrRateLimited},
		{"timeout", pkgerrors.GenerationTimeout, pkgerrors.ErrTimeout},
		{"provider fault", pkgerrors.GenerationProviderFault, pkgerrors.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewGenerationError(tt.kind, "detail", nil)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.Contains(t, err.Error(), tt.kind.String())
		})
	}

	t.Run("kinds are mutually distinguishable", func(t *testing.T) {
		err := pkgerrors.NewGenerationError(pkgerrors.GenerationUnauthorized, "", nil)
		var genErr *pkgerrors.GenerationError
		assert.True(t, errors.As(err, &genErr))
		assert.Equal(t, pkgerrors.GenerationUnauthorized, genErr.Kind)
		assert.False(t, errors.Is(err, pkgerrors.ErrRateLimited))
	})
}

func TestValidationNilWrap(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapValidation("name", nil))
	assert.NoError(t, pkgerrors.WrapAPI("gbif", 500, nil))
	assert.NoError(t, pkgerrors.WrapParse("json", "response", nil))
}
