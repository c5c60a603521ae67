package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("lookup: %w", Wrap(KindUnavailable, "provider unreachable", cause).WithOp("geocode.search"))

	assert.Equal(t, KindUnavailable, GetKind(err))
	assert.True(t, Is(err, KindUnavailable))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "lookup: geocode.search: provider unreachable", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("x").HTTPStatus())
	assert.Equal(t, http.StatusServiceUnavailable, Unavailable("x").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, New(KindInternal, "x").HTTPStatus())
	assert.Equal(t, KindUnknown, GetKind(errors.New("plain")))
}
