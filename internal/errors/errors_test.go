package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("lot %d not found", 4)

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrDuplicateLot))

	wrapped := fmt.Errorf("loading lot: %w", err)
	assert.True(t, Is(wrapped, ErrNotFound))
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
}

func TestTransactionFailed(t *testing.T) {
	err := TransactionFailed("updating transportation", sql.ErrConnDone)

	assert.True(t, Is(err, ErrTransactionFailed))
	assert.True(t, Is(err, sql.ErrConnDone), "cause stays reachable")
	assert.True(t, err.Code.Retryable())
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus())
	assert.Contains(t, err.Error(), "nothing was saved")
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeInvalidQuantity, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeDuplicateLot, http.StatusConflict},
		{CodeConflict, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeTransactionFailed, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), string(tt.code))
	}
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(fmt.Errorf("boom")))
	assert.False(t, CodeInvalidQuantity.Retryable())
}
