package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "medreminder/internal/pkg/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad time", appErrors.ErrValidation), http.StatusBadRequest},
		{appErrors.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("%w: confirmation c1", appErrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: already taken", appErrors.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: disk full", appErrors.ErrStore), http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
