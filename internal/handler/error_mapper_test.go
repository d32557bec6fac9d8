package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{model.ErrNotFound, http.StatusNotFound},
		{model.ErrUnauthorized, http.StatusForbidden},
		{model.ErrCapacityExceeded, http.StatusConflict},
		{model.ErrInvalidCode, http.StatusBadRequest},
		{model.ErrAlreadyMember, http.StatusBadRequest},
		{model.ErrPrivateGuild, http.StatusBadRequest},
		{model.ErrOwnerMustDisband, http.StatusBadRequest},
		{model.ErrInvalidTarget, http.StatusBadRequest},
		{model.ErrNotMember, http.StatusBadRequest},
		{model.ErrEmailNotVerified, http.StatusUnauthorized},
		{model.Invalid("password must be at least 6 characters"), http.StatusBadRequest},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusOf(c.err), c.err.Error())
	}

	// 库/驱动错误一律 500
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("dial tcp: connection refused")))
}

func TestFailHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fail(c, errors.New("Error 1045: Access denied for user"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "1045")
	assert.Contains(t, w.Body.String(), "internal error")
}
