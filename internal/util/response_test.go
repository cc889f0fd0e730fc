package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"learning_buddy_backend/internal/engine"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid input", engine.InvalidInput("top_n must not be negative"), http.StatusBadRequest},
		{"unknown question", fmt.Errorf("%w: interest question 9", ErrQuestionNotFound), http.StatusBadRequest},
		{"unknown option", ErrOptionNotFound, http.StatusBadRequest},
		{"unknown course", engine.NotFound("course %d", 7), http.StatusNotFound},
		{"missing user", ErrUserNotFound, http.StatusNotFound},
		{"missing row", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", ErrPermissionDenied, http.StatusForbidden},
		{"duplicate email", ErrEmailRegistered, http.StatusConflict},
		{"wrong stage", ErrOnboardingStage, http.StatusConflict},
		{"catalog missing", ErrCatalogNotLoaded, http.StatusServiceUnavailable},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tc.err)

			assert.Equal(t, tc.code, w.Code)
			var body Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestParseOptionalInt(t *testing.T) {
	n, err := ParseOptionalInt("", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = ParseOptionalInt("3", 7)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseOptionalInt("tiga", 7)
	assert.Error(t, err)
}
