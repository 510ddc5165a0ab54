package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrAssessmentNotFound))
	assert.Equal(t, KindInvalidState, KindOf(ErrAssessmentNotInProgress))
	assert.Equal(t, KindValidation, KindOf(ValidationError("bad %s", "input")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", ErrTemplateNotFound)))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(ErrResultNotAvailable))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrAssessmentFinished))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrInvalidOption))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("db down")))
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err     error
		status  int
		message string
	}{
		{ErrInProgressNotFound, http.StatusNotFound, "no assessment in progress"},
		{ErrAssessmentNotInProgress, http.StatusBadRequest, "cannot answer a completed test"},
		{errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		RespondError(c, tc.err)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.status, w.Code)
		assert.Equal(t, tc.status, resp.Code)
		assert.Equal(t, tc.message, resp.Error)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	secret := "unit-test-secret-that-is-long-enough"
	tok, err := GenerateJWT("emp-7", RoleGrader, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "emp-7", claims.EmployeeID)
	assert.Equal(t, RoleGrader, claims.Role)

	_, err = ParseJWT(tok, "another-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT("emp-7", RoleGrader, secret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, secret)
	assert.Error(t, err)
}

func TestParsePage(t *testing.T) {
	page, limit := ParsePage("", "", 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = ParsePage("3", "500", 100)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)

	page, limit = ParsePage("-2", "abc", 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}
