package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"goaltracker/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// respondingRouter wires the responder around a handler failing with err
func respondingRouter(isProd bool, err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorResponder(isProd))
	r.GET("/fail", func(c *gin.Context) {
		apperr.Abort(c, err)
	})
	return r
}

func getFail(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	return w
}

func TestErrorResponder_TypedFailure(t *testing.T) {
	w := getFail(respondingRouter(true, apperr.NotFound("goal not found")))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "goal not found", body["message"])
}

func TestErrorResponder_UntypedFailureDefaultsTo500(t *testing.T) {
	w := getFail(respondingRouter(true, errors.New("boom")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body["message"])
}

func TestErrorResponder_StackOnlyOutsideProduction(t *testing.T) {
	failure := apperr.BadRequest("Invalid User Data").WithCause(errors.New("duplicate entry"))

	// Outside production the underlying detail is echoed
	w := getFail(respondingRouter(false, failure))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "stack")
	assert.Contains(t, body["stack"], "duplicate entry")

	// In production it is omitted
	w = getFail(respondingRouter(true, failure))
	body = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "stack")
}

func TestErrorResponder_NoErrorPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorResponder(true))
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "fine"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fine")
}
