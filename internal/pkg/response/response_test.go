package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func render(fn gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w
}

func TestSuccess(t *testing.T) {
	w := render(func(c *gin.Context) { Success(c, http.StatusOK, []int{1, 2}) })

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[1,2]}`, w.Body.String())
}

func TestError(t *testing.T) {
	w := render(func(c *gin.Context) { Error(c, http.StatusNotFound, CodeNotFound, "Recipe not found") })

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"Recipe not found"}}`, w.Body.String())
}

func TestValidation(t *testing.T) {
	w := render(func(c *gin.Context) { Validation(c, map[string]string{"title": "Recipe title is required"}) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{
		"code":"VALIDATION_ERROR",
		"message":"Validation failed",
		"details":{"title":"Recipe title is required"}}}`, w.Body.String())
}

func TestAbortStopsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	reached := false
	router.GET("/", func(c *gin.Context) {
		Abort(c, http.StatusInternalServerError, CodeInternal, "Internal Server Error")
	}, func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, reached)
}
