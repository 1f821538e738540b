package apidocs

import (
	"context"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, doc.Paths.Find("/boards/{id}/categories/{subId}"))
	assert.NotNil(t, doc.Paths.Find("/login"))
}

func serve(mw echo.MiddlewareFunc, path string) *httptest.ResponseRecorder {
	e := echo.New()
	e.Pre(mw)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDoc(t *testing.T) {
	spec, err := Spec(context.Background())
	require.NoError(t, err)

	mw := Doc("/api", spec)

	rec := serve(mw, "/api/apispec.json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"openapi":"3.0.3"`)

	rec = serve(mw, "/api/apidocs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-url="/api/apispec.json"`)

	rec = serve(mw, "/api")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/api/apidocs", rec.Header().Get(echo.HeaderLocation))
}

func TestDoc_Authorizer(t *testing.T) {
	mw := Doc("/api", []byte(`{}`), WithAuthorizer(func(*http.Request) bool { return false }))

	rec := serve(mw, "/api/apispec.json")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoopbackOnly(t *testing.T) {
	for addr, want := range map[string]bool{
		"127.0.0.1:5000":   true,
		"[::1]:5000":       true,
		"192.168.1.2:5000": false,
		"203.0.113.9:443":  false,
		"garbage":          false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/apidocs", nil)
		req.RemoteAddr = addr
		assert.Equal(t, want, LoopbackOnly(req), addr)
	}
}
