package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, srv *Server, body string) (*http.Response, TranslateResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/translate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var resp TranslateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Result(), resp
}

func TestTranslateSuccess(t *testing.T) {
	srv := NewServer(":0", nil)
	body, err := json.Marshal(TranslateRequest{
		Code: "public class Main { public static void main(String[] args) { int x = 2; if (x < 3) { System.out.println(x); } } }",
	})
	require.NoError(t, err)

	res, resp := post(t, srv, string(body))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Errors)
	assert.Contains(t, resp.TranslatedCode, "print(x)")
}

func TestTranslateFailure(t *testing.T) {
	srv := NewServer(":0", nil)
	body, err := json.Marshal(TranslateRequest{
		Code: "public class Main { public static void main(String[] args) { y = 5; } }",
	})
	require.NoError(t, err)

	res, resp := post(t, srv, string(body))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.False(t, resp.Success)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "not declared")
	assert.Empty(t, resp.TranslatedCode)
	assert.Contains(t, resp.Message, "error")
}

func TestTranslateBadBody(t *testing.T) {
	srv := NewServer(":0", nil)
	res, resp := post(t, srv, "{not json")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "invalid request body")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := NewServer(":0", nil)
	req := httptest.NewRequest(http.MethodGet, "/translate", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := NewServer(":0", nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "ok"))
}
