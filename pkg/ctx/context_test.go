package ctx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/vitrine/backoffice/pkg/ctx"
	"github.com/vitrine/backoffice/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.OK(map[string]any{"id": 1})
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	env := decode(t, rec)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestParamUint(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/banners/{id}", appctx.Wrap(func(c *appctx.Context) {
		id, ok := c.ParamUint("id")
		if !ok {
			c.Fail(http.StatusBadRequest, "bad id")
			return
		}
		c.OK(id)
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/banners/7", nil))
	assert.JSONEq(t, `{"success":true,"data":7,"error":null}`, rec.Body.String())

	for _, bad := range []string{"0", "abc", "-1"} {
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/banners/"+bad, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestQueryInt(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		assert.Equal(t, 3, c.QueryInt("page", 1))
		assert.Equal(t, 15, c.QueryInt("limit", 15))
		assert.Equal(t, 1, c.QueryInt("status", 1))
		c.OK(nil)
	})(rec, httptest.NewRequest(http.MethodGet, "/?page=3&status=x", nil))
}

func TestBindJSONValid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Promo"}`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Title string `json:"title" validate:"required"`
		}
		require.True(t, c.BindJSON(&input))
		assert.Equal(t, "Promo", input.Title)
		c.OK(nil)
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBindJSONValidationFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":""}`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Title string `json:"title" validate:"required"`
		}
		assert.False(t, c.BindJSON(&input))
	})(rec, req)

	env := decode(t, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.CodeFailure, env.Error.Code)
	assert.Contains(t, env.Error.Fields, "title")
}

func TestBindJSONMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct{}
		assert.False(t, c.BindJSON(&input))
	})(rec, req)

	env := decode(t, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Empty(t, env.Error.Fields)
}

func TestFailWith(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.FailWith(errors.New("boom"), "Não foi possivel salvar o Banner.")
	})(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	env := decode(t, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Não foi possivel salvar o Banner.", env.Error.Message)
}

func TestBlob(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Blob(http.StatusOK, "image/png", []byte{1, 2, 3})
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte{1, 2, 3}, rec.Body.Bytes())
}
