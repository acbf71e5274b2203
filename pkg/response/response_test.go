package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine/backoffice/pkg/orm"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOKCarriesNullError(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]any{"id": 1})

	body := decode(t, rec)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["error"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestOKWithNilData(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, nil)

	assert.JSONEq(t, `{"success":true,"data":null,"error":null}`, rec.Body.String())
}

func TestFailUsesCodeTwo(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusBadRequest, "Não foi possivel deletar o banner.")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		`{"success":false,"data":null,"error":{"code":2,"error_message":"Não foi possivel deletar o banner."}}`,
		rec.Body.String())
}

func TestValidationFailedIncludesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationFailed(rec, "Validation failed.", map[string]string{"title": "title is required."})

	body := decode(t, rec)
	errObj := body["error"].(map[string]any)
	assert.EqualValues(t, CodeFailure, errObj["code"])
	assert.Equal(t, "title is required.", errObj["fields"].(map[string]any)["title"])
}

func TestPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []int{1, 2}, orm.Pagination{Page: 1, Limit: 2, Total: 5, LastPage: 3})

	body := decode(t, rec)
	data := body["data"].(map[string]any)
	assert.Len(t, data["items"], 2)
	assert.EqualValues(t, 3, data["pagination"].(map[string]any)["last_page"])
}
