package graphql

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloSchema(t *testing.T) graphql.Schema {
	t.Helper()
	schema, err := NewSchema(graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					return "olá", nil
				},
			},
		},
	}))
	require.NoError(t, err)
	return schema
}

func TestHandler(t *testing.T) {
	h := Handler(helloSchema(t))

	tests := []struct {
		name string
		req  *http.Request
		code int
		want string
	}{
		{"post", httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ hello }"}`)), http.StatusOK, "olá"},
		{"get", httptest.NewRequest(http.MethodGet, "/graphql?query=%7B+hello+%7D", nil), http.StatusOK, "olá"},
		{"malformed", httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{`)), http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h(rec, tt.req)
			assert.Equal(t, tt.code, rec.Code)

			var body struct {
				Data   map[string]string `json:"data"`
				Errors []interface{}     `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.want != "" {
				assert.Equal(t, tt.want, body.Data["hello"])
			} else {
				assert.NotEmpty(t, body.Errors)
			}
		})
	}

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodDelete, "/graphql", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
