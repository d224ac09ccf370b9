package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/unilink/unilink/internal/app/models/dto"
)

func testContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantID int64
		wantOK bool
	}{
		{"valid id", "42", 42, true},
		{"zero rejected", "0", 0, false},
		{"negative rejected", "-3", 0, false},
		{"non numeric rejected", "abc", 0, false},
		{"empty rejected", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext(http.MethodGet, "/test", "")
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			id, ok := parseIDParam(c, "id")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.JSONEq(t, `"Dados inválidos!"`, w.Body.String())
			}
		})
	}
}

func TestBindJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		c, _ := testContext(http.MethodPost, "/test", `{"refresh": "abc"}`)

		var req dto.RefreshRequest
		assert.True(t, bindJSON(c, &req))
		assert.Equal(t, "abc", req.Refresh)
	})

	t.Run("malformed body answers the uniform string", func(t *testing.T) {
		c, w := testContext(http.MethodPost, "/test", `{"refresh": `)

		var req dto.RefreshRequest
		assert.False(t, bindJSON(c, &req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `"Dados inválidos!"`, w.Body.String())
	})
}

func TestSplitFilter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single", "Fintech", []string{"Fintech"}},
		{"multiple", "Fintech;Edtech;Games", []string{"Fintech", "Edtech", "Games"}},
		{"trims and drops empties", " Fintech ; ;Edtech;", []string{"Fintech", "Edtech"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFilter(tt.input))
		})
	}
}
