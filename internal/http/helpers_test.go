package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/dberr"
	"github.com/mrlokans/catalog/internal/entities"
)

func TestRespondStoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing key", dberr.Wrap("UpdateTitle", dberr.Missing("title")), http.StatusBadRequest},
		{"not found", dberr.Wrap("GetTitle", dberr.NotFound("title", entities.MustKey(3))), http.StatusNotFound},
		{"unresolved", dberr.Wrap("InsertTitle", fmt.Errorf("list %q: %w", "x", dberr.ErrUnresolvedReference)), http.StatusUnprocessableEntity},
		{"closed", dberr.Wrap("GetTitle", dberr.ErrClosed), http.StatusServiceUnavailable},
		{"consistency", dberr.Wrap("GetTitle", dberr.ErrInternalConsistency), http.StatusInternalServerError},
		{"storage", dberr.Wrap("InsertTitle", errors.New("disk I/O error")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondStoreError(c, zap.NewNop(), tt.err, "test")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestParseKeyParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tt := range []struct {
		param string
		ok    bool
	}{
		{"12", true},
		{"0", false},
		{"-4", false},
		{"x", false},
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: tt.param}}

		key, ok := parseKeyParam(c, "id")
		assert.Equal(t, tt.ok, ok, tt.param)
		assert.Equal(t, tt.ok, key.IsAssigned(), tt.param)
		if !ok {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}
