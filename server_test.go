package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/claims_backend/utils"
	"github.com/gin-gonic/gin"
)

func TestSplitAndTrim(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"https://a.example.com", []string{"https://a.example.com"}},
		{"https://a.example.com, https://b.example.com ,", []string{"https://a.example.com", "https://b.example.com"}},
		{" , ,x", []string{"x"}},
	}
	for _, tc := range cases {
		if got := splitAndTrim(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitAndTrim(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{utils.ErrUnauthenticated, http.StatusUnauthorized},
		{utils.ForbiddenError("claim belongs to another user"), http.StatusForbidden},
		{utils.ErrorRecordNotFound, http.StatusNotFound},
		{utils.ValidationError("amount must be at least 0.01"), http.StatusBadRequest},
		{utils.InvalidTransitionError("cannot move pending to approved_finance"), http.StatusConflict},
		{utils.ConflictError("expense status changed concurrently"), http.StatusConflict},
		{errors.New("mysql went away"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		respondError(c, tc.err)
		if w.Code != tc.want {
			t.Errorf("respondError(%v) status = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestRespondBindError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("tag failures carry field detail", func(t *testing.T) {
		var input struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"aye"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		err := c.ShouldBindJSON(&input)
		if err == nil {
			t.Fatal("expected a binding error")
		}
		respondBindError(c, err)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		var body struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if body.Fields["Password"] != "required" {
			t.Errorf("fields = %v, want Password required", body.Fields)
		}
	})

	t.Run("malformed json is generic", func(t *testing.T) {
		var input struct {
			Username string `json:"username" binding:"required"`
		}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":`))
		c.Request.Header.Set("Content-Type", "application/json")

		err := c.ShouldBindJSON(&input)
		if err == nil {
			t.Fatal("expected a binding error")
		}
		respondBindError(c, err)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if _, ok := body["fields"]; ok {
			t.Error("malformed json should not produce field detail")
		}
		if body["error"] != "invalid request body" {
			t.Errorf("error = %v, want invalid request body", body["error"])
		}
	})
}
