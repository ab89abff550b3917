package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Jyotish/internal/domain/models"

	"github.com/labstack/echo/v4"
)

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"data"`
}

func render(t *testing.T, err error) envelope {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if werr := errorResponse(c, err); werr != nil {
		t.Fatal(werr)
	}
	var env envelope
	if derr := json.Unmarshal(rec.Body.Bytes(), &env); derr != nil {
		t.Fatal(derr)
	}
	return env
}

func TestErrorResponseCodedStatuses(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{models.CodeInvalidDate, http.StatusBadRequest},
		{models.CodeInvalidTime, http.StatusBadRequest},
		{models.CodeInvalidCoordinates, http.StatusBadRequest},
		{models.CodeAmbiguousTimezone, http.StatusUnprocessableEntity},
		{models.CodeEphemerisRange, http.StatusUnprocessableEntity},
		{models.CodeAscendantUndefined, http.StatusUnprocessableEntity},
		{models.CodeRangeTooLarge, http.StatusRequestEntityTooLarge},
		{models.CodeCancelled, http.StatusRequestTimeout},
	}
	for _, tc := range cases {
		env := render(t, models.NewCodedError(tc.code, "boom"))
		if env.Status != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.code, env.Status, tc.status)
		}
		if len(env.Data) != 1 || env.Data[0].Code != tc.code {
			t.Fatalf("%s: data = %+v", tc.code, env.Data)
		}
	}
}

func TestErrorResponseWrappedCoded(t *testing.T) {
	err := models.WrapCoded(models.CodeRangeTooLarge, "scan span too wide", errors.New("18264 days"))
	env := render(t, err)
	if env.Status != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", env.Status)
	}
	if env.Data[0].Message != "scan span too wide" {
		t.Fatalf("message = %q", env.Data[0].Message)
	}
}

func TestErrorResponseUnknownCode(t *testing.T) {
	env := render(t, models.NewCodedError("SOMETHING_NEW", "boom"))
	if env.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", env.Status)
	}
}

func TestErrorResponsePlainError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := errorResponse(c, errors.New("disk on fire")); err != nil {
		t.Fatal(err)
	}
	var env struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", env.Status)
	}
}
