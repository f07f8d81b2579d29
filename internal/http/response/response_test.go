package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorUsesMatchingHTTPStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[int]int{
		CodeBadRequest:      http.StatusBadRequest,
		CodeUnauthorized:    http.StatusUnauthorized,
		CodeConflict:        http.StatusConflict,
		CodeTooManyRequests: http.StatusTooManyRequests,
		777:                 http.StatusInternalServerError,
	}
	for code, want := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("request_id", "req-1")
		Error(c, code, "boom")

		if w.Code != want {
			t.Fatalf("code %d: expected http %d, got %d", code, want, w.Code)
		}
		var body struct {
			StatusCode int               `json:"status_code"`
			Msg        string            `json:"msg"`
			Data       map[string]string `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if body.StatusCode != code || body.Msg != "boom" || body.Data["request_id"] != "req-1" {
			t.Fatalf("unexpected body: %+v", body)
		}
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	if p.TotalPage != 3 {
		t.Fatalf("expected 3 pages, got %d", p.TotalPage)
	}
	if NewPagination(1, 0, 10).TotalPage != 0 {
		t.Fatalf("zero page size should yield zero pages")
	}
}

func TestFailAbortsAndWrapsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-9")

	appErr := WrapError(CodeConflict, "address exists", nil)
	Fail(c, appErr)

	if !c.IsAborted() {
		t.Fatalf("context should be aborted")
	}
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if appErr.ServerSide() {
		t.Fatalf("plain 409 should not be server side")
	}
	if !WrapError(777, "boom", nil).ServerSide() {
		t.Fatalf("unknown code maps to 500 and should be server side")
	}
	if got := appErr.Error(); got != "[409] address exists" {
		t.Fatalf("unexpected error text: %s", got)
	}
}
