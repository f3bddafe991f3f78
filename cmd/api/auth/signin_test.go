package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCheckDemoCredentials(t *testing.T) {
	testCases := []struct {
		name       string
		userID     string
		password   string
		wantErr    error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "both blank",
			wantErr:    ErrMissingCredentials,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Please enter both User ID and Password",
		},
		{
			name:       "blank password",
			userID:     "demo",
			password:   "   ",
			wantErr:    ErrMissingCredentials,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Please enter both User ID and Password",
		},
		{
			name:       "wrong password",
			userID:     "demo",
			password:   "hunter2",
			wantErr:    ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid User ID or Password. Please try again.",
		},
		{
			name:       "wrong user",
			userID:     "admin",
			password:   "demo",
			wantErr:    ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid User ID or Password. Please try again.",
		},
		{
			name:       "case sensitive",
			userID:     "Demo",
			password:   "demo",
			wantErr:    ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid User ID or Password. Please try again.",
		},
		{
			name:       "demo account",
			userID:     "demo",
			password:   "demo",
			wantStatus: http.StatusOK,
			wantMsg:    "Sign in successful! Redirecting to chat...",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := CheckDemoCredentials(testCase.userID, testCase.password)
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected error %v, got %v", testCase.wantErr, err)
			}
			if got := StatusFor(err); got != testCase.wantStatus {
				t.Fatalf("expected status %d, got %d", testCase.wantStatus, got)
			}
			if got := MessageFor(err); got != testCase.wantMsg {
				t.Fatalf("expected message %q, got %q", testCase.wantMsg, got)
			}
		})
	}
}

func TestAbortWithUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)
	ginCtx.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	AbortWithUnauthorized(ginCtx, ErrInvalidCredentials)

	if !ginCtx.IsAborted() {
		t.Fatalf("expected request to be aborted")
	}
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, recorder.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body["error"] != MsgInvalidCredentials {
		t.Fatalf("expected error message %q, got %q", MsgInvalidCredentials, body["error"])
	}
	if body["code"] != "invalid_credentials" {
		t.Fatalf("expected code %q, got %q", "invalid_credentials", body["code"])
	}
}
