package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// 데모 전용 계정. 토큰이나 세션을 발급하지 않는다.
const (
	DemoUserID   = "demo"
	DemoPassword = "demo"
)

// 로그인 화면에 그대로 노출되는 문구
const (
	MsgSignInSuccess      = "Sign in successful! Redirecting to chat..."
	MsgMissingCredentials = "Please enter both User ID and Password"
	MsgInvalidCredentials = "Invalid User ID or Password. Please try again."
)

var (
	ErrMissingCredentials = errors.New("missing_credentials")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// CheckDemoCredentials compares the pair against the demo account.
func CheckDemoCredentials(userID, password string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(password) == "" {
		return ErrMissingCredentials
	}
	idOK := subtle.ConstantTimeCompare([]byte(userID), []byte(DemoUserID)) == 1
	pwOK := subtle.ConstantTimeCompare([]byte(password), []byte(DemoPassword)) == 1
	if !idOK || !pwOK {
		return ErrInvalidCredentials
	}
	return nil
}

// StatusFor maps a sign-in error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusUnauthorized
	}
}

// MessageFor returns the user-facing sign-in message for err.
func MessageFor(err error) string {
	switch {
	case err == nil:
		return MsgSignInSuccess
	case errors.Is(err, ErrMissingCredentials):
		return MsgMissingCredentials
	default:
		return MsgInvalidCredentials
	}
}

// AbortWithUnauthorized aborts the request with 401 status and error JSON.
func AbortWithUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": MessageFor(err), "code": err.Error()})
}
