package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/api/response"
)

// timeTokenWindow is the lifetime of one time token. The previous window is
// also accepted so a token minted just before a boundary still works.
const timeTokenWindow = 5 * time.Minute

// APIKeyMiddleware protects internal endpoints. Callers must send the
// configured key in X-API-Key and a current time token (see
// GenerateTimeToken) in X-Time-Token. An empty apiKey rejects every request.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				response.RespondError(w, http.StatusInternalServerError, "unauthorized", "Authentication not loaded")
				return
			}

			key := r.Header.Get("X-API-Key")
			if key == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
				return
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
				return
			}

			token := r.Header.Get("X-Time-Token")
			if token == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
				return
			}
			if !validTimeToken(apiKey, token, time.Now()) {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GenerateTimeToken returns the time token for apiKey in the current window.
func GenerateTimeToken(apiKey string) string {
	return timeToken(apiKey, window(time.Now()))
}

func validTimeToken(apiKey, token string, now time.Time) bool {
	current := window(now)
	for _, w := range []int64{current, current - 1} {
		if hmac.Equal([]byte(token), []byte(timeToken(apiKey, w))) {
			return true
		}
	}
	return false
}

func window(t time.Time) int64 {
	return t.Unix() / int64(timeTokenWindow/time.Second)
}

func timeToken(apiKey string, w int64) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(strconv.FormatInt(w, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
