package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/evrtek/geobeastProdV1-sub000/internal/constants"
	"github.com/gin-gonic/gin"
)

// createSessionToken mints a token the way the account service does, so the
// validation path can be exercised end to end.
func createSessionToken(userID uint, name string, ttl time.Duration) (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}
	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	hdrJSON, _ := json.Marshal(header)
	now := time.Now().Unix()
	claims := sessionClaims{Sub: userID, Name: name, Iat: now, Exp: now + int64(ttl.Seconds())}
	clJSON, _ := json.Marshal(claims)
	unsigned := fmt.Sprintf("%s.%s", b64url(hdrJSON), b64url(clJSON))
	sig := signHS256(unsigned, secret)
	return unsigned + "." + sig, nil
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := createSessionToken(42, "amira", time.Hour)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}
	claims, err := parseAndValidateSession(token)
	if err != nil {
		t.Fatalf("parseAndValidateSession: %v", err)
	}
	if claims.Sub != 42 || claims.Name != "amira" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestSessionTokenRejectsTampering(t *testing.T) {
	token, err := createSessionToken(42, "amira", time.Hour)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}
	if _, err := parseAndValidateSession(token + "x"); err == nil {
		t.Fatal("tampered token should be rejected")
	}
	if _, err := parseAndValidateSession("not.a.token"); err == nil {
		t.Fatal("garbage token should be rejected")
	}

	expired, err := createSessionToken(42, "amira", -time.Minute)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}
	if _, err := parseAndValidateSession(expired); err == nil {
		t.Fatal("expired token should be rejected")
	}
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", AuthRequired(), func(c *gin.Context) {
		id, ok := sessionUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	// no cookie
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a cookie, got %d", w.Code)
	}

	// valid cookie
	token, err := createSessionToken(7, "amira", time.Hour)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieSessionName, Value: token})
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with a valid cookie, got %d body=%s", w.Code, w.Body.String())
	}

	// invalid cookie
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieSessionName, Value: "bogus"})
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with an invalid cookie, got %d", w.Code)
	}
}
