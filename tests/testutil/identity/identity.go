// Package identity runs a stand-in identity provider for tests: an RSA
// signing key published as a JWKS document over httptest.
package identity

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	Domain   = "portal-test.us.auth0.com"
	Audience = "https://api.portal.test"
)

type Provider struct {
	Server *httptest.Server
	Key    *rsa.PrivateKey
	KeyID  string

	requests atomic.Int64

	mu      sync.Mutex
	failing bool
	delay   time.Duration
}

func NewProvider(t testing.TB) *Provider {
	t.Helper()
	p := &Provider{
		Key:   GenerateKey(t),
		KeyID: uuid.NewString(),
	}
	p.Server = httptest.NewServer(http.HandlerFunc(p.serveJWKS))
	t.Cleanup(p.Server.Close)
	return p
}

func GenerateKey(t testing.TB) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate rsa key: %v", err)
	}
	return key
}

func (p *Provider) serveJWKS(w http.ResponseWriter, r *http.Request) {
	p.requests.Add(1)

	p.mu.Lock()
	failing, delay := p.failing, p.delay
	p.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if failing {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"keys": []map[string]string{{
			"kid": p.KeyID,
			"kty": "RSA",
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(p.Key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(p.Key.E)).Bytes()),
		}},
	})
}

func (p *Provider) JWKSURL() string {
	return p.Server.URL + "/.well-known/jwks.json"
}

func (p *Provider) Issuer() string {
	return "https://" + Domain + "/"
}

// Requests counts the JWKS downloads served so far.
func (p *Provider) Requests() int {
	return int(p.requests.Load())
}

// SetFailing makes the JWKS endpoint answer 503.
func (p *Provider) SetFailing(failing bool) {
	p.mu.Lock()
	p.failing = failing
	p.mu.Unlock()
}

func (p *Provider) SetDelay(d time.Duration) {
	p.mu.Lock()
	p.delay = d
	p.mu.Unlock()
}

// Claims is a valid claim set for subject, expiring in an hour.
func (p *Provider) Claims(subject string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":   subject,
		"aud":   Audience,
		"iss":   p.Issuer(),
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"email": subject + "@portal.test",
	}
}

func (p *Provider) Sign(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	return SignWith(t, p.Key, p.KeyID, claims)
}

// Token is a signed, valid access token for subject.
func (p *Provider) Token(t testing.TB, subject string) string {
	t.Helper()
	return p.Sign(t, p.Claims(subject))
}

func SignWith(t testing.TB, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}
