package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

var ErrUnauthenticated = errors.New("unauthenticated")

type Reason string

const (
	ReasonNoMatchingKey Reason = "no_matching_key"
	ReasonExpired       Reason = "expired"
	ReasonBadClaims     Reason = "bad_claims"
	ReasonBadSignature  Reason = "bad_signature"
	ReasonOther         Reason = "other"
)

// AuthError is returned for every rejected token. errors.Is(err,
// ErrUnauthenticated) holds for all of them.
type AuthError struct {
	Reason Reason
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "unauthenticated: " + string(e.Reason)
	}
	return fmt.Sprintf("unauthenticated: %s: %v", e.Reason, e.Err)
}

func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnauthenticated}
	}
	return []error{ErrUnauthenticated, e.Err}
}

// Detail is the message shown to API callers.
func (e *AuthError) Detail() string {
	switch e.Reason {
	case ReasonNoMatchingKey:
		return "Unable to find appropriate key"
	case ReasonExpired:
		return "Token has expired"
	case ReasonBadClaims:
		return "Invalid claims. Please check the audience and issuer"
	}
	return "Unable to validate credentials"
}

// JWTService verifies RS256 access tokens issued by the identity provider
// against its published key set. The key set is downloaded once and kept
// for the life of the process.
type JWTService struct {
	audience   string
	issuer     string
	jwksURL    string
	httpClient *http.Client
	now        func() time.Time

	fetch singleflight.Group
	mu    sync.RWMutex
	keys  *KeySet
}

type JWTOption func(*JWTService)

func WithHTTPClient(client *http.Client) JWTOption {
	return func(s *JWTService) { s.httpClient = client }
}

// WithJWKSURL overrides the key set location derived from the domain.
func WithJWKSURL(url string) JWTOption {
	return func(s *JWTService) { s.jwksURL = url }
}

func WithTokenClock(now func() time.Time) JWTOption {
	return func(s *JWTService) { s.now = now }
}

func NewJWTService(domain, audience string, opts ...JWTOption) *JWTService {
	s := &JWTService{
		audience:   audience,
		issuer:     "https://" + domain + "/",
		jwksURL:    "https://" + domain + "/.well-known/jwks.json",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JWTService) Issuer() string {
	return s.issuer
}

// FetchSigningKeys returns the cached key set, downloading it on first use.
// Concurrent first callers share a single download. A failed download is
// not cached, so the next call tries again.
func (s *JWTService) FetchSigningKeys(ctx context.Context) (*KeySet, error) {
	if keys := s.cached(); keys != nil {
		return keys, nil
	}

	v, err, _ := s.fetch.Do("jwks", func() (any, error) {
		if keys := s.cached(); keys != nil {
			return keys, nil
		}
		keys, err := s.download(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.keys = keys
		s.mu.Unlock()
		return keys, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*KeySet), nil
}

// Invalidate drops the cached key set. The next verification downloads it
// again, which picks up rotated keys.
func (s *JWTService) Invalidate() {
	s.mu.Lock()
	s.keys = nil
	s.mu.Unlock()
}

func (s *JWTService) cached() *KeySet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys
}

func (s *JWTService) download(ctx context.Context) (*KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build jwks request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks endpoint returned status %d", resp.StatusCode)
	}

	var keys KeySet
	if err := json.NewDecoder(resp.Body).Decode(&keys); err != nil {
		return nil, fmt.Errorf("failed to decode jwks: %w", err)
	}
	return &keys, nil
}

// SelectKey finds the published key named by the token's kid header. It
// never fails: a malformed token or an unreachable key set both report no key.
func (s *JWTService) SelectKey(ctx context.Context, token string) (*JSONWebKey, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, false
	}
	kid, _ := parsed.Header["kid"].(string)
	if kid == "" {
		return nil, false
	}

	keys, err := s.FetchSigningKeys(ctx)
	if err != nil {
		return nil, false
	}
	return keys.Find(kid)
}

func (s *JWTService) Verify(ctx context.Context, token string) (jwt.MapClaims, error) {
	key, ok := s.SelectKey(ctx, token)
	if !ok {
		return nil, &AuthError{Reason: ReasonNoMatchingKey}
	}
	pub, err := key.PublicKey()
	if err != nil {
		return nil, &AuthError{Reason: ReasonOther, Err: err}
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(s.audience),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	claims := jwt.MapClaims{}
	_, err = parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return pub, nil
	})
	if err != nil {
		return nil, &AuthError{Reason: classify(err), Err: err}
	}
	return claims, nil
}

// VerifyOptional is Verify for endpoints that also serve anonymous callers.
func (s *JWTService) VerifyOptional(ctx context.Context, token string) (jwt.MapClaims, bool) {
	if token == "" {
		return nil, false
	}
	claims, err := s.Verify(ctx, token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ReasonBadClaims
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ReasonBadSignature
	}
	return ReasonOther
}

// CurrentUser is the subject of a verified claim set.
func CurrentUser(claims jwt.MapClaims) string {
	sub, _ := claims["sub"].(string)
	return sub
}
