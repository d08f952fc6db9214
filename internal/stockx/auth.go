// internal/stockx/auth.go
package stockx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/repricer-backend/internal/config"
)

// expiryBuffer is subtracted from the token lifetime so a token is refreshed
// shortly before the marketplace would start rejecting it.
const expiryBuffer = 5 * time.Minute

type AuthService struct {
	cfg        config.StockXConfig
	httpClient *http.Client
	logger     *logrus.Logger

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

func NewAuthService(cfg config.StockXConfig, logger *logrus.Logger) *AuthService {
	return &AuthService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// GetAccessToken returns a cached token when it is still valid and otherwise
// runs the refresh-token grant against the auth endpoint.
func (s *AuthService) GetAccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	token, expiresAt, err := s.refreshAccessToken(ctx)
	if err != nil {
		return "", err
	}

	s.accessToken = token
	s.expiresAt = expiresAt

	s.logger.WithFields(logrus.Fields{
		"expires_at": expiresAt.Format(time.RFC3339),
	}).Info("StockX access token refreshed")

	return token, nil
}

// ClearTokenCache drops the cached token so the next call performs a fresh
// refresh. The API client invokes this after a 401.
func (s *AuthService) ClearTokenCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.expiresAt = time.Time{}
}

func (s *AuthService) refreshAccessToken(ctx context.Context) (string, time.Time, error) {
	form := url.Values{}
	form.Set("grant_type", s.cfg.GrantType)
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)
	form.Set("refresh_token", s.cfg.RefreshToken)
	form.Set("audience", s.cfg.Audience)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", time.Time{}, fmt.Errorf("token endpoint returned an empty access token")
	}

	return tr.AccessToken, tokenExpiry(tr), nil
}

// tokenExpiry prefers the exp claim embedded in the JWT. The token is not
// verified here; the marketplace is the issuer and the signature check is
// its job, we only need the lifetime. Falls back to expires_in.
func tokenExpiry(tr tokenResponse) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tr.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time.Add(-expiryBuffer)
		}
	}

	lifetime := time.Duration(tr.ExpiresIn) * time.Second
	if lifetime <= expiryBuffer {
		return time.Now().Add(lifetime)
	}
	return time.Now().Add(lifetime - expiryBuffer)
}
