package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Token expiry safety margin: refresh this long before the server-side expiry.
const tokenExpiryMargin = 5 * time.Minute

// TokenAuthority is the single owner of the OAuth2 client-credentials token.
// Concurrent fetchers either reuse the cached token or block briefly on a
// refresh; a duplicate refresh is harmless, a stale read is not.
type TokenAuthority struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client

	mutex  sync.Mutex
	token  string
	expiry time.Time
}

func NewTokenAuthority(clientID string, clientSecret string, tokenURL string, httpClient *http.Client) *TokenAuthority {
	return &TokenAuthority{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		httpClient:   httpClient,
	}
}

// Bearer returns a valid access token, refreshing it when missing or within
// the expiry margin.
func (a *TokenAuthority) Bearer(ctx context.Context) (string, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.token != "" && time.Now().Before(a.expiry) {
		return a.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.clientID)
	form.Set("client_secret", a.clientSecret)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := a.httpClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	body, _ := io.ReadAll(response.Body)
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed (%d): %s", response.StatusCode, string(body))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResponse); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}

	a.token = tokenResponse.AccessToken
	a.expiry = time.Now().Add(time.Duration(tokenResponse.ExpiresIn)*time.Second - tokenExpiryMargin)

	return a.token, nil
}

// Invalidate discards the cached token so the next Bearer call refreshes.
// Used when the API rejects a token mid-flight.
func (a *TokenAuthority) Invalidate() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.token = ""
	a.expiry = time.Time{}
}
