package airports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"skyfare/models"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTokenURL  = "https://test.api.amadeus.com/v1/security/oauth2/token"
	defaultSearchURL = "https://test.api.amadeus.com/v1/reference-data/locations"

	tokenKey       = "airports:token"
	searchKeyPfx   = "airports:search:"
	searchCacheTTL = 10 * time.Minute
)

// InitRedis builds the cache client from the environment.
func InitRedis() *redis.Client {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: os.Getenv("REDIS_PASSWORD"), // Empty if no password
		DB:       0,
	})
}

// Client talks to an Amadeus-style location API using the
// client-credentials flow. The access token and search results are
// cached in Redis; a 401 refreshes the token and retries once.
type Client struct {
	httpClient   *http.Client
	rdb          *redis.Client
	tokenURL     string
	searchURL    string
	clientID     string
	clientSecret string
}

func NewClient(rdb *redis.Client) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		rdb:          rdb,
		tokenURL:     defaultTokenURL,
		searchURL:    defaultSearchURL,
		clientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		clientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
	}
	if u := os.Getenv("AMADEUS_TOKEN_URL"); u != "" {
		c.tokenURL = u
	}
	if u := os.Getenv("AMADEUS_SEARCH_URL"); u != "" {
		c.searchURL = u
	}
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) storedToken(ctx context.Context) string {
	if c.rdb == nil {
		return ""
	}
	token, err := c.rdb.Get(ctx, tokenKey).Result()
	if err != nil {
		return ""
	}
	return token
}

func (c *Client) fetchNewToken(ctx context.Context) (string, error) {
	body := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(body.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch access token: status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	if c.rdb != nil && tok.ExpiresIn > 0 {
		// Expire slightly early so a cached token is never stale on use.
		ttl := time.Duration(tok.ExpiresIn-30) * time.Second
		if ttl > 0 {
			if err := c.rdb.Set(ctx, tokenKey, tok.AccessToken, ttl).Err(); err != nil {
				log.Println("token cache write failed:", err)
			}
		}
	}
	return tok.AccessToken, nil
}

// amadeusLocations mirrors the API's response envelope.
type amadeusLocations struct {
	Data []struct {
		IataCode string `json:"iataCode"`
		Name     string `json:"name"`
		Address  struct {
			CityName    string `json:"cityName"`
			CountryName string `json:"countryName"`
		} `json:"address"`
	} `json:"data"`
}

// SearchLocations looks up airports matching the keyword.
func (c *Client) SearchLocations(ctx context.Context, keyword string) ([]models.AirportMatch, error) {
	cacheKey := searchKeyPfx + strings.ToLower(keyword)
	if c.rdb != nil {
		if data, err := c.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []models.AirportMatch
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	token := c.storedToken(ctx)
	if token == "" {
		t, err := c.fetchNewToken(ctx)
		if err != nil {
			return nil, err
		}
		token = t
	}

	matches, status, err := c.search(ctx, keyword, token)
	if status == http.StatusUnauthorized {
		// Token may have expired; refresh and retry once.
		token, err = c.fetchNewToken(ctx)
		if err != nil {
			return nil, err
		}
		matches, status, err = c.search(ctx, keyword, token)
	}
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("search locations: status %d", status)
	}

	if c.rdb != nil {
		if data, err := json.Marshal(matches); err == nil {
			if err := c.rdb.Set(ctx, cacheKey, data, searchCacheTTL).Err(); err != nil {
				log.Println("search cache write failed:", err)
			}
		}
	}
	return matches, nil
}

func (c *Client) search(ctx context.Context, keyword, token string) ([]models.AirportMatch, int, error) {
	u := fmt.Sprintf("%s?subType=AIRPORT&keyword=%s", c.searchURL, url.QueryEscape(keyword))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("search locations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	var payload amadeusLocations
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode locations: %w", err)
	}

	matches := make([]models.AirportMatch, 0, len(payload.Data))
	for _, d := range payload.Data {
		matches = append(matches, models.AirportMatch{
			IataCode:    d.IataCode,
			Name:        d.Name,
			CityName:    d.Address.CityName,
			CountryName: d.Address.CountryName,
		})
	}
	return matches, resp.StatusCode, nil
}
