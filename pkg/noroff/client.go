// Package noroff is a client for the Noroff v2 social API. Every operation
// is a single request against a fixed path; responses wrap their payload in
// a "data" envelope.
package noroff

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"feedclient/pkg/models"
)

const (
	DefaultBaseURL = "https://v2.api.noroff.dev"

	registerPath = "/auth/register"
	loginPath    = "/auth/login"
	apiKeyPath   = "/auth/create-api-key"
	postsPath    = "/social/posts"

	timeout = 10 * time.Second
)

// allowedDomains is the registration allow-list. Anything else is rejected
// locally, before any request is issued.
var allowedDomains = []string{"@noroff.no", "@stud.noroff.no"}

// ValidEmail reports whether email belongs to one of the allowed domains.
func ValidEmail(email string) bool {
	for _, d := range allowedDomains {
		if strings.Contains(email, d) {
			return true
		}
	}
	return false
}

type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a client for the given API base URL. An empty baseURL selects
// the production endpoint. The transport is left nil so tests can intercept
// the default one.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type loginResponse struct {
	Data struct {
		AccessToken string `json:"accessToken"`
		models.Profile
	} `json:"data"`
}

type apiKeyResponse struct {
	Data struct {
		Key string `json:"key"`
	} `json:"data"`
}

type postsResponse struct {
	Data []models.Post `json:"data"`
}

type postResponse struct {
	Data models.Post `json:"data"`
}

// Register creates an account. Only the response status matters; the caller
// gets no payload back.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	if !ValidEmail(email) {
		return &RequestError{Kind: KindValidation, Op: "register", Err: errors.New("email outside allowed domains")}
	}

	body := map[string]string{"name": name, "email": email, "password": password}
	resp, err := c.send(ctx, http.MethodPost, registerPath, nil, body)
	if err != nil {
		return &RequestError{Kind: KindNetwork, Op: "register", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Kind: KindServer, Op: "register", Status: resp.StatusCode, Err: errors.New("registration rejected")}
	}

	return nil
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (models.Profile, string, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.send(ctx, http.MethodPost, loginPath, nil, body)
	if err != nil {
		return models.Profile{}, "", &RequestError{Kind: KindNetwork, Op: "login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Profile{}, "", &RequestError{Kind: KindServer, Op: "login", Status: resp.StatusCode, Err: errors.New("login rejected")}
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return models.Profile{}, "", &RequestError{Kind: KindNetwork, Op: "login", Err: fmt.Errorf("decoding response: %w", err)}
	}
	if lr.Data.AccessToken == "" {
		return models.Profile{}, "", &RequestError{Kind: KindServer, Op: "login", Err: errors.New("response carries no access token")}
	}

	return lr.Data.Profile, lr.Data.AccessToken, nil
}

// CreateAPIKey mints an API key using a fresh access token. Every
// authenticated social request needs both.
func (c *Client) CreateAPIKey(ctx context.Context, accessToken, keyName string) (string, error) {
	creds := &models.Credentials{AccessToken: accessToken}
	body := map[string]string{"name": keyName}
	resp, err := c.send(ctx, http.MethodPost, apiKeyPath, creds, body)
	if err != nil {
		return "", &RequestError{Kind: KindNetwork, Op: "create-api-key", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RequestError{Kind: KindServer, Op: "create-api-key", Status: resp.StatusCode, Err: errors.New("key request rejected")}
	}

	var kr apiKeyResponse
	if err := json.NewDecoder(resp.Body).Decode(&kr); err != nil {
		return "", &RequestError{Kind: KindNetwork, Op: "create-api-key", Err: fmt.Errorf("decoding response: %w", err)}
	}
	if kr.Data.Key == "" {
		return "", &RequestError{Kind: KindServer, Op: "create-api-key", Err: errors.New("response carries no key")}
	}

	return kr.Data.Key, nil
}

// Posts fetches the full listing, newest first, with author data embedded.
func (c *Client) Posts(ctx context.Context, creds models.Credentials) ([]models.Post, error) {
	path := postsPath + "?sort=created&sortOrder=desc&_author=true"
	resp, err := c.send(ctx, http.MethodGet, path, &creds, nil)
	if err != nil {
		return nil, &RequestError{Kind: KindNetwork, Op: "list posts", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Kind: KindServer, Op: "list posts", Status: resp.StatusCode, Err: errors.New("listing rejected")}
	}

	var pr postsResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, &RequestError{Kind: KindNetwork, Op: "list posts", Err: fmt.Errorf("decoding response: %w", err)}
	}

	return pr.Data, nil
}

// CreatePost submits a new title/body pair.
func (c *Client) CreatePost(ctx context.Context, creds models.Credentials, title, body string) (models.Post, error) {
	return c.submitPost(ctx, creds, http.MethodPost, postsPath, "create post", title, body)
}

// UpdatePost replaces title and body of an existing post.
func (c *Client) UpdatePost(ctx context.Context, creds models.Credentials, id int, title, body string) (models.Post, error) {
	path := fmt.Sprintf("%s/%d", postsPath, id)
	return c.submitPost(ctx, creds, http.MethodPut, path, "update post", title, body)
}

func (c *Client) submitPost(ctx context.Context, creds models.Credentials, method, path, op, title, body string) (models.Post, error) {
	payload := map[string]string{"title": title, "body": body}
	resp, err := c.send(ctx, method, path, &creds, payload)
	if err != nil {
		return models.Post{}, &RequestError{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Post{}, &RequestError{Kind: KindServer, Op: op, Status: resp.StatusCode, Err: errors.New("submission rejected")}
	}

	var pr postResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return models.Post{}, &RequestError{Kind: KindNetwork, Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}

	return pr.Data, nil
}

// DeletePost removes a post by id.
func (c *Client) DeletePost(ctx context.Context, creds models.Credentials, id int) error {
	path := fmt.Sprintf("%s/%d", postsPath, id)
	resp, err := c.send(ctx, http.MethodDelete, path, &creds, nil)
	if err != nil {
		return &RequestError{Kind: KindNetwork, Op: "delete post", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Kind: KindServer, Op: "delete post", Status: resp.StatusCode, Err: errors.New("deletion rejected")}
	}

	return nil
}

func (c *Client) send(ctx context.Context, method, path string, creds *models.Credentials, body any) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request %s %s: %w", method, path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if creds != nil {
		if creds.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
		}
		if creds.APIKey != "" {
			req.Header.Set("X-Noroff-API-Key", creds.APIKey)
		}
	}

	return c.hc.Do(req)
}
