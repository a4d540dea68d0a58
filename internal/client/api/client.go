package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/zsigidavid/notekeeper/internal/models"
)

// ErrUnauthenticated reports a 401 from any endpoint: the token is missing,
// invalid or expired, and the only remedy is to log in again.
var ErrUnauthenticated = errors.New("unauthenticated")

// APIError carries the server's error message for non-401 failures.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the notekeeper HTTP API. The token is passed per call
// rather than stored here; session state lives in the session package.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/api/auth/register", "", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) ListNotes(ctx context.Context, token string) ([]models.Note, error) {
	var notes []models.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", token, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, token, title, content string) (*models.Note, error) {
	var note models.Note
	err := c.do(ctx, http.MethodPost, "/api/notes", token, noteRequest{Title: title, Content: content}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, token string, id int, title, content string) (*models.Note, error) {
	var note models.Note
	err := c.do(ctx, http.MethodPut, "/api/notes/"+strconv.Itoa(id), token, noteRequest{Title: title, Content: content}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, token string, id int) (*models.Note, error) {
	var note models.Note
	err := c.do(ctx, http.MethodDelete, "/api/notes/"+strconv.Itoa(id), token, nil, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	const op = "client.api.do"

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: new request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode: %w", op, err)
		}
	}
	return nil
}
