package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SaifHossain4/student-feedback-dashboard/internal/domain"
	"github.com/SaifHossain4/student-feedback-dashboard/internal/dto"
)

// APIError is a non-2xx answer from the feedback service, carrying the
// server's error message and store code when the body had them.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// Client is a typed wrapper over the feedback API wire contract.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (c *Client) List() ([]domain.Feedback, error) {
	resp, err := c.http.Get(c.baseURL + "/api/feedback")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var items []domain.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Create(rating int, comment string) (*domain.Feedback, error) {
	return c.send(http.MethodPost, c.baseURL+"/api/feedback", rating, comment, http.StatusCreated)
}

func (c *Client) Update(id uint64, rating int, comment string) (*domain.Feedback, error) {
	url := fmt.Sprintf("%s/api/feedback/%d", c.baseURL, id)
	return c.send(http.MethodPut, url, rating, comment, http.StatusOK)
}

func (c *Client) Delete(id uint64) error {
	url := fmt.Sprintf("%s/api/feedback/%d", c.baseURL, id)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

func (c *Client) DBCheck() (time.Time, error) {
	resp, err := c.http.Get(c.baseURL + "/api/db-check")
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()

	var body dto.DBCheckBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, err
	}
	if !body.OK {
		return time.Time{}, &APIError{StatusCode: resp.StatusCode, Message: body.Error, Code: body.Code}
	}
	if body.Now == nil {
		return time.Time{}, nil
	}
	return *body.Now, nil
}

func (c *Client) send(method, url string, rating int, comment string, want int) (*domain.Feedback, error) {
	payload, err := json.Marshal(dto.FeedbackInput{Rating: rating, Comment: comment})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return nil, apiError(resp)
	}

	var feedback domain.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

// apiError decodes the server's {error, code} body; a body that fails to
// decode still yields an APIError with the status code.
func apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body dto.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
		apiErr.Code = body.Code
	}
	return apiErr
}
