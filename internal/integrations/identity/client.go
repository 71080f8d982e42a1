package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Client talks to the external identity service that owns patient and
// provider records. The scheduling core never stores identities itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FindPatient fetches a patient by id, returning ErrPatientNotFound on 404.
func (c *Client) FindPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	var patient Patient
	if err := c.get(ctx, fmt.Sprintf("%s/internal/patients/%s", c.baseURL, id), &patient, ErrPatientNotFound); err != nil {
		return nil, err
	}
	return &patient, nil
}

// FindProvider fetches a provider by id, returning ErrProviderNotFound on 404.
func (c *Client) FindProvider(ctx context.Context, id uuid.UUID) (*Provider, error) {
	var provider Provider
	if err := c.get(ctx, fmt.Sprintf("%s/internal/providers/%s", c.baseURL, id), &provider, ErrProviderNotFound); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.Warnf("Identity service returned %d for %s: %s", resp.StatusCode, url, string(body))
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
