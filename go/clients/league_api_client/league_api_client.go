package league_api_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcdev12/lhsffl/go/clients"
)

// ErrUnsuccessful is returned when the API answers with success=false
var ErrUnsuccessful = errors.New("league API request unsuccessful")

// Envelope is the status part every league API response carries
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (e Envelope) check() error {
	if e.Success {
		return nil
	}
	msg := e.Error
	if msg == "" {
		msg = "no error message"
	}
	return fmt.Errorf("%w: %s", ErrUnsuccessful, msg)
}

type enveloped interface {
	check() error
}

type LeagueAPIClient struct {
	*clients.BaseClient
}

func NewLeagueAPIClient(baseURL string) *LeagueAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &LeagueAPIClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(AcceptHeader, JSONMimeType)

	return client
}

// getJSON fetches endpoint into out and turns success=false payloads into ErrUnsuccessful,
// including ones that arrive with a non-2xx status. Only bodies that pass the check are cached.
func (c *LeagueAPIClient) getJSON(ctx context.Context, endpoint string, out enveloped) error {
	var decodeErr error
	_, err := c.GetChecked(ctx, endpoint, func(body []byte) error {
		decodeErr = decode(body, out)
		return decodeErr
	})
	if decodeErr != nil {
		return decodeErr
	}
	if err != nil {
		var apiErr *clients.APIError
		if errors.As(err, &apiErr) {
			var env Envelope
			if json.Unmarshal([]byte(apiErr.Body), &env) == nil && !env.Success && env.Error != "" {
				return fmt.Errorf("%w: %s: %w", ErrUnsuccessful, env.Error, apiErr)
			}
		}
		return fmt.Errorf("failed to get %s: %w", endpoint, err)
	}

	return nil
}

func decode(body []byte, out enveloped) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return out.check()
}
