// SPDX-License-Identifier: AGPL-3.0-only
package common

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	HTTPClient http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		HTTPClient: http.Client{
			Timeout: timeout,
		},
	}
}

// DoJSON sends req and decodes a 2xx JSON body into out. out may be nil.
func (c *Client) DoJSON(req *http.Request, out any) error {
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := CheckResponse(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrNetwork, err)
	}

	return nil
}
