package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
)

// RestyTechDetector calls a technology-detection service over HTTP.
type RestyTechDetector struct {
	client *resty.Client
}

type techLookupResponse struct {
	Technologies []struct {
		Name string `json:"name"`
	} `json:"technologies"`
	Error string `json:"error,omitempty"`
}

// NewRestyTechDetector builds a detector against the given base URL.
func NewRestyTechDetector(baseURL, apiKey string, timeout time.Duration) *RestyTechDetector {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}
	return &RestyTechDetector{client: client}
}

// Detect returns the technology names found on the website.
func (d *RestyTechDetector) Detect(ctx context.Context, websiteURL string) ([]string, error) {
	var result techLookupResponse
	resp, err := d.client.R().
		SetContext(ctx).
		SetQueryParam("url", websiteURL).
		SetResult(&result).
		Get("/v1/lookup")
	if err != nil {
		return nil, eris.Wrap(err, "techdetect: lookup request")
	}
	if resp.IsError() {
		return nil, eris.New(fmt.Sprintf("techdetect: lookup returned %d", resp.StatusCode()))
	}
	if result.Error != "" {
		return nil, eris.New("techdetect: " + result.Error)
	}

	names := make([]string, 0, len(result.Technologies))
	seen := make(map[string]struct{}, len(result.Technologies))
	for _, tech := range result.Technologies {
		name := strings.TrimSpace(tech.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

var _ TechDetector = (*RestyTechDetector)(nil)
