package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
)

// RestyPeopleFinder calls a company/people lookup service over HTTP.
type RestyPeopleFinder struct {
	client *resty.Client
}

type peopleSearchResponse struct {
	People []struct {
		Name       string `json:"name"`
		Title      string `json:"title"`
		ProfileURL string `json:"profile_url"`
	} `json:"people"`
	Error string `json:"error,omitempty"`
}

// NewRestyPeopleFinder builds a people finder against the given base URL.
func NewRestyPeopleFinder(baseURL, apiKey string, timeout time.Duration) *RestyPeopleFinder {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("X-Api-Key", apiKey)
	}
	return &RestyPeopleFinder{client: client}
}

// FindPeople returns the roster of people listed for the company.
func (f *RestyPeopleFinder) FindPeople(ctx context.Context, companyName string) ([]Person, error) {
	var result peopleSearchResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"company": companyName}).
		SetResult(&result).
		Post("/v1/people/search")
	if err != nil {
		return nil, eris.Wrap(err, "people: search request")
	}
	if resp.IsError() {
		return nil, eris.New(fmt.Sprintf("people: search returned %d", resp.StatusCode()))
	}
	if result.Error != "" {
		return nil, eris.New("people: " + result.Error)
	}

	people := make([]Person, 0, len(result.People))
	for _, p := range result.People {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		people = append(people, Person{
			Name:       name,
			Role:       strings.TrimSpace(p.Title),
			ProfileURL: strings.TrimSpace(p.ProfileURL),
		})
	}
	return people, nil
}

var _ PeopleFinder = (*RestyPeopleFinder)(nil)
