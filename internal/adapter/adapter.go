// Package adapter wraps the external data providers consumed by the
// enrichment, audit and intelligence pipelines. Each adapter exposes a
// narrow interface returning typed results; raw provider JSON never
// escapes this package. Failures are returned as wrapped errors and it is
// the caller's policy whether a failure is absorbed or fatal.
package adapter

import "context"

// Person is one entry from a people-lookup roster.
type Person struct {
	Name       string
	Role       string
	ProfileURL string
}

// PageContent is the extracted text content of a web page.
type PageContent struct {
	Title string
	Text  string
	Links []string
}

// BusinessHit is one business found via search.
type BusinessHit struct {
	Name    string
	Website string
	Snippet string
}

// Strategy selects the form factor for a performance audit run.
type Strategy string

const (
	StrategyMobile  Strategy = "mobile"
	StrategyDesktop Strategy = "desktop"
)

// AuditCheck is a single Lighthouse-style check from a performance audit.
// Score is nil when the check is not numerically scored.
type AuditCheck struct {
	ID               string
	Title            string
	Description      string
	Score            *float64
	ScoreDisplayMode string
}

// PageAudit is the typed result of one performance audit call. Category
// scores are on the provider's 0-1 scale.
type PageAudit struct {
	Strategy Strategy
	Scores   map[string]float64
	Checks   map[string]AuditCheck
}

// TechDetector identifies the technologies a website is built with.
type TechDetector interface {
	Detect(ctx context.Context, websiteURL string) ([]string, error)
}

// PeopleFinder looks up people associated with a company.
type PeopleFinder interface {
	FindPeople(ctx context.Context, companyName string) ([]Person, error)
}

// PerformanceAuditor runs a website performance audit for one form factor.
type PerformanceAuditor interface {
	Audit(ctx context.Context, url string, strategy Strategy) (*PageAudit, error)
}

// SocialScraper fetches a public social media profile summary.
type SocialScraper interface {
	Lookup(ctx context.Context, query string) (*SocialProfileResult, error)
}

// SocialProfileResult mirrors entity.SocialProfile at the adapter boundary.
type SocialProfileResult struct {
	Handle    string
	Followers int
	Posts     int
	Verified  bool
	Bio       string
}

// ContentExtractor pulls readable content from a web page.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (*PageContent, error)
}

// BusinessSearcher finds local businesses matching a query.
type BusinessSearcher interface {
	Search(ctx context.Context, query, location string) ([]BusinessHit, error)
}

// Narrator generates free-form text from a prompt.
type Narrator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
