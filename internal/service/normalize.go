package service

import (
	"errors"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/idna"
)

// NormalizeWebsiteURL canonicalizes a website URL: scheme forced to
// https, host lowercased, www. stripped, internationalized domains
// converted to their ASCII form, tracking parameters removed.
func NormalizeWebsiteURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", errors.New("invalid url")
	}

	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	host = strings.TrimPrefix(host, "www.")
	asciiHost, err := idna.Lookup.ToASCII(host)
	if err != nil || asciiHost == "" {
		return "", errors.New("invalid host")
	}
	if !strings.Contains(asciiHost, ".") {
		return "", errors.New("host is not a domain")
	}

	u.Scheme = "https"
	u.Host = asciiHost
	stripTrackingParams(u)

	return u.String(), nil
}

func stripTrackingParams(u *url.URL) {
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

// StripCodeFences removes markdown code fence wrapping from generated
// text, including an optional language tag on the opening fence.
func StripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.Contains(text, "```") {
		return text
	}

	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		// Drop a language tag like "json" up to the first newline.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			tag := strings.TrimSpace(rest[:nl])
			if tag == "" || isFenceTag(tag) {
				rest = rest[nl+1:]
			}
		}
		if closing := strings.LastIndex(rest, "```"); closing >= 0 {
			rest = rest[:closing]
		}
		text = strings.TrimSpace(rest)
	}
	return text
}

func isFenceTag(tag string) bool {
	for _, r := range tag {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return len(tag) <= 16
}

// Summarize trims free text to at most limit runes, cutting at a word
// boundary where possible.
func Summarize(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}

	cut := string(runes[:limit])
	if idx := strings.LastIndexByte(cut, ' '); idx > limit/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
