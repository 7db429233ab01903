package model

import "time"

// Repository is a source-code project as reported by the GitHub REST API.
//
// GitHub returns a much larger object — we only unmarshal the fields the app
// needs for the repo picker, the prompt, and the response body. The JSON tags
// match GitHub's snake_case wire format, so the same struct decodes the API
// response and encodes our own response without a mapping layer.
//
// Repositories are read-only to this app and fetched fresh on every request;
// nothing here is cached or persisted.
type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"` // "owner/name"
	Description     string    `json:"description"`
	Private         bool      `json:"private"`
	Fork            bool      `json:"fork"`
	HTMLURL         string    `json:"html_url"`
	DefaultBranch   string    `json:"default_branch"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}
