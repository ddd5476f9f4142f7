package entity

import "time"

// WebsiteProbeResult captures the outcome of a single website probe.
// Exactly one of the success fields or Error is populated per outcome.
type WebsiteProbeResult struct {
	Exists      bool    `json:"exists"`
	StatusCode  *int    `json:"status_code,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	SSLValid    bool    `json:"ssl_valid"`
	Error       string  `json:"error,omitempty"`
}

// SocialLinks holds the guessed profile URL for each supported platform.
// All three keys are always serialized; the URLs are fabricated from the
// company name and never verified.
type SocialLinks struct {
	LinkedIn *string `json:"linkedin"`
	Twitter  *string `json:"twitter"`
	Facebook *string `json:"facebook"`
}

// Count returns how many platform links are populated.
func (l SocialLinks) Count() int {
	count := 0
	for _, link := range []*string{l.LinkedIn, l.Twitter, l.Facebook} {
		if link != nil && *link != "" {
			count++
		}
	}
	return count
}

// OnlinePresence describes search-engine visibility. The values are a static
// placeholder until a search provider is wired in.
type OnlinePresence struct {
	HasMentions        bool `json:"has_mentions"`
	SearchResultsCount int  `json:"search_results_count"`
}

// VerificationResult is the record returned for a verified company. It is
// transient: nothing is persisted between requests.
type VerificationResult struct {
	CompanyName     string         `json:"company_name"`
	Verified        bool           `json:"verified"`
	ConfidenceScore float64        `json:"confidence_score"`
	Website         *string        `json:"website,omitempty"`
	SocialLinks     SocialLinks    `json:"social_links"`
	OnlinePresence  OnlinePresence `json:"online_presence"`
	RiskFlags       []string       `json:"risk_flags"`
	Timestamp       time.Time      `json:"timestamp"`
}
