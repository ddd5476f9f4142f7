package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trustlens/verification-api/internal/entity"
)

func strPtr(s string) *string {
	return &s
}

func allSocials() entity.SocialLinks {
	return entity.SocialLinks{
		LinkedIn: strPtr("https://linkedin.com/company/acmecorp"),
		Twitter:  strPtr("https://twitter.com/acmecorp"),
		Facebook: strPtr("https://facebook.com/acmecorp"),
	}
}

func TestEvaluate_Confidence(t *testing.T) {
	cases := []struct {
		name     string
		probe    entity.WebsiteProbeResult
		social   entity.SocialLinks
		presence entity.OnlinePresence
		want     float64
	}{
		{
			name: "all signals",
			probe: entity.WebsiteProbeResult{
				Exists:      true,
				SSLValid:    true,
				Title:       strPtr("Acme Corp"),
				Description: strPtr("We make everything"),
			},
			social:   allSocials(),
			presence: entity.OnlinePresence{HasMentions: true},
			want:     1.0,
		},
		{
			name: "website signals only",
			probe: entity.WebsiteProbeResult{
				Exists:      true,
				SSLValid:    true,
				Title:       strPtr("Acme Corp"),
				Description: strPtr("We make everything"),
			},
			want: 0.6,
		},
		{
			name:     "no website with full social and mentions",
			social:   allSocials(),
			presence: entity.OnlinePresence{HasMentions: true},
			want:     0.4,
		},
		{
			name:   "social links only",
			social: allSocials(),
			want:   0.3,
		},
		{
			name:  "website without ssl or metadata",
			probe: entity.WebsiteProbeResult{Exists: true},
			want:  0.4,
		},
		{
			name: "metadata needs both title and description",
			probe: entity.WebsiteProbeResult{
				Exists:   true,
				SSLValid: true,
				Title:    strPtr("Acme Corp"),
			},
			want: 0.5,
		},
		{
			name:     "nothing at all",
			presence: entity.OnlinePresence{},
			want:     0.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.probe, tc.social, tc.presence)
			assert.InDelta(t, tc.want, got.Confidence, 1e-9)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		})
	}
}

func TestEvaluate_SSLAndMetadataRequireExistingWebsite(t *testing.T) {
	probe := entity.WebsiteProbeResult{
		Exists:      false,
		SSLValid:    true,
		Title:       strPtr("Acme Corp"),
		Description: strPtr("We make everything"),
	}

	got := Evaluate(probe, entity.SocialLinks{}, entity.OnlinePresence{})
	assert.InDelta(t, 0.0, got.Confidence, 1e-9)
}

func TestEvaluate_RiskFlagOrder(t *testing.T) {
	cases := []struct {
		name   string
		probe  entity.WebsiteProbeResult
		social entity.SocialLinks
		want   []string
	}{
		{
			name:  "probe error keeps fixed ordering",
			probe: entity.WebsiteProbeResult{Error: "connection refused"},
			want:  []string{FlagNoWebsite, FlagNoSocial, "Website error: connection refused"},
		},
		{
			name:  "missing ssl and social",
			probe: entity.WebsiteProbeResult{Exists: true},
			want:  []string{FlagNoSSL, FlagNoSocial},
		},
		{
			name:   "no flags",
			probe:  entity.WebsiteProbeResult{Exists: true, SSLValid: true},
			social: allSocials(),
			want:   []string{},
		},
		{
			name:   "missing website only",
			social: allSocials(),
			want:   []string{FlagNoWebsite},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.probe, tc.social, entity.OnlinePresence{HasMentions: true})
			assert.Equal(t, tc.want, got.RiskFlags)
			assert.NotNil(t, got.RiskFlags)
		})
	}
}

func TestVerified(t *testing.T) {
	cases := []struct {
		name       string
		confidence float64
		flags      []string
		want       bool
	}{
		{"at threshold with one flag", 0.50, []string{FlagNoSocial}, true},
		{"at threshold with two flags", 0.50, []string{FlagNoSSL, FlagNoSocial}, false},
		{"below threshold with one flag", 0.49, []string{FlagNoSocial}, false},
		{"high confidence no flags", 1.0, nil, true},
		{"high confidence too many flags", 0.9, []string{FlagNoSSL, FlagNoSocial}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Verified(tc.confidence, tc.flags))
		})
	}
}

func TestVerified_MatchesEvaluateBoundary(t *testing.T) {
	// Exists plus SSL scores 2.5 points, exactly the 0.50 boundary, with the
	// missing-social flag as the single risk flag.
	probe := entity.WebsiteProbeResult{Exists: true, SSLValid: true}
	got := Evaluate(probe, entity.SocialLinks{}, entity.OnlinePresence{})

	assert.InDelta(t, 0.50, got.Confidence, 1e-9)
	assert.Equal(t, []string{FlagNoSocial}, got.RiskFlags)
	assert.True(t, Verified(got.Confidence, got.RiskFlags))

	// Dropping SSL for mentions keeps 0.50 but adds a second flag.
	probe = entity.WebsiteProbeResult{Exists: true}
	got = Evaluate(probe, entity.SocialLinks{}, entity.OnlinePresence{HasMentions: true})

	assert.InDelta(t, 0.50, got.Confidence, 1e-9)
	assert.Equal(t, []string{FlagNoSSL, FlagNoSocial}, got.RiskFlags)
	assert.False(t, Verified(got.Confidence, got.RiskFlags))
}
