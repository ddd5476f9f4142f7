package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustlens/verification-api/internal/dto"
	"github.com/trustlens/verification-api/internal/entity"
	"github.com/trustlens/verification-api/internal/service/scoring"
)

type stubChecker struct {
	result      entity.WebsiteProbeResult
	calls       int
	lastWebsite string
}

func (c *stubChecker) Probe(_ context.Context, website string) entity.WebsiteProbeResult {
	c.calls++
	c.lastWebsite = website
	return c.result
}

func probeTitle(s string) *string {
	return &s
}

func TestVerifySkipsProbeWithoutWebsite(t *testing.T) {
	checker := &stubChecker{}
	svc := NewVerificationService(checker)

	result, err := svc.Verify(context.Background(), dto.VerifyRequest{CompanyName: "Acme Corp"})

	require.NoError(t, err)
	assert.Equal(t, 0, checker.calls)
	assert.Equal(t, "Acme Corp", result.CompanyName)
	assert.Nil(t, result.Website)
	assert.Equal(t, []string{scoring.FlagNoWebsite}, result.RiskFlags)
	assert.InDelta(t, 0.4, result.ConfidenceScore, 1e-9)
	assert.False(t, result.Verified)
	assert.Equal(t, 3, result.SocialLinks.Count())
	assert.True(t, result.OnlinePresence.HasMentions)
	assert.Equal(t, 0, result.OnlinePresence.SearchResultsCount)
	assert.False(t, result.Timestamp.IsZero())
}

func TestVerifyEchoesNormalizedWebsiteOnSuccess(t *testing.T) {
	checker := &stubChecker{
		result: entity.WebsiteProbeResult{
			Exists:      true,
			SSLValid:    true,
			Title:       probeTitle("Acme Corp"),
			Description: probeTitle("We make everything"),
		},
	}
	svc := NewVerificationService(checker)

	result, err := svc.Verify(context.Background(), dto.VerifyRequest{
		CompanyName: "Acme Corp",
		Website:     " acme.com ",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, checker.calls)
	assert.Equal(t, "acme.com", checker.lastWebsite)
	require.NotNil(t, result.Website)
	assert.Equal(t, "https://acme.com", *result.Website)
	assert.InDelta(t, 1.0, result.ConfidenceScore, 1e-9)
	assert.True(t, result.Verified)
	assert.Empty(t, result.RiskFlags)
}

func TestVerifyOmitsWebsiteWhenProbeFails(t *testing.T) {
	status := 404
	checker := &stubChecker{
		result: entity.WebsiteProbeResult{StatusCode: &status},
	}
	svc := NewVerificationService(checker)

	result, err := svc.Verify(context.Background(), dto.VerifyRequest{
		CompanyName: "Acme Corp",
		Website:     "acme.com",
	})

	require.NoError(t, err)
	assert.Nil(t, result.Website)
	assert.Equal(t, []string{scoring.FlagNoWebsite}, result.RiskFlags)
	assert.InDelta(t, 0.4, result.ConfidenceScore, 1e-9)
}

func TestVerifyRejectsInvalidRequest(t *testing.T) {
	svc := NewVerificationService(&stubChecker{})

	result, err := svc.Verify(context.Background(), dto.VerifyRequest{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "company_name is required")
}

func TestVerifyBatchCapturesItemErrors(t *testing.T) {
	svc := NewVerificationService(&stubChecker{})

	items := svc.VerifyBatch(context.Background(), []dto.VerifyRequest{
		{CompanyName: "First Co"},
		{},
		{CompanyName: "Third Co"},
	})

	require.Len(t, items, 3)

	require.NotNil(t, items[0].Result)
	assert.Equal(t, "First Co", items[0].Result.CompanyName)
	assert.Empty(t, items[0].Err)

	assert.Nil(t, items[1].Result)
	assert.Contains(t, items[1].Err, "company_name is required")

	require.NotNil(t, items[2].Result)
	assert.Equal(t, "Third Co", items[2].Result.CompanyName)
}
