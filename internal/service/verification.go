package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trustlens/verification-api/internal/dto"
	"github.com/trustlens/verification-api/internal/entity"
	"github.com/trustlens/verification-api/internal/service/scoring"
)

// WebsiteChecker abstracts the website probe so the verification flow can be
// tested without outbound traffic.
type WebsiteChecker interface {
	Probe(ctx context.Context, website string) entity.WebsiteProbeResult
}

// VerificationService assembles legitimacy verdicts for companies.
type VerificationService struct {
	prober WebsiteChecker
}

// NewVerificationService wires the verification pipeline.
func NewVerificationService(prober WebsiteChecker) *VerificationService {
	return &VerificationService{prober: prober}
}

// Verify runs the pipeline for one company: an optional website probe,
// social pattern generation and confidence scoring. The website is echoed
// back in normalized form only when the probe succeeded.
func (s *VerificationService) Verify(ctx context.Context, req dto.VerifyRequest) (*entity.VerificationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var probe entity.WebsiteProbeResult
	website := strings.TrimSpace(req.Website)
	if website != "" {
		probe = s.prober.Probe(ctx, website)
	}

	social := GenerateSocialLinks(req.CompanyName)

	// TODO: replace the static placeholder with a real search provider.
	presence := entity.OnlinePresence{
		HasMentions:        true,
		SearchResultsCount: 0,
	}

	assessment := scoring.Evaluate(probe, social, presence)

	result := &entity.VerificationResult{
		CompanyName:     req.CompanyName,
		Verified:        scoring.Verified(assessment.Confidence, assessment.RiskFlags),
		ConfidenceScore: assessment.Confidence,
		SocialLinks:     social,
		OnlinePresence:  presence,
		RiskFlags:       assessment.RiskFlags,
		Timestamp:       time.Now().UTC(),
	}
	if probe.Exists {
		normalized := NormalizeWebsiteURL(website)
		result.Website = &normalized
	}

	zap.L().Debug("company verified",
		zap.String("company_name", req.CompanyName),
		zap.Bool("verified", result.Verified),
		zap.Float64("confidence_score", result.ConfidenceScore),
	)

	return result, nil
}

// VerifyBatch runs Verify sequentially over the slice and captures per-item
// failures inline so one bad entry does not abort the rest.
func (s *VerificationService) VerifyBatch(ctx context.Context, companies []dto.VerifyRequest) []dto.BatchVerifyItem {
	items := make([]dto.BatchVerifyItem, 0, len(companies))
	for _, company := range companies {
		result, err := s.Verify(ctx, company)
		if err != nil {
			zap.L().Warn("batch item failed",
				zap.String("company_name", company.CompanyName),
				zap.Error(err),
			)
			items = append(items, dto.BatchVerifyItem{
				CompanyName: company.CompanyName,
				Err:         err.Error(),
			})
			continue
		}
		items = append(items, dto.BatchVerifyItem{Result: result})
	}
	return items
}
