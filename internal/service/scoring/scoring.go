package scoring

import (
	"fmt"
	"math"

	"github.com/trustlens/verification-api/internal/entity"
)

// Risk flag messages. Flags are always emitted in the order the constants
// are listed here.
const (
	FlagNoWebsite = "No active website found"
	FlagNoSSL     = "Website lacks SSL certificate"
	FlagNoSocial  = "No social media presence detected"

	flagWebsiteError = "Website error: %s"
)

const (
	maxPoints        = 5.0
	websiteExistsPts = 2.0
	sslPts           = 0.5
	metadataPts      = 0.5
	socialLinkPts    = 0.5
	socialPtsCap     = 1.5
	mentionsPts      = 0.5
)

const (
	verifiedThreshold = 0.50
	maxVerifiedFlags  = 1
)

// Assessment reports the confidence score and the ordered risk flags for a
// set of verification signals.
type Assessment struct {
	Confidence float64
	RiskFlags  []string
}

// Evaluate folds the probe, social and presence signals into a confidence
// score in [0, 1] plus human-readable risk flags.
func Evaluate(probe entity.WebsiteProbeResult, social entity.SocialLinks, presence entity.OnlinePresence) Assessment {
	return Assessment{
		Confidence: confidence(probe, social, presence),
		RiskFlags:  riskFlags(probe, social),
	}
}

// Verified reports whether a company passes the verification bar: a
// confidence of at least 0.50 with no more than one risk flag. It is a pure
// function of its inputs and is recomputed for every result.
func Verified(confidence float64, riskFlags []string) bool {
	return confidence >= verifiedThreshold && len(riskFlags) <= maxVerifiedFlags
}

func confidence(probe entity.WebsiteProbeResult, social entity.SocialLinks, presence entity.OnlinePresence) float64 {
	points := 0.0
	if probe.Exists {
		points += websiteExistsPts
		if probe.SSLValid {
			points += sslPts
		}
		if present(probe.Title) && present(probe.Description) {
			points += metadataPts
		}
	}

	socialPoints := socialLinkPts * float64(social.Count())
	if socialPoints > socialPtsCap {
		socialPoints = socialPtsCap
	}
	points += socialPoints

	if presence.HasMentions {
		points += mentionsPts
	}

	return round2(points / maxPoints)
}

func riskFlags(probe entity.WebsiteProbeResult, social entity.SocialLinks) []string {
	flags := []string{}
	if !probe.Exists {
		flags = append(flags, FlagNoWebsite)
	}
	if probe.Exists && !probe.SSLValid {
		flags = append(flags, FlagNoSSL)
	}
	if social.Count() == 0 {
		flags = append(flags, FlagNoSocial)
	}
	if probe.Error != "" {
		flags = append(flags, fmt.Sprintf(flagWebsiteError, probe.Error))
	}
	return flags
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
