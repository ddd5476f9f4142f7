package service

import (
	"fmt"
	"strings"

	"github.com/trustlens/verification-api/internal/entity"
)

const (
	linkedInProfileTemplate = "https://linkedin.com/company/%s"
	twitterProfileTemplate  = "https://twitter.com/%s"
	facebookProfileTemplate = "https://facebook.com/%s"
)

// GenerateSocialLinks derives likely profile URLs for a company by
// substituting its normalized handle into fixed per-platform templates.
// The URLs are pattern guesses and are deliberately not checked for
// existence.
func GenerateSocialLinks(companyName string) entity.SocialLinks {
	handle := socialHandle(companyName)
	linkedIn := fmt.Sprintf(linkedInProfileTemplate, handle)
	twitter := fmt.Sprintf(twitterProfileTemplate, handle)
	facebook := fmt.Sprintf(facebookProfileTemplate, handle)

	return entity.SocialLinks{
		LinkedIn: &linkedIn,
		Twitter:  &twitter,
		Facebook: &facebook,
	}
}

// socialHandle lowercases the company name and strips all whitespace.
func socialHandle(companyName string) string {
	return strings.Join(strings.Fields(strings.ToLower(companyName)), "")
}
