package dto

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/trustlens/verification-api/internal/entity"
)

// MaxBatchCompanies caps how many companies a single batch request may carry.
const MaxBatchCompanies = 10

const (
	maxCompanyNameLength = 200
	maxWebsiteLength     = 500
)

// VerifyRequest is the payload for a single company verification. The same
// shape is used for each element of a batch request.
type VerifyRequest struct {
	CompanyName string `json:"company_name"`
	Website     string `json:"website,omitempty"`
}

// Validate checks the request against the documented field limits.
func (r VerifyRequest) Validate() error {
	if strings.TrimSpace(r.CompanyName) == "" {
		return eris.New("company_name is required")
	}
	if len(r.CompanyName) > maxCompanyNameLength {
		return eris.Errorf("company_name must be at most %d characters", maxCompanyNameLength)
	}
	if len(r.Website) > maxWebsiteLength {
		return eris.Errorf("website must be at most %d characters", maxWebsiteLength)
	}
	return nil
}

// BatchVerifyItem is one entry of a batch response: either a full
// verification result or an inline error for the item that failed.
type BatchVerifyItem struct {
	Result      *entity.VerificationResult
	CompanyName string
	Err         string
}

// MarshalJSON renders the item as the result object on success, or as a
// {company_name, error} pair when the item failed.
func (i BatchVerifyItem) MarshalJSON() ([]byte, error) {
	if i.Result != nil {
		return json.Marshal(i.Result)
	}
	return json.Marshal(struct {
		CompanyName string `json:"company_name"`
		Error       string `json:"error"`
	}{CompanyName: i.CompanyName, Error: i.Err})
}

// BatchVerifyResponse wraps the per-item outcomes of a batch request in
// input order.
type BatchVerifyResponse struct {
	Results []BatchVerifyItem `json:"results"`
}
