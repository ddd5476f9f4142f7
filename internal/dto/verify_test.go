package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustlens/verification-api/internal/entity"
)

func TestVerifyRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     VerifyRequest
		wantErr string
	}{
		{
			name: "valid with website",
			req:  VerifyRequest{CompanyName: "Acme Corp", Website: "acme.com"},
		},
		{
			name: "valid without website",
			req:  VerifyRequest{CompanyName: "Acme Corp"},
		},
		{
			name:    "missing company name",
			req:     VerifyRequest{Website: "acme.com"},
			wantErr: "company_name is required",
		},
		{
			name:    "blank company name",
			req:     VerifyRequest{CompanyName: "   "},
			wantErr: "company_name is required",
		},
		{
			name:    "company name too long",
			req:     VerifyRequest{CompanyName: strings.Repeat("a", 201)},
			wantErr: "company_name must be at most 200 characters",
		},
		{
			name:    "website too long",
			req:     VerifyRequest{CompanyName: "Acme Corp", Website: strings.Repeat("a", 501)},
			wantErr: "website must be at most 500 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestBatchVerifyItemMarshalsResult(t *testing.T) {
	result := &entity.VerificationResult{
		CompanyName:     "Acme Corp",
		Verified:        true,
		ConfidenceScore: 0.6,
		RiskFlags:       []string{},
		Timestamp:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	item := BatchVerifyItem{Result: result}

	got, err := json.Marshal(item)
	require.NoError(t, err)

	want, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestBatchVerifyItemMarshalsError(t *testing.T) {
	item := BatchVerifyItem{CompanyName: "Acme Corp", Err: "company_name is required"}

	got, err := json.Marshal(item)
	require.NoError(t, err)

	assert.JSONEq(t, `{"company_name":"Acme Corp","error":"company_name is required"}`, string(got))
}

func TestBatchVerifyResponseShape(t *testing.T) {
	resp := BatchVerifyResponse{Results: []BatchVerifyItem{
		{CompanyName: "Bad Co", Err: "boom"},
	}}

	got, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{"results":[{"company_name":"Bad Co","error":"boom"}]}`, string(got))
}
