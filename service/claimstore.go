package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harborview/claimchat/backend/config"
	"github.com/harborview/claimchat/backend/model"
	"github.com/harborview/claimchat/backend/pkg/logger"
)

// ClaimStore resolves and creates claims. When a claims API is configured it
// is the primary source; on upstream failure the store degrades to its local
// table rather than surfacing the error. With no API configured every
// operation uses the local table ("demo mode").
type ClaimStore struct {
	cfg        *config.ClaimsAPIConfig
	httpClient *http.Client

	mu     sync.RWMutex
	claims map[string]*model.ClaimRecord

	idCounter atomic.Uint32
}

// NewClaimStore creates a store seeded with the built-in demo claims
func NewClaimStore(cfg *config.ClaimsAPIConfig) *ClaimStore {
	return &ClaimStore{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		claims: seedClaims(),
	}
}

func seedClaims() map[string]*model.ClaimRecord {
	return map[string]*model.ClaimRecord{
		"CLAIM-123": {
			ClaimID:            "CLAIM-123",
			Status:             model.StatusApproved,
			Details:            "Payment of $1,500 has been processed and will be deposited within 3-5 business days.",
			Amount:             1500,
			SubmissionDate:     "2024-01-15",
			ExpectedResolution: model.ResolutionCompleted,
		},
		"CLAIM-456": {
			ClaimID:            "CLAIM-456",
			Status:             model.StatusUnderReview,
			Details:            "Your claim is currently being reviewed by our claims adjuster. We may contact you for additional documentation.",
			Amount:             2800,
			SubmissionDate:     "2024-01-20",
			ExpectedResolution: "2024-02-05",
		},
		"CLAIM-789": {
			ClaimID:            "CLAIM-789",
			Status:             model.StatusPending,
			Details:            "Additional documentation required. Please submit proof of damage and repair estimates.",
			Amount:             950,
			SubmissionDate:     "2024-01-18",
			ExpectedResolution: "Pending documentation",
		},
		"CLAIM-321": {
			ClaimID:            "CLAIM-321",
			Status:             model.StatusDenied,
			Details:            "Claim denied due to policy exclusions. Damage occurred outside of coverage period.",
			SubmissionDate:     "2024-01-10",
			ExpectedResolution: model.ResolutionFinal,
		},
	}
}

// UsingMockData reports whether the store runs on the local table only.
// This is demo mode, not an error state; callers pass the flag through so
// the user can be told the data is not live.
func (s *ClaimStore) UsingMockData() bool {
	return s.cfg.APIKey == ""
}

// apiClaim mirrors the upstream claim JSON. Upstream deployments disagree on
// field names, so each logical field carries its known aliases and is
// normalized here, at the deserialization boundary.
type apiClaim struct {
	ClaimID             string  `json:"claimId"`
	ID                  string  `json:"id"`
	Status              string  `json:"status"`
	Details             string  `json:"details"`
	Description         string  `json:"description"`
	Amount              float64 `json:"amount"`
	ClaimAmount         float64 `json:"claimAmount"`
	SubmissionDate      string  `json:"submissionDate"`
	CreatedAt           string  `json:"createdAt"`
	ExpectedResolution  string  `json:"expectedResolution"`
	EstimatedResolution string  `json:"estimatedResolution"`
}

func (a *apiClaim) normalize(fallbackID string) *model.ClaimRecord {
	rec := &model.ClaimRecord{
		ClaimID:            firstNonEmpty(a.ClaimID, a.ID, fallbackID),
		Status:             firstNonEmpty(a.Status, "Unknown"),
		Details:            firstNonEmpty(a.Details, a.Description, "No additional details available"),
		SubmissionDate:     firstNonEmpty(a.SubmissionDate, a.CreatedAt),
		ExpectedResolution: firstNonEmpty(a.ExpectedResolution, a.EstimatedResolution),
	}
	if a.Amount > 0 {
		rec.Amount = a.Amount
	} else {
		rec.Amount = a.ClaimAmount
	}
	return rec
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Resolve looks up a claim by its well-formed identifier. A nil record with a
// nil error means not found. Upstream failures other than 404 are logged and
// recovered via the local table; they never reach the caller as errors.
func (s *ClaimStore) Resolve(ctx context.Context, claimID string) (*model.ClaimRecord, error) {
	if s.UsingMockData() {
		logger.Debug(ctx, "claims api not configured, using mock data", "claim_id", claimID)
		return s.lookupLocal(claimID), nil
	}

	rec, err := s.fetchRemote(ctx, claimID)
	if err != nil {
		// Keep the upstream failure visible to operators; the caller only
		// sees the fallback result.
		logger.Warn(ctx, "claims api lookup failed, falling back to local data",
			"claim_id", claimID,
			"error", err,
		)
		return s.lookupLocal(claimID), nil
	}
	return rec, nil
}

func (s *ClaimStore) fetchRemote(ctx context.Context, claimID string) (*model.ClaimRecord, error) {
	url := fmt.Sprintf("%s/claims/%s", strings.TrimRight(s.cfg.BaseURL, "/"), claimID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil // Claim genuinely absent, no fallback
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("claims API error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var raw apiClaim
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return raw.normalize(claimID), nil
}

func (s *ClaimStore) lookupLocal(claimID string) *model.ClaimRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claims[claimID]
}

// ValidateSubmission checks the intake payload, naming each violated field
func ValidateSubmission(sub *model.ClaimSubmission) error {
	var missing []string
	if sub.PolicyNumber == "" {
		missing = append(missing, "policyNumber")
	}
	if sub.ClaimType == "" {
		missing = append(missing, "claimType")
	}
	if sub.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
	}

	if !model.IsValidClaimType(sub.ClaimType) {
		return fmt.Errorf("invalid claim type %q, must be one of: %s",
			sub.ClaimType, strings.Join(model.ValidClaimTypes, ", "))
	}

	if sub.EstimatedAmount < 0 {
		return fmt.Errorf("estimatedAmount must be a non-negative number")
	}

	return nil
}

// Create records a new claim. Callers validate the submission first. When the
// claims API is configured the claim is POSTed upstream; on any failure the
// claim is synthesized locally instead so a later Resolve still finds it.
func (s *ClaimStore) Create(ctx context.Context, sub *model.ClaimSubmission) (*model.ClaimRecord, error) {
	if !s.UsingMockData() {
		rec, err := s.createRemote(ctx, sub)
		if err == nil {
			return rec, nil
		}
		logger.Warn(ctx, "claims api create failed, creating claim locally", "error", err)
	}

	return s.createLocal(sub), nil
}

func (s *ClaimStore) createRemote(ctx context.Context, sub *model.ClaimSubmission) (*model.ClaimRecord, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission: %w", err)
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/claims"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("claims API error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var raw apiClaim
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	rec := raw.normalize("")
	if rec.ClaimID == "" {
		return nil, fmt.Errorf("claims API response missing claim id")
	}
	if rec.Amount == 0 {
		rec.Amount = sub.EstimatedAmount
	}
	if rec.SubmissionDate == "" {
		rec.SubmissionDate = time.Now().Format("2006-01-02")
	}
	if rec.ExpectedResolution == "" {
		rec.ExpectedResolution = "Under review"
	}
	rec.PolicyNumber = sub.PolicyNumber
	rec.ClaimType = sub.ClaimType
	rec.ContactInfo = sub.ContactInfo
	rec.Documents = sub.Documents
	return rec, nil
}

func (s *ClaimStore) createLocal(sub *model.ClaimSubmission) *model.ClaimRecord {
	details := sub.Description
	if details == "" {
		details = "Claim submitted successfully. Our team will review your submission."
	}

	rec := &model.ClaimRecord{
		Status:             model.StatusSubmitted,
		Details:            details,
		Amount:             sub.EstimatedAmount,
		SubmissionDate:     time.Now().Format("2006-01-02"),
		ExpectedResolution: "Under review",
		PolicyNumber:       sub.PolicyNumber,
		ClaimType:          sub.ClaimType,
		ContactInfo:        sub.ContactInfo,
		Documents:          sub.Documents,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-generate on the rare collision with an existing id
	for {
		id := s.generateClaimID()
		if _, exists := s.claims[id]; !exists {
			rec.ClaimID = id
			break
		}
	}
	s.claims[rec.ClaimID] = rec

	return rec
}

// generateClaimID builds CLAIM-<digits> from a 6-digit timestamp suffix and a
// 3-digit monotonic counter, so ids generated in the same millisecond differ
func (s *ClaimStore) generateClaimID() string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	seq := s.idCounter.Add(1) % 1000
	return fmt.Sprintf("CLAIM-%s%03d", ts, seq)
}

// Count returns the number of claims held locally
func (s *ClaimStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.claims)
}
