package model

// ClaimRecord represents one insurance claim as shown to the user.
// Records are immutable once created; there is no update or cancel path.
type ClaimRecord struct {
	ClaimID            string            `json:"claimId"`
	Status             string            `json:"status"`
	Details            string            `json:"details"`
	Amount             float64           `json:"amount,omitempty"`
	SubmissionDate     string            `json:"submissionDate,omitempty"`
	ExpectedResolution string            `json:"expectedResolution,omitempty"`
	PolicyNumber       string            `json:"policyNumber,omitempty"`
	ClaimType          string            `json:"claimType,omitempty"`
	ContactInfo        map[string]string `json:"contactInfo,omitempty"`
	Documents          []string          `json:"documents,omitempty"`
}

// ClaimSubmission is the payload for creating a new claim.
type ClaimSubmission struct {
	PolicyNumber    string            `json:"policyNumber"`
	ClaimType       string            `json:"claimType"`
	Description     string            `json:"description"`
	EstimatedAmount float64           `json:"estimatedAmount"`
	ContactInfo     map[string]string `json:"contactInfo"`
	Documents       []string          `json:"documents"`
}

// Claim status constants
const (
	StatusSubmitted   = "Submitted"
	StatusPending     = "Pending"
	StatusUnderReview = "Under Review"
	StatusApproved    = "Approved"
	StatusDenied      = "Denied"
)

// Expected-resolution markers that mean no further timeline applies
const (
	ResolutionCompleted = "Completed"
	ResolutionFinal     = "Final decision"
)

// ValidClaimTypes lists the claim types accepted on the creation path
var ValidClaimTypes = []string{"Auto", "Home", "Health", "Life", "Business", "General"}

// IsValidClaimType reports whether t is one of the accepted claim types
func IsValidClaimType(t string) bool {
	for _, v := range ValidClaimTypes {
		if t == v {
			return true
		}
	}
	return false
}
