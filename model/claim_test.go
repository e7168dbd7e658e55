package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestClaimStatusConstants(t *testing.T) {
	statuses := []string{StatusSubmitted, StatusPending, StatusUnderReview, StatusApproved, StatusDenied}
	expected := []string{"Submitted", "Pending", "Under Review", "Approved", "Denied"}

	for i, status := range statuses {
		if status != expected[i] {
			t.Errorf("Expected '%s', got '%s'", expected[i], status)
		}
	}
}

func TestIsValidClaimType(t *testing.T) {
	for _, valid := range ValidClaimTypes {
		if !IsValidClaimType(valid) {
			t.Errorf("Expected %q to be a valid claim type", valid)
		}
	}

	for _, invalid := range []string{"", "auto", "Pet", "AUTO"} {
		if IsValidClaimType(invalid) {
			t.Errorf("Expected %q to be rejected", invalid)
		}
	}
}

func TestClaimRecordJSONOmitsEmpty(t *testing.T) {
	rec := &ClaimRecord{
		ClaimID: "CLAIM-321",
		Status:  StatusDenied,
		Details: "Denied due to policy exclusions.",
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	body := string(data)
	if strings.Contains(body, "amount") {
		t.Error("Expected zero amount to be omitted")
	}
	if strings.Contains(body, "policyNumber") {
		t.Error("Expected empty policy number to be omitted")
	}
	if !strings.Contains(body, `"claimId":"CLAIM-321"`) {
		t.Errorf("Expected claimId field, got %s", body)
	}
}
