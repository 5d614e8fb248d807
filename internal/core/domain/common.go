package domain

import (
	"strings"
	"time"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// AccountRef identifies an account either by its internal ID or by its national ID.
// Exactly one of the fields is expected to be set.
type AccountRef struct {
	AccountID  string
	NationalID string
}

// ByAccountID returns a reference resolving an account by its internal ID.
func ByAccountID(id string) AccountRef {
	return AccountRef{AccountID: strings.TrimSpace(id)}
}

// ByNationalID returns a reference resolving an account by its national ID.
func ByNationalID(nationalID string) AccountRef {
	return AccountRef{NationalID: strings.TrimSpace(nationalID)}
}

// IsZero reports whether the reference names no account.
func (r AccountRef) IsZero() bool {
	return r.AccountID == "" && r.NationalID == ""
}

func (r AccountRef) String() string {
	if r.AccountID != "" {
		return "id:" + r.AccountID
	}
	return "national_id:" + r.NationalID
}

// normalizeToken lowercases s and drops spaces, underscores and dashes so that
// "Withdrawal Requested", "withdrawal_requested" and "WITHDRAWALREQUESTED" compare equal.
func normalizeToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case ' ', '_', '-', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
