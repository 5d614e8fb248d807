package services

import (
	"context"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
)

// ReferralReaderSvc defines read operations for referrals.
type ReferralReaderSvc interface {
	// ListPendingReferrals returns accounts whose referral awaits a decision.
	ListPendingReferrals(ctx context.Context) ([]domain.Account, error)
}

// ReferralWriterSvc defines referral decisions.
type ReferralWriterSvc interface {
	// ApproveReferral credits the referrer and marks the referee approved.
	ApproveReferral(ctx context.Context, accountID string) (*domain.Account, error)

	// RejectReferral marks a pending referral rejected without any credit.
	RejectReferral(ctx context.Context, accountID string) (*domain.Account, error)
}

// ReferralSvcFacade combines all referral-related service interfaces
type ReferralSvcFacade interface {
	ReferralReaderSvc
	ReferralWriterSvc
}
