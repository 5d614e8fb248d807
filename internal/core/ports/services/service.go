package services

import (
	"context"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Investment InvestmentSvcFacade
	Accrual    AccrualSvc
	Referral   ReferralSvcFacade
	Withdrawal WithdrawalSvcFacade
	Plan       PlanSvcFacade
	Payment    PaymentSvc
	AdminAuth  AdminAuthSvc
}

// StaticDataService defines the interface for seeding static data like the plan catalog.
type StaticDataService interface {
	InitializeStaticData(ctx context.Context) error
}
