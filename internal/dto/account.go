package dto

import (
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LookupAccountRequest identifies an account by national ID.
type LookupAccountRequest struct {
	NationalID string `json:"aadhaar" binding:"required"`
}

// InvestmentResponse defines the data returned for an investment.
type InvestmentResponse struct {
	Index         int                     `json:"index"`
	Plan          string                  `json:"plan"`
	Amount        decimal.Decimal         `json:"amount"`
	Profit        decimal.Decimal         `json:"profit"`
	Status        domain.InvestmentStatus `json:"status"`
	Locked        bool                    `json:"locked"`
	Date          time.Time               `json:"date"`
	LastAccruedAt *time.Time              `json:"lastAccruedAt,omitempty"`
	FrontImg      string                  `json:"frontImg"`
	BackImg       string                  `json:"backImg"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID         string                   `json:"accountID"`
	NationalID        string                   `json:"aadhaar"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	Phone             string                   `json:"phone"`
	ReferralCode      string                   `json:"referralCode"`
	ReferredBy        []string                 `json:"referredBy"`
	ReferralStatus    domain.ReferralStatus    `json:"referralStatus"`
	Balance           decimal.Decimal          `json:"balance"`
	Investments       []InvestmentResponse     `json:"investments"`
	Transactions      []domain.Transaction     `json:"transactions"`
	WithdrawalRequest domain.WithdrawalRequest `json:"withdrawalRequest"`
	CreatedAt         time.Time                `json:"createdAt"`
	LastUpdatedAt     time.Time                `json:"lastUpdatedAt"`
}

// ToInvestmentResponse converts an indexed investment to its DTO.
func ToInvestmentResponse(index int, inv domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		Index:         index,
		Plan:          inv.Plan,
		Amount:        inv.Principal,
		Profit:        inv.Profit,
		Status:        inv.Status,
		Locked:        inv.Locked,
		Date:          inv.CreatedAt,
		LastAccruedAt: inv.LastAccruedAt,
		FrontImg:      inv.FrontProofRef,
		BackImg:       inv.BackProofRef,
	}
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	investments := make([]InvestmentResponse, len(acc.Investments))
	for i, inv := range acc.Investments {
		investments[i] = ToInvestmentResponse(i, inv)
	}
	referredBy := acc.ReferredBy
	if referredBy == nil {
		referredBy = []string{}
	}
	transactions := acc.Transactions
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return AccountResponse{
		AccountID:         acc.AccountID,
		NationalID:        acc.NationalID,
		Name:              acc.Profile.Name,
		Email:             acc.Profile.Email,
		Phone:             acc.Profile.Phone,
		ReferralCode:      acc.ReferralCode,
		ReferredBy:        referredBy,
		ReferralStatus:    acc.ReferralStatus,
		Balance:           acc.Balance,
		Investments:       investments,
		Transactions:      transactions,
		WithdrawalRequest: acc.WithdrawalRequest,
		CreatedAt:         acc.CreatedAt,
		LastUpdatedAt:     acc.LastUpdatedAt,
	}
}

// AccountInvestmentsResponse is one account in an admin investment listing.
type AccountInvestmentsResponse struct {
	AccountID    string               `json:"accountID"`
	NationalID   string               `json:"aadhaar"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	ReferralCode string               `json:"referralCode"`
	Investments  []InvestmentResponse `json:"investments"`
}

// ToAccountInvestmentsResponses converts grouped investments to DTOs.
func ToAccountInvestmentsResponses(groups []domain.AccountInvestments) []AccountInvestmentsResponse {
	res := make([]AccountInvestmentsResponse, len(groups))
	for i, g := range groups {
		invs := make([]InvestmentResponse, len(g.Investments))
		for j, inv := range g.Investments {
			invs[j] = ToInvestmentResponse(inv.Index, inv.Investment)
		}
		res[i] = AccountInvestmentsResponse{
			AccountID:    g.AccountID,
			NationalID:   g.NationalID,
			Name:         g.Profile.Name,
			Email:        g.Profile.Email,
			Phone:        g.Profile.Phone,
			ReferralCode: g.ReferralCode,
			Investments:  invs,
		}
	}
	return res
}

// WithdrawalResponse is one row of the admin withdrawal listing.
type WithdrawalResponse struct {
	AccountID   string                  `json:"accountID"`
	NationalID  string                  `json:"aadhaar"`
	Name        string                  `json:"name"`
	Email       string                  `json:"email"`
	Phone       string                  `json:"phone"`
	Amount      decimal.Decimal         `json:"amount"`
	Status      domain.WithdrawalStatus `json:"status"`
	CreatedAt   *time.Time              `json:"createdAt"`
	ResolvedAt  *time.Time              `json:"resolvedAt,omitempty"`
	UPI         string                  `json:"upi,omitempty"`
	BankAccount string                  `json:"bankAccount,omitempty"`
	IFSC        string                  `json:"ifsc,omitempty"`
}

// ToWithdrawalResponses converts withdrawal views to DTOs.
func ToWithdrawalResponses(views []domain.WithdrawalView) []WithdrawalResponse {
	res := make([]WithdrawalResponse, len(views))
	for i, v := range views {
		res[i] = WithdrawalResponse{
			AccountID:   v.AccountID,
			NationalID:  v.NationalID,
			Name:        v.Profile.Name,
			Email:       v.Profile.Email,
			Phone:       v.Profile.Phone,
			Amount:      v.Amount,
			Status:      v.Status,
			CreatedAt:   v.RequestedAt,
			ResolvedAt:  v.ResolvedAt,
			UPI:         v.Destination.UPI,
			BankAccount: v.Destination.BankAccount,
			IFSC:        v.Destination.IFSC,
		}
	}
	return res
}
