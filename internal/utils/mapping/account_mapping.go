package mapping

import (
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	investments := make([]models.Investment, len(d.Investments))
	for i, inv := range d.Investments {
		investments[i] = models.Investment{
			Plan:          inv.Plan,
			Principal:     inv.Principal,
			FrontProofRef: inv.FrontProofRef,
			BackProofRef:  inv.BackProofRef,
			CreatedAt:     inv.CreatedAt,
			Status:        string(inv.Status),
			Profit:        inv.Profit,
			LastAccruedAt: inv.LastAccruedAt,
			Locked:        inv.Locked,
		}
	}
	transactions := make([]models.Transaction, len(d.Transactions))
	for i, txn := range d.Transactions {
		transactions[i] = models.Transaction{
			Kind:      string(txn.Kind),
			Amount:    txn.Amount,
			Timestamp: txn.Timestamp,
			Detail:    txn.Detail,
			Reference: txn.Reference,
		}
	}
	referredBy := d.ReferredBy
	if referredBy == nil {
		referredBy = []string{}
	}
	status := d.WithdrawalRequest.Status
	if status == "" {
		status = domain.WithdrawalNone
	}
	return models.Account{
		AccountID:      d.AccountID,
		NationalID:     d.NationalID,
		Name:           d.Profile.Name,
		Email:          d.Profile.Email,
		Phone:          d.Profile.Phone,
		ReferralCode:   d.ReferralCode,
		ReferredBy:     referredBy,
		ReferralStatus: string(d.ReferralStatus),
		Balance:        d.Balance,
		Investments:    investments,
		Transactions:   transactions,
		WithdrawalRequest: models.WithdrawalRequest{
			Amount:      d.WithdrawalRequest.Amount,
			Status:      string(status),
			RequestedAt: d.WithdrawalRequest.RequestedAt,
			ResolvedAt:  d.WithdrawalRequest.ResolvedAt,
			UPI:         d.WithdrawalRequest.Destination.UPI,
			BankAccount: d.WithdrawalRequest.Destination.BankAccount,
			IFSC:        d.WithdrawalRequest.Destination.IFSC,
		},
		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	investments := make([]domain.Investment, len(m.Investments))
	for i, inv := range m.Investments {
		investments[i] = domain.Investment{
			Plan:          inv.Plan,
			Principal:     inv.Principal,
			FrontProofRef: inv.FrontProofRef,
			BackProofRef:  inv.BackProofRef,
			CreatedAt:     inv.CreatedAt,
			Status:        domain.InvestmentStatus(inv.Status),
			Profit:        inv.Profit,
			LastAccruedAt: inv.LastAccruedAt,
			Locked:        inv.Locked,
		}
	}
	transactions := make([]domain.Transaction, len(m.Transactions))
	for i, txn := range m.Transactions {
		transactions[i] = domain.Transaction{
			Kind:      domain.TransactionKind(txn.Kind),
			Amount:    txn.Amount,
			Timestamp: txn.Timestamp,
			Detail:    txn.Detail,
			Reference: txn.Reference,
		}
	}
	status := domain.WithdrawalStatus(m.WithdrawalRequest.Status)
	if status == "" {
		status = domain.WithdrawalNone
	}
	referralStatus := domain.ReferralStatus(m.ReferralStatus)
	if referralStatus == "" {
		referralStatus = domain.ReferralNone
	}
	return domain.Account{
		AccountID:  m.AccountID,
		NationalID: m.NationalID,
		Profile: domain.Profile{
			Name:  m.Name,
			Email: m.Email,
			Phone: m.Phone,
		},
		ReferralCode:   m.ReferralCode,
		ReferredBy:     m.ReferredBy,
		ReferralStatus: referralStatus,
		Balance:        m.Balance,
		Investments:    investments,
		Transactions:   transactions,
		WithdrawalRequest: domain.WithdrawalRequest{
			Amount:      m.WithdrawalRequest.Amount,
			Status:      status,
			RequestedAt: m.WithdrawalRequest.RequestedAt,
			ResolvedAt:  m.WithdrawalRequest.ResolvedAt,
			Destination: domain.PayoutDestination{
				UPI:         m.WithdrawalRequest.UPI,
				BankAccount: m.WithdrawalRequest.BankAccount,
				IFSC:        m.WithdrawalRequest.IFSC,
			},
		},
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
