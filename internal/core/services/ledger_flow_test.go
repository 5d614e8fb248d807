package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/core/services"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLedgerFlow walks one account from first investment to an approved payout.
func TestLedgerFlow(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore(t)
	clock := newTestClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	investments := services.NewInvestmentService(store, store,
		services.WithPaymentVerification(testPaymentSecret, true),
		services.WithInvestmentClock(clock.Now))
	accrual := services.NewAccrualService(store, store, services.WithAccrualClock(clock.Now))
	referrals := services.NewReferralService(store, services.WithReferralClock(clock.Now))
	withdrawals := services.NewWithdrawalService(store, services.WithWithdrawalClock(clock.Now))

	// First investment creates the account.
	acc, err := investments.SubmitInvestment(ctx, signedSubmission("111122223333", "Ravi Kumar", "1 year", 1000, ""))
	require.NoError(t, err)
	require.Len(t, acc.Investments, 1)
	assert.Equal(t, domain.InvestmentPending, acc.Investments[0].Status)
	assert.True(t, acc.Investments[0].Profit.IsZero())
	require.Len(t, acc.Transactions, 1)
	assert.Equal(t, domain.TransactionDeposit, acc.Transactions[0].Kind)
	assert.True(t, acc.Transactions[0].Amount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, domain.ReferralNone, acc.ReferralStatus)
	assert.Regexp(t, `^RAVIKUMAR\d{4}$`, acc.ReferralCode)

	// Admin starts the investment earning.
	earning := "earning"
	acc, err = investments.AdminSetInvestmentState(ctx, domain.ByAccountID(acc.AccountID), 0, dto.UpdateInvestmentRequest{Status: &earning})
	require.NoError(t, err)
	assert.Equal(t, domain.InvestmentEarning, acc.Investments[0].Status)

	// One accrual credits 0.50% of 1000.
	report, err := accrual.RunDailyAccrual(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.InvestmentsCredited)
	acc, err = store.FindAccount(ctx, domain.ByAccountID(acc.AccountID))
	require.NoError(t, err)
	assert.True(t, acc.Investments[0].Profit.Equal(decimal.RequireFromString("5.00")), acc.Investments[0].Profit.String())

	// A second run on the same calendar day changes nothing.
	clock.Advance(3 * time.Hour)
	report, err = accrual.RunDailyAccrual(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.InvestmentsCredited)
	assert.Equal(t, 1, report.InvestmentsSkipped)
	acc, err = store.FindAccount(ctx, domain.ByAccountID(acc.AccountID))
	require.NoError(t, err)
	assert.True(t, acc.Investments[0].Profit.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, 1, countTransactions(acc, domain.TransactionProfitCredit))

	// Two approved referrals bring the balance to 200.
	for _, nid := range []string{"444455556666", "777788889999"} {
		referee, err := investments.SubmitInvestment(ctx, signedSubmission(nid, "Friend "+nid, "2 year", 500, acc.ReferralCode))
		require.NoError(t, err)
		assert.Equal(t, domain.ReferralPending, referee.ReferralStatus)
		_, err = referrals.ApproveReferral(ctx, referee.AccountID)
		require.NoError(t, err)
	}
	acc, err = store.FindAccount(ctx, domain.ByAccountID(acc.AccountID))
	require.NoError(t, err)
	require.True(t, acc.Balance.Equal(decimal.NewFromInt(200)), acc.Balance.String())

	// Withdrawal request snapshots the balance.
	req, err := withdrawals.RequestWithdrawal(ctx, domain.ByNationalID("111122223333"), domain.PayoutDestination{UPI: "ravi@upi"})
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalPending, req.Status)
	assert.True(t, req.Amount.Equal(decimal.NewFromInt(200)))

	// A second request before resolution conflicts.
	_, err = withdrawals.RequestWithdrawal(ctx, domain.ByNationalID("111122223333"), domain.PayoutDestination{UPI: "ravi@upi"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Approval pays out the whole snapshot.
	acc, err = withdrawals.ResolveWithdrawal(ctx, domain.ByAccountID(acc.AccountID), "Approved")
	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())
	require.Equal(t, 1, countTransactions(acc, domain.TransactionWithdrawal))
	for _, txn := range acc.Transactions {
		if txn.Kind == domain.TransactionWithdrawal {
			assert.True(t, txn.Amount.Equal(decimal.NewFromInt(200)))
		}
	}
	assert.Equal(t, domain.ReferralCompleted, acc.ReferralStatus)
	assert.Equal(t, domain.WithdrawalApproved, acc.WithdrawalRequest.Status)
}
