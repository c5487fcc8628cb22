package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-pos/logger"
	"resto-pos/models"
	"resto-pos/testutil"
)

func TestRecordOrderTransaction_CreditsDefaultAccount(t *testing.T) {
	db := newDB(t)
	svc := NewLedgerService(db, logger.Discard())
	ctx := context.Background()

	for i, mode := range []string{"Cash", "Card", "UPI"} {
		res := svc.RecordOrderTransaction(ctx, uint(i+1), 100.5, mode)
		require.True(t, res.OK, res.Reason)
		assert.NotZero(t, res.TransactionID)
	}

	acc, err := svc.Account(ctx, models.DefaultAccountID)
	require.NoError(t, err)
	assert.InDelta(t, 301.5, acc.Balance, 1e-9)

	txs, err := svc.RecentTransactions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for _, tx := range txs {
		assert.Equal(t, uint(models.DefaultAccountID), tx.AccountID)
		assert.Equal(t, models.EntryCredit, tx.Type)
	}
	assert.Equal(t, "Order #3", txs[0].Description)
	assert.Equal(t, "UPI", txs[0].PaymentMethod)
	assert.Equal(t, uint(3), *txs[0].OrderID)
}

func TestRecordOrderTransaction_MissingAccountReturnsResult(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewLedgerService(db, logger.Discard())

	res := svc.RecordOrderTransaction(context.Background(), 1, 50, "Cash")
	assert.False(t, res.OK)
	assert.Contains(t, res.Reason, "account 1")

	var count int64
	db.Model(&models.LedgerTransaction{}).Count(&count)
	assert.Zero(t, count)
}
