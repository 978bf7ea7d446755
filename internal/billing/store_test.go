package billing

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPremiumStatusActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uid := uuid.NewString()
	expiry := time.Now().Add(30 * 24 * time.Hour)
	mock.ExpectQuery("SELECT is_premium, premium_expires_at").
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"is_premium", "premium_expires_at"}).AddRow(true, expiry))

	store := &Store{DB: db}
	st, err := store.PremiumStatus(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, st.IsPremium)
	require.NotNil(t, st.PremiumExpiresAt)
	assert.WithinDuration(t, expiry, *st.PremiumExpiresAt, time.Second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPremiumStatusNeverSubscribed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uid := uuid.NewString()
	mock.ExpectQuery("SELECT is_premium, premium_expires_at").
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"is_premium", "premium_expires_at"}).AddRow(false, nil))

	store := &Store{DB: db}
	st, err := store.PremiumStatus(context.Background(), uid)
	require.NoError(t, err)
	assert.False(t, st.IsPremium)
	assert.Nil(t, st.PremiumExpiresAt)
}

func TestStorePremiumStatusUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uid := uuid.NewString()
	mock.ExpectQuery("SELECT is_premium, premium_expires_at").
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"is_premium", "premium_expires_at"}))

	store := &Store{DB: db}
	_, err = store.PremiumStatus(context.Background(), uid)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpgradeSetsYearLongExpiry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uid := uuid.NewString()
	mock.ExpectExec("UPDATE users").
		WithArgs(uid, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := &Store{DB: db}
	before := time.Now()
	expiresAt, err := store.Upgrade(context.Background(), uid)
	require.NoError(t, err)

	assert.WithinDuration(t, before.Add(PremiumTerm), expiresAt, 5*time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpgradeUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uid := uuid.NewString()
	mock.ExpectExec("UPDATE users").
		WithArgs(uid, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := &Store{DB: db}
	_, err = store.Upgrade(context.Background(), uid)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDowngradeClearsFlag(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uid := uuid.NewString()
	mock.ExpectExec("UPDATE users").
		WithArgs(uid).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := &Store{DB: db}
	require.NoError(t, store.Downgrade(context.Background(), uid))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDemoOrder(t *testing.T) {
	uid := uuid.NewString()
	order := NewDemoOrder(uid)

	assert.Contains(t, order.ID, "order_")
	assert.Equal(t, int64(OrderAmountPaise), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "receipt_"+uid, order.Receipt)
	assert.Equal(t, "created", order.Status)
}
