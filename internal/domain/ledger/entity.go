package ledger

import (
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
)

// EntryType identifies the source of a ledger credit.
type EntryType string

const (
	EntryTypeManualCredit       EntryType = "manual_credit"
	EntryTypeRecoverySettlement EntryType = "recovery_settlement"
)

const (
	ReferenceManualAdjustment = "manual_adjustment"
	ReferenceRecoveryRequest  = "recovery_request"
)

// LedgerEntry is one credit written to the hour bank. (ReferenceType,
// ReferenceID) is unique so the same source can never be credited twice.
type LedgerEntry struct {
	ID            string
	UserID        string
	Date          time.Time
	Type          EntryType
	Hours         float64
	ReferenceType string
	ReferenceID   string
	Description   string
	Notes         *string
	CreatedBy     *string
	CreatedAt     time.Time
}

// Period is an inclusive range of calendar days.
type Period struct {
	From time.Time
	To   time.Time
}

// YearPeriod covers the calendar year in loc.
func YearPeriod(year int, loc *time.Location) Period {
	return Period{
		From: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		To:   time.Date(year, time.December, 31, 0, 0, 0, 0, loc),
	}
}

type BalanceStatus string

const (
	BalanceNegative BalanceStatus = "negative"
	BalanceZero     BalanceStatus = "zero"
	BalancePositive BalanceStatus = "positive"
)

// Balance is the computed hour bank of one user over a period.
type Balance struct {
	UserID          string
	Period          Period
	AttendanceHours float64 // Σ daily balances up to today
	ManualCredits   float64
	RecoveryCredits float64
	Balance         float64
	DebtHours       float64
	CreditHours     float64
	Status          BalanceStatus
}

// NewBalance sums the three sources and classifies the result.
func NewBalance(userID string, period Period, attendanceHours, manualCredits, recoveryCredits float64) Balance {
	total := timecalc.RoundHours(attendanceHours + manualCredits + recoveryCredits)
	b := Balance{
		UserID:          userID,
		Period:          period,
		AttendanceHours: timecalc.RoundHours(attendanceHours),
		ManualCredits:   timecalc.RoundHours(manualCredits),
		RecoveryCredits: timecalc.RoundHours(recoveryCredits),
		Balance:         total,
	}
	switch {
	case total < 0:
		b.Status = BalanceNegative
		b.DebtHours = -total
	case total > 0:
		b.Status = BalancePositive
		b.CreditHours = total
	default:
		b.Status = BalanceZero
	}
	return b
}

func (b Balance) InDebt() bool { return b.Status == BalanceNegative }

// Debtor is a user whose balance is below the debtor threshold.
type Debtor struct {
	UserID    string
	Balance   float64
	DebtHours float64
}

// Credits is the sum of ledger entries by type over a period.
type Credits struct {
	Manual   float64
	Recovery float64
}
