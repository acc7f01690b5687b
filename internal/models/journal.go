package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateBucketFormat renders a transaction date as its calendar-day partition key.
const DateBucketFormat = "2006-01-02"

// Leg is the stored form of one journal entry side, serialized to JSON inside
// the journal entry row.
type Leg struct {
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
}

// JournalEntry is one row of the time-partitioned journal store. The primary
// key is (date_bucket, transaction_id): entries partition by calendar day and
// cluster by transaction identifier within a bucket.
type JournalEntry struct {
	DateBucket      string    `db:"date_bucket"`
	TransactionID   string    `db:"transaction_id"`
	TransactionDate time.Time `db:"transaction_date"`
	TransactionType string    `db:"transaction_type"`
	Clerk           string    `db:"clerk"`
	Note            string    `db:"note"`
	Message         string    `db:"message"`
	Debtors         []byte    `db:"debtors"`   // JSON-encoded []Leg
	Creditors       []byte    `db:"creditors"` // JSON-encoded []Leg
	State           string    `db:"state"`
	CreatedAt       time.Time `db:"created_at"`
	CreatedBy       string    `db:"created_by"`
}

// JournalEntryLookup maps a transaction identifier to its date bucket. Written
// after the primary row (dual write) to support O(1) lookup by id.
type JournalEntryLookup struct {
	TransactionID string `db:"transaction_id"`
	DateBucket    string `db:"date_bucket"`
}

// TransactionType is one row of the transaction type registry.
type TransactionType struct {
	Code        string `db:"code"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}
