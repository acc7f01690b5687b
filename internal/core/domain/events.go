package domain

import "time"

// Event names published after each successfully applied mutation.
const (
	EventPostLedger          = "POST_LEDGER"
	EventPutLedger           = "PUT_LEDGER"
	EventDeleteLedger        = "DELETE_LEDGER"
	EventPostSubLedger       = "POST_SUB_LEDGER"
	EventPostAccount         = "POST_ACCOUNT"
	EventPutAccount          = "PUT_ACCOUNT"
	EventDeleteAccount       = "DELETE_ACCOUNT"
	EventLockAccount         = "LOCK_ACCOUNT"
	EventUnlockAccount       = "UNLOCK_ACCOUNT"
	EventCloseAccount        = "CLOSE_ACCOUNT"
	EventReopenAccount       = "REOPEN_ACCOUNT"
	EventPostJournalEntry    = "POST_JOURNAL_ENTRY"
	EventReleaseJournalEntry = "RELEASE_JOURNAL_ENTRY"
	EventPostTxType          = "POST_TX_TYPE"
	EventPutTxType           = "PUT_TX_TYPE"
)

// Event is a domain event carrying the affected entity's identifier and the
// tenant it belongs to. Completion of an accepted command is signalled by its
// event, not by the initial response.
type Event struct {
	Name       string    `json:"name"`
	EntityID   string    `json:"entityID"`
	Tenant     string    `json:"tenant"`
	OccurredAt time.Time `json:"occurredAt"`
}
