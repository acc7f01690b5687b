package mapping

import (
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:            d.AccountID,
		Type:                 models.LedgerType(d.Type),
		Name:                 d.Name,
		LedgerID:             d.LedgerID,
		Balance:              d.Balance,
		Holders:              d.Holders,
		SignatureAuthorities: d.SignatureAuthorities,
		ReferenceAccountID:   d.ReferenceAccountID,
		State:                models.AccountState(d.State),
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:            m.AccountID,
		Type:                 domain.LedgerType(m.Type),
		Name:                 m.Name,
		LedgerID:             m.LedgerID,
		Balance:              m.Balance,
		Holders:              m.Holders,
		SignatureAuthorities: m.SignatureAuthorities,
		ReferenceAccountID:   m.ReferenceAccountID,
		State:                domain.AccountState(m.State),
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountEntry converts a model AccountEntry to a domain AccountEntry.
func ToDomainAccountEntry(m models.AccountEntry) domain.AccountEntry {
	return domain.AccountEntry{
		EntryID:         m.EntryID,
		AccountID:       m.AccountID,
		Side:            domain.EntrySide(m.Side),
		Amount:          m.Amount,
		Balance:         m.Balance,
		Message:         m.Message,
		TransactionDate: m.TransactionDate,
	}
}

// ToModelAccountEntry converts a domain AccountEntry to a model AccountEntry.
func ToModelAccountEntry(d domain.AccountEntry) models.AccountEntry {
	return models.AccountEntry{
		EntryID:         d.EntryID,
		AccountID:       d.AccountID,
		Side:            string(d.Side),
		Amount:          d.Amount,
		Balance:         d.Balance,
		Message:         d.Message,
		TransactionDate: d.TransactionDate,
	}
}

// ToDomainAccountCommand converts a model AccountCommand to a domain AccountCommand.
func ToDomainAccountCommand(m models.AccountCommand) domain.AccountCommand {
	return domain.AccountCommand{
		CommandID: m.CommandID,
		AccountID: m.AccountID,
		Action:    domain.CommandAction(m.Action),
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}
