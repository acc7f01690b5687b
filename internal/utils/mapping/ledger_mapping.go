package mapping

import (
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/models"
)

// ToModelLedger converts a domain Ledger to a model Ledger.
func ToModelLedger(d domain.Ledger) models.Ledger {
	return models.Ledger{
		LedgerID:            d.LedgerID,
		Type:                models.LedgerType(d.Type),
		Name:                d.Name,
		Description:         d.Description,
		ParentLedgerID:      d.ParentLedgerID,
		ShowAccountsInChart: d.ShowAccountsInChart,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedger converts a model Ledger to a domain Ledger.
func ToDomainLedger(m models.Ledger) domain.Ledger {
	return domain.Ledger{
		LedgerID:            m.LedgerID,
		Type:                domain.LedgerType(m.Type),
		Name:                m.Name,
		Description:         m.Description,
		ParentLedgerID:      m.ParentLedgerID,
		ShowAccountsInChart: m.ShowAccountsInChart,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerSlice converts a slice of model Ledgers to domain Ledgers.
func ToDomainLedgerSlice(ms []models.Ledger) []domain.Ledger {
	ds := make([]domain.Ledger, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedger(m)
	}
	return ds
}
