package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its stored row,
// serializing the legs and deriving the date bucket from the transaction date.
func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, error) {
	debtors, err := marshalLegs(d.Debtors)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to encode debtor legs: %w", err)
	}
	creditors, err := marshalLegs(d.Creditors)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to encode creditor legs: %w", err)
	}

	return models.JournalEntry{
		DateBucket:      d.TransactionDate.UTC().Format(models.DateBucketFormat),
		TransactionID:   d.TransactionID,
		TransactionDate: d.TransactionDate,
		TransactionType: d.TransactionType,
		Clerk:           d.Clerk,
		Note:            d.Note,
		Message:         d.Message,
		Debtors:         debtors,
		Creditors:       creditors,
		State:           string(d.State),
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}, nil
}

// ToDomainJournalEntry converts a stored row back to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) (domain.JournalEntry, error) {
	debtors, err := unmarshalLegs(m.Debtors)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to decode debtor legs for %s: %w", m.TransactionID, err)
	}
	creditors, err := unmarshalLegs(m.Creditors)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to decode creditor legs for %s: %w", m.TransactionID, err)
	}

	return domain.JournalEntry{
		TransactionID:   m.TransactionID,
		TransactionDate: m.TransactionDate,
		TransactionType: m.TransactionType,
		Clerk:           m.Clerk,
		Note:            m.Note,
		Message:         m.Message,
		Debtors:         debtors,
		Creditors:       creditors,
		State:           domain.JournalEntryState(m.State),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.CreatedAt,
			LastUpdatedBy: m.CreatedBy,
		},
	}, nil
}

// ToDomainTransactionType converts a model TransactionType to its domain form.
func ToDomainTransactionType(m models.TransactionType) domain.TransactionType {
	return domain.TransactionType{
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransactionType converts a domain TransactionType to its model form.
func ToModelTransactionType(d domain.TransactionType) models.TransactionType {
	return models.TransactionType{
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func marshalLegs(legs []domain.Leg) ([]byte, error) {
	modelLegs := make([]models.Leg, len(legs))
	for i, leg := range legs {
		modelLegs[i] = models.Leg{AccountID: leg.AccountID, Amount: leg.Amount}
	}
	return json.Marshal(modelLegs)
}

func unmarshalLegs(data []byte) ([]domain.Leg, error) {
	var modelLegs []models.Leg
	if err := json.Unmarshal(data, &modelLegs); err != nil {
		return nil, err
	}
	legs := make([]domain.Leg, len(modelLegs))
	for i, leg := range modelLegs {
		legs[i] = domain.Leg{AccountID: leg.AccountID, Amount: leg.Amount}
	}
	return legs, nil
}
