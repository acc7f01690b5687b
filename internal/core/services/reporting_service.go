package services

import (
	"context"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portsrepo "github.com/fincore/bookkeeper_svc/internal/core/ports/repositories"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService derives statements from rolled-up ledger totals. Only
// released entries ever reach account balances, so every figure here reflects
// processed activity only.
type reportingService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewReportingService creates the reporting service.
func NewReportingService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{ledgerRepo: ledgerRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) TrialBalance(ctx context.Context, subLedgerForm, suppressZero bool) (*domain.TrialBalance, error) {
	roots, err := s.ledgerRepo.ListRootLedgers(ctx)
	if err != nil {
		return nil, err
	}

	var lines []domain.Ledger
	if subLedgerForm {
		for _, root := range roots {
			children, err := s.ledgerRepo.ListChildLedgers(ctx, root.LedgerID)
			if err != nil {
				return nil, err
			}
			if len(children) == 0 {
				// A root without sub-ledgers still carries balances and must
				// appear, or the two columns stop proving each other.
				lines = append(lines, root)
				continue
			}
			lines = append(lines, children...)
		}
	} else {
		lines = roots
	}

	tb := &domain.TrialBalance{
		Entries:     make([]domain.TrialBalanceEntry, 0, len(lines)),
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
	}

	for _, ledger := range lines {
		total, err := s.ledgerRepo.TotalValue(ctx, ledger.LedgerID)
		if err != nil {
			return nil, err
		}
		if suppressZero && total.IsZero() {
			continue
		}

		side := domain.NormalSide(ledger.Type)
		tb.Entries = append(tb.Entries, domain.TrialBalanceEntry{
			LedgerID:   ledger.LedgerID,
			Name:       ledger.Name,
			Side:       side,
			TotalValue: total,
		})
		if side == domain.DebitSide {
			tb.DebitTotal = tb.DebitTotal.Add(total)
		} else {
			tb.CreditTotal = tb.CreditTotal.Add(total)
		}
	}
	return tb, nil
}

func (s *reportingService) IncomeStatement(ctx context.Context) (*domain.IncomeStatement, error) {
	sections, err := s.sectionsForFamilies(ctx, domain.Revenue, domain.Expense)
	if err != nil {
		return nil, err
	}

	stmt := &domain.IncomeStatement{
		Sections:      sections,
		GrossProfit:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, section := range sections {
		if section.Type == domain.Revenue {
			stmt.GrossProfit = stmt.GrossProfit.Add(section.Subtotal)
		} else {
			stmt.TotalExpenses = stmt.TotalExpenses.Add(section.Subtotal)
		}
	}
	stmt.NetIncome = stmt.GrossProfit.Sub(stmt.TotalExpenses)
	return stmt, nil
}

func (s *reportingService) FinancialCondition(ctx context.Context) (*domain.FinancialCondition, error) {
	sections, err := s.sectionsForFamilies(ctx, domain.Asset, domain.Equity, domain.Liability)
	if err != nil {
		return nil, err
	}

	fc := &domain.FinancialCondition{
		Sections:                    sections,
		TotalAssets:                 decimal.Zero,
		TotalEquitiesAndLiabilities: decimal.Zero,
	}
	for _, section := range sections {
		if section.Type == domain.Asset {
			fc.TotalAssets = fc.TotalAssets.Add(section.Subtotal)
		} else {
			fc.TotalEquitiesAndLiabilities = fc.TotalEquitiesAndLiabilities.Add(section.Subtotal)
		}
	}

	// Revenue and expense ledgers are never closed into equity, so the current
	// period's earnings must be carried explicitly for the accounting identity
	// TotalAssets == TotalEquitiesAndLiabilities to hold.
	income, err := s.IncomeStatement(ctx)
	if err != nil {
		return nil, err
	}
	if !income.NetIncome.IsZero() {
		fc.Sections = append(fc.Sections, domain.StatementSection{
			Type:        domain.Equity,
			Description: "Current period earnings",
			Subtotal:    income.NetIncome,
		})
	}
	fc.TotalEquitiesAndLiabilities = fc.TotalEquitiesAndLiabilities.Add(income.NetIncome)

	return fc, nil
}

// sectionsForFamilies builds one statement section per root ledger of the
// given families, in the order the families are listed.
func (s *reportingService) sectionsForFamilies(ctx context.Context, families ...domain.LedgerType) ([]domain.StatementSection, error) {
	roots, err := s.ledgerRepo.ListRootLedgers(ctx)
	if err != nil {
		return nil, err
	}

	sections := make([]domain.StatementSection, 0, len(roots))
	for _, family := range families {
		for _, root := range roots {
			if root.Type != family {
				continue
			}
			section, err := s.buildSection(ctx, root)
			if err != nil {
				return nil, err
			}
			sections = append(sections, *section)
		}
	}
	return sections, nil
}

func (s *reportingService) buildSection(ctx context.Context, root domain.Ledger) (*domain.StatementSection, error) {
	subtotal, err := s.ledgerRepo.TotalValue(ctx, root.LedgerID)
	if err != nil {
		return nil, err
	}

	children, err := s.ledgerRepo.ListChildLedgers(ctx, root.LedgerID)
	if err != nil {
		return nil, err
	}

	section := &domain.StatementSection{
		LedgerID:    root.LedgerID,
		Type:        root.Type,
		Description: root.Name,
		Entries:     make([]domain.StatementEntry, 0, len(children)),
		Subtotal:    subtotal,
	}
	for _, child := range children {
		value, err := s.ledgerRepo.TotalValue(ctx, child.LedgerID)
		if err != nil {
			return nil, err
		}
		section.Entries = append(section.Entries, domain.StatementEntry{
			LedgerID:    child.LedgerID,
			Description: child.Name,
			Value:       value,
		})
	}
	return section, nil
}
