package mapping

import (
	"github.com/spendwise/spendwise_app/internal/core/domain"
	"github.com/spendwise/spendwise_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		UserID:      d.UserID,
		CategoryID:  d.CategoryID,
		Title:       d.Title,
		Amount:      d.Amount,
		Currency:    d.Currency,
		Description: d.Description,
		Date:        d.Date,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		UserID:      m.UserID,
		CategoryID:  m.CategoryID,
		Title:       m.Title,
		Amount:      m.Amount,
		Currency:    m.Currency,
		Description: m.Description,
		Date:        m.Date,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToModelIncome converts a domain Income to a model Income
func ToModelIncome(d domain.Income) models.Income {
	return models.Income{
		IncomeID:    d.IncomeID,
		UserID:      d.UserID,
		CategoryID:  d.CategoryID,
		Title:       d.Title,
		Amount:      d.Amount,
		Currency:    d.Currency,
		Description: d.Description,
		Date:        d.Date,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainIncome converts a model Income to a domain Income
func ToDomainIncome(m models.Income) domain.Income {
	return domain.Income{
		IncomeID:    m.IncomeID,
		UserID:      m.UserID,
		CategoryID:  m.CategoryID,
		Title:       m.Title,
		Amount:      m.Amount,
		Currency:    m.Currency,
		Description: m.Description,
		Date:        m.Date,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainIncomeSlice converts a slice of model Incomes to domain Incomes
func ToDomainIncomeSlice(ms []models.Income) []domain.Income {
	ds := make([]domain.Income, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainIncome(m)
	}
	return ds
}
