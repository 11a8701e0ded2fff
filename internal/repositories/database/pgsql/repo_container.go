package pgsql

import (
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		IncomeRepo:       newPgxIncomeRepository(dbPool),
		SubscriptionRepo: newPgxSubscriptionRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
	}
}
