package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the origin of funds.
type TransactionType string

const (
	TransactionPublic  TransactionType = "PUBLICO"
	TransactionPrivate TransactionType = "PRIVADO"
	TransactionOwn     TransactionType = "PROPIO"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionPublic, TransactionPrivate, TransactionOwn:
		return true
	}
	return false
}

// Transaction is an organization-level inflow or outflow of funds.
type Transaction struct {
	ID             int64           `json:"id_transaccion"`
	OrganizationID int64           `json:"id_organizacion_transaccion"`
	Source         *string         `json:"fuente_transaccion"`
	Amount         decimal.Decimal `json:"monto_transaccion"`
	Type           TransactionType `json:"tipo_transaccion"`
	Date           time.Time       `json:"fecha_transaccion"`
}

// ExpenseCategory classifies project spending.
type ExpenseCategory string

const (
	ExpenseMaterials   ExpenseCategory = "MATERIALES"
	ExpenseLogistics   ExpenseCategory = "LOGISTICA"
	ExpenseStaff       ExpenseCategory = "STAFF"
	ExpenseTechnology  ExpenseCategory = "TECNOLOGIA"
	ExpenseElectricity ExpenseCategory = "ELECTRICIDAD"
	ExpenseSalaries    ExpenseCategory = "SUELDOS"
	ExpenseWater       ExpenseCategory = "AGUA"
	ExpenseOther       ExpenseCategory = "OTROS"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseMaterials, ExpenseLogistics, ExpenseStaff, ExpenseTechnology,
		ExpenseElectricity, ExpenseSalaries, ExpenseWater, ExpenseOther:
		return true
	}
	return false
}

// Expense is money spent against a project's budget.
type Expense struct {
	ID          int64           `json:"id_gasto"`
	ProjectID   int64           `json:"id_proyecto_gasto"`
	Amount      decimal.Decimal `json:"monto_gasto"`
	Concept     string          `json:"concepto_gasto"`
	Category    ExpenseCategory `json:"categoria_gasto"`
	EvidenceURL *string         `json:"evidencia_url_gasto"`
	Date        time.Time       `json:"fecha_gasto"`
}

// FinancialTotals are the three independent aggregates read from the store.
type FinancialTotals struct {
	Wallet    decimal.Decimal
	Committed decimal.Decimal
	Executed  decimal.Decimal
}

// FinancialSummary is computed on read; it is never stored as a running
// balance.
type FinancialSummary struct {
	Wallet      decimal.Decimal `json:"billetera_disponible"`
	Committed   decimal.Decimal `json:"presupuesto_comprometido"`
	Executed    decimal.Decimal `json:"gasto_real_ejecutado"`
	FreeBalance decimal.Decimal `json:"saldo_libre_para_proyectos"`
}

// Summarize derives the free balance from the raw totals.
func (t FinancialTotals) Summarize() FinancialSummary {
	return FinancialSummary{
		Wallet:      t.Wallet,
		Committed:   t.Committed,
		Executed:    t.Executed,
		FreeBalance: t.Wallet.Sub(t.Committed),
	}
}
