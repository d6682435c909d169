package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDeriveSemaphore(t *testing.T) {
	tests := []struct {
		name     string
		progress string
		target   string
		want     Semaphore
	}{
		{"zero target", "50", "0", SemaphoreRed},
		{"zero target zero progress", "0", "0", SemaphoreRed},
		{"no progress", "0", "100", SemaphoreRed},
		{"just below yellow", "39", "100", SemaphoreRed},
		{"yellow lower bound", "40", "100", SemaphoreYellow},
		{"just below green", "79", "100", SemaphoreYellow},
		{"green lower bound", "80", "100", SemaphoreGreen},
		{"over target", "120", "100", SemaphoreGreen},
		{"fractional yellow", "0.4", "1", SemaphoreYellow},
		{"fractional below", "39.99", "100", SemaphoreRed},
		{"non round target", "2", "5", SemaphoreYellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSemaphore(decimal.RequireFromString(tt.progress), decimal.RequireFromString(tt.target))
			if got != tt.want {
				t.Fatalf("DeriveSemaphore(%s, %s) = %s, want %s", tt.progress, tt.target, got, tt.want)
			}
		})
	}
}

func TestObjectiveRecompute_Idempotent(t *testing.T) {
	obj := Objective{
		Progress:  decimal.NewFromInt(85),
		Target:    decimal.NewFromInt(100),
		Semaphore: SemaphoreRed,
	}

	obj.Recompute()
	first := obj.Semaphore
	obj.Recompute()

	if first != SemaphoreGreen {
		t.Fatalf("expected VERDE, got %s", first)
	}
	if obj.Semaphore != first {
		t.Fatalf("recompute changed result: %s then %s", first, obj.Semaphore)
	}
}

func TestFinancialTotals_Summarize(t *testing.T) {
	sum := FinancialTotals{
		Wallet:    decimal.RequireFromString("1000.50"),
		Committed: decimal.RequireFromString("400.25"),
		Executed:  decimal.RequireFromString("100"),
	}.Summarize()

	if !sum.FreeBalance.Equal(decimal.RequireFromString("600.25")) {
		t.Fatalf("unexpected free balance: %s", sum.FreeBalance)
	}

	zero := FinancialTotals{}.Summarize()
	if !zero.Wallet.IsZero() || !zero.Committed.IsZero() || !zero.Executed.IsZero() || !zero.FreeBalance.IsZero() {
		t.Fatalf("expected all zeros, got %+v", zero)
	}
}
