package report

import (
	"bytes"
	"testing"

	"farmdash/internal/core"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestCategoryPie(t *testing.T) {
	g := NewGenerator()
	expenses := []core.FinancialRecord{
		{ID: 1, Type: core.Expense, Amount: 120, Category: core.CategoryFeed, Date: "2026-08-01"},
		{ID: 2, Type: core.Expense, Amount: 80, Category: core.CategoryMedicine, Date: "2026-08-02"},
	}

	png, err := g.CategoryPie(expenses)
	if err != nil {
		t.Fatalf("CategoryPie: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestCategoryPieEmpty(t *testing.T) {
	g := NewGenerator()
	png, err := g.CategoryPie(nil)
	if err != nil {
		t.Fatalf("CategoryPie: %v", err)
	}
	if png != nil {
		t.Error("expected nil output for no data")
	}
}

func TestIncomeExpenseBars(t *testing.T) {
	g := NewGenerator()
	expenses := []core.FinancialRecord{
		{ID: 1, Type: core.Expense, Amount: 200, Category: core.CategoryFeed, Date: "2026-08-01"},
	}
	incomes := []core.FinancialRecord{
		{ID: 2, Type: core.Income, Amount: 350, Category: core.CategoryEgg, Date: "2026-08-05"},
	}

	png, err := g.IncomeExpenseBars(expenses, incomes)
	if err != nil {
		t.Fatalf("IncomeExpenseBars: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestIncomeExpenseBarsEmpty(t *testing.T) {
	g := NewGenerator()
	png, err := g.IncomeExpenseBars(nil, nil)
	if err != nil {
		t.Fatalf("IncomeExpenseBars: %v", err)
	}
	if png != nil {
		t.Error("expected nil output for no data")
	}
}
