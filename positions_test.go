package fund

import (
	"testing"
)

func TestCapTable(t *testing.T) {
	f := New()
	mustCreate(t, f, "alice")
	mustCreate(t, f, "bob")
	mustCreate(t, f, "carol")
	mustDeposit(t, f, "alice", 100)
	mustDeposit(t, f, "bob", 300)
	mustDeposit(t, f, "carol", 50)
	setValue(t, f, 900) // price 2.00

	table := f.CapTable(f.Price())
	if len(table) != 3 {
		t.Fatalf("cap table has %d rows, want 3", len(table))
	}

	// Ordered by descending value, manager flagged but not floated.
	if table[0].Name != "bob" || table[1].Name != "alice" || table[2].Name != "carol" {
		t.Errorf("order = %s, %s, %s; want bob, alice, carol", table[0].Name, table[1].Name, table[2].Name)
	}
	if !table[1].Manager {
		t.Errorf("alice not flagged as manager")
	}

	eq(t, "bob value", table[0].Value.Decimal(), 600)
	eq(t, "bob share", table[0].Share, 600.0/900.0)
	eq(t, "bob profit", table[0].Profit.Decimal(), 300)
	if table[0].PctChange == nil {
		t.Fatalf("bob has deposits but no pct change")
	}
	eq(t, "bob pct change", *table[0].PctChange, 100)

	// Shares sum to one.
	sum := table[0].Share.Add(table[1].Share).Add(table[2].Share)
	eq(t, "share sum", sum, 1)
}

func TestCapTableEmptyInvestor(t *testing.T) {
	f := New()
	mustCreate(t, f, "alice")
	mustCreate(t, f, "idle")
	mustDeposit(t, f, "alice", 100)

	table := f.CapTable(f.Price())
	var idle *Position
	for i := range table {
		if table[i].Name == "idle" {
			idle = &table[i]
		}
	}
	if idle == nil {
		t.Fatal("investor without units missing from cap table")
	}
	eq(t, "idle value", idle.Value.Decimal(), 0)
	eq(t, "idle share", idle.Share, 0)
	if idle.PctChange != nil {
		t.Errorf("idle investor has a pct change without deposits")
	}
}

func TestTotalProfit(t *testing.T) {
	f := New()
	mustCreate(t, f, "alice")
	mustDeposit(t, f, "alice", 100)
	setValue(t, f, 130)

	eq(t, "total profit", f.TotalProfit(f.Price()).Decimal(), 30)
}
