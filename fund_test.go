package fund

import (
	"strings"
	"testing"
)

func TestCreateInvestor(t *testing.T) {
	f := New()

	alice := mustCreate(t, f, "Alice")
	if !alice.Manager {
		t.Errorf("first investor is not the manager")
	}
	if alice.Code == "" || alice.CodeHash != HashCode(alice.Code) {
		t.Errorf("invite code not set or hash mismatch")
	}

	bob := mustCreate(t, f, "Bob")
	if bob.Manager {
		t.Errorf("second investor must not be the manager")
	}
	if bob.Code == alice.Code {
		t.Errorf("invite codes must be unique")
	}

	if _, err := f.Create("alice"); err == nil {
		t.Errorf("Create() accepted a duplicate name (case-insensitive)")
	}
}

func TestFindIsCaseInsensitive(t *testing.T) {
	f := New()
	mustCreate(t, f, "Alice")

	for _, name := range []string{"Alice", "alice", "ALICE", "aLiCe"} {
		if f.Find(name) == nil {
			t.Errorf("Find(%q) = nil, want Alice", name)
		}
	}
	if f.Find("alicia") != nil {
		t.Errorf("Find(alicia) found an investor")
	}
}

func TestCheckInvariants(t *testing.T) {
	f := New()
	mustCreate(t, f, "alice")
	mustDeposit(t, f, "alice", 100)

	if err := f.CheckInvariants(); err != nil {
		t.Fatalf("healthy fund fails invariants: %v", err)
	}

	// Break the books directly: units no longer sum to the total.
	f.Find("alice").Units = U(99)
	err := f.CheckInvariants()
	if err == nil {
		t.Fatal("CheckInvariants() missed an out-of-balance fund")
	}
	if !strings.Contains(err.Error(), "out of balance") {
		t.Errorf("unexpected invariant error: %v", err)
	}

	f.Find("alice").Units = U(-1)
	if err := f.CheckInvariants(); err == nil {
		t.Fatal("CheckInvariants() missed negative units")
	}
}

func TestTotalDeposited(t *testing.T) {
	f := New()
	mustCreate(t, f, "alice")
	mustCreate(t, f, "bob")
	mustDeposit(t, f, "alice", 100)
	mustDeposit(t, f, "bob", 50)

	eq(t, "total deposited", f.TotalDeposited().Decimal(), 150)
}
