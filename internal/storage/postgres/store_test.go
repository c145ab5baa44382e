package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tallyfold/mis/internal/mis"
	"github.com/tallyfold/mis/internal/rules"
	"github.com/tallyfold/mis/internal/taxonomy"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func applyInitSQL(t *testing.T, s *Store) {
	t.Helper()
	_, thisFile, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "db", "migrations", "001_init.sql")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.pool.Exec(ctx, string(b)); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	if _, err := s.pool.Exec(ctx, `delete from transactions; delete from user_rules; delete from undo_snapshots; delete from sales_registers`); err != nil {
		t.Fatalf("clean tables: %v", err)
	}
}

func TestReplaceAndReadTransactions(t *testing.T) {
	s := mustOpen(t, getTestDSN(t))
	defer s.Close()
	applyInitSQL(t, s)
	ctx := context.Background()

	txs := []mis.Transaction{
		{ID: uuid.New(), Account: "Office Rent", Currency: "INR", DebitMinor: 500000,
			Status: mis.StatusClassified, Head: taxonomy.HeadOperating, Subhead: "Office Rent"},
		{ID: uuid.New(), Account: "Unknown Vendor", Currency: "INR", DebitMinor: 1200,
			Status: mis.StatusUnclassified},
	}
	if err := s.ReplaceTransactions(ctx, txs); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := s.Transactions(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0].Account != "Office Rent" || got[1].Status != mis.StatusUnclassified {
		t.Fatalf("unexpected rows: %+v", got)
	}
	one, err := s.TransactionByID(ctx, txs[0].ID)
	if err != nil || one.Head != taxonomy.HeadOperating {
		t.Fatalf("by id: %v %+v", err, one)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := mustOpen(t, getTestDSN(t))
	defer s.Close()
	applyInitSQL(t, s)
	ctx := context.Background()

	if _, ok, err := s.PopSnapshot(ctx); err != nil || ok {
		t.Fatalf("expected empty stack, got ok=%v err=%v", ok, err)
	}
	snap := []mis.Transaction{{ID: uuid.New(), Account: "A", Currency: "INR", Status: mis.StatusUnclassified}}
	if err := s.PushSnapshot(ctx, snap); err != nil {
		t.Fatalf("push: %v", err)
	}
	got, ok, err := s.PopSnapshot(ctx)
	if err != nil || !ok || len(got) != 1 || got[0].Account != "A" {
		t.Fatalf("pop: ok=%v err=%v got=%+v", ok, err, got)
	}
}

func TestUserRulesAppendOrder(t *testing.T) {
	s := mustOpen(t, getTestDSN(t))
	defer s.Close()
	applyInitSQL(t, s)
	ctx := context.Background()

	first := rules.Rule{Pattern: "landlord", Head: taxonomy.HeadOperating, Subhead: "Office Rent"}
	second := rules.Rule{Pattern: "diesel", Head: taxonomy.HeadCOGM, Subhead: "Power & Fuel"}
	if err := s.AppendUserRule(ctx, first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendUserRule(ctx, second); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := s.UserRules(ctx)
	if err != nil || len(got) != 2 {
		t.Fatalf("rules: %v %+v", err, got)
	}
	if got[0].Pattern != "landlord" || got[1].Pattern != "diesel" {
		t.Fatalf("order lost: %+v", got)
	}
}
