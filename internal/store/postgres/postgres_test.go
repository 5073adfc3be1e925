package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func TestOpenUsesPgxDriverAndDefaultDSN(t *testing.T) {
	boom := errors.New("boom")
	var gotDriver, gotDSN string
	restore := OverrideSQLOpen(func(driver, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driver, dsn
		return nil, boom
	})
	defer restore()

	_, err := Open(context.Background(), "")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped open error, got %v", err)
	}
	if gotDriver != "pgx" || gotDSN != defaultDSN {
		t.Fatalf("unexpected driver/dsn %q %q", gotDriver, gotDSN)
	}
}

func TestPgxDriverRegistered(t *testing.T) {
	for _, name := range sql.Drivers() {
		if name == "pgx" {
			return
		}
	}
	t.Fatalf("pgx driver not registered: %v", sql.Drivers())
}
