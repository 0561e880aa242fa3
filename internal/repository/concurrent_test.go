package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/mintabi/internal/db"
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite verifies that readers always observe a
// whole document while a single writer keeps replacing the cards array.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLitePlanRepo(database)

	plan := testutil.KyotoPlan()
	require.NoError(t, repo.Create(ctx, plan))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		cards := []domain.Card{}
		for i := 0; i < 20; i++ {
			cards = append(cards, testutil.NewTestCard(fmt.Sprintf("Spot-%d", i),
				testutil.WithCardID(fmt.Sprintf("s%d", i))))
			if err := repo.Update(ctx, plan.ID, domain.BoardPatch(cards, plan.Days)); err != nil {
				t.Errorf("writer: update %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				p, err := repo.Get(ctx, plan.ID)
				if err != nil {
					t.Errorf("reader %d: get: %v", reader, err)
					return
				}
				for j, c := range p.Cards {
					if c.ID == "" || c.Title == "" {
						t.Errorf("reader %d: card %d half-written", reader, j)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	final, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, final.Cards, 20)
}
