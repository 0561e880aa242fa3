package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T, limit int) *Ledger {
	t.Helper()
	l := NewLedger(filepath.Join(t.TempDir(), "nested", "history.json"), limit)
	clock := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return l
}

func ids(entries []domain.HistoryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestLedger_MissingFileIsEmpty(t *testing.T) {
	l := newTestLedger(t, 0)
	entries, err := l.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLedger_RecordMostRecentFirstDeduplicated(t *testing.T) {
	l := newTestLedger(t, 0)

	require.NoError(t, l.Record("a", "京都"))
	require.NoError(t, l.Record("b", "大阪"))
	require.NoError(t, l.Record("a", "京都 2日"))

	entries, err := l.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(entries))
	assert.Equal(t, "京都 2日", entries[0].Title)
	assert.Greater(t, entries[0].LastVisited, entries[1].LastVisited)
}

func TestLedger_LimitAppliesOnEveryWrite(t *testing.T) {
	l := newTestLedger(t, DefaultLimit)

	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		require.NoError(t, l.Record(id, "plan "+id))
	}
	entries, err := l.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "6", "5", "4", "3"}, ids(entries))
}

func TestLedger_ZeroLimitKeepsEverything(t *testing.T) {
	l := newTestLedger(t, 0)
	for i := 0; i < 12; i++ {
		require.NoError(t, l.Record(string(rune('a'+i)), "p"))
	}
	entries, err := l.List()
	require.NoError(t, err)
	assert.Len(t, entries, 12)
}

func TestLedger_Remove(t *testing.T) {
	l := newTestLedger(t, 0)
	require.NoError(t, l.Record("a", "A"))
	require.NoError(t, l.Record("b", "B"))

	require.NoError(t, l.Remove("a"))
	require.NoError(t, l.Remove("missing"))

	entries, err := l.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(entries))
}

func TestLedger_ReadsPlainIDTitleArrays(t *testing.T) {
	l := newTestLedger(t, 0)
	require.NoError(t, os.MkdirAll(filepath.Dir(l.Path()), 0o755))
	raw := `[{"id":"x","title":"X"},{"id":"y","title":"Y"},{"id":"x","title":"old"}]`
	require.NoError(t, os.WriteFile(l.Path(), []byte(raw), 0o644))

	entries, err := l.List()
	require.NoError(t, err)
	assert.Equal(t, []domain.HistoryEntry{{ID: "x", Title: "X"}, {ID: "y", Title: "Y"}}, entries)
}

func TestLedger_CorruptFile(t *testing.T) {
	l := newTestLedger(t, 0)
	require.NoError(t, os.MkdirAll(filepath.Dir(l.Path()), 0o755))
	require.NoError(t, os.WriteFile(l.Path(), []byte("{not json"), 0o644))

	_, err := l.List()
	assert.Error(t, err)
	assert.Error(t, l.Record("a", "A"))
}

func TestLedger_RecordRequiresID(t *testing.T) {
	l := newTestLedger(t, 0)
	assert.ErrorIs(t, l.Record(" ", "x"), domain.ErrMalformedInput)
}
