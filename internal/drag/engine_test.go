package drag

import (
	"testing"

	"github.com/alexanderramin/mintabi/internal/board"
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, plan *domain.Plan) (*Engine, *board.Store, *testutil.RecordingSink) {
	t.Helper()
	sink := &testutil.RecordingSink{}
	store := board.NewStore(sink)
	store.Load(board.FromPlan(*plan))
	return NewEngine(store), store, sink
}

func twoDayPlan() *domain.Plan {
	return testutil.NewTestPlan("Kyoto",
		testutil.WithCards(
			testutil.NewTestCard("清水寺", testutil.WithCardID("c1")),
			testutil.NewTestCard("金閣寺", testutil.WithCardID("c2"), testutil.WithColumn("day-0")),
			testutil.NewTestCard("抹茶", testutil.WithCardID("c3"), testutil.WithCategory(domain.CategoryFood), testutil.WithColumn("day-0")),
		),
		testutil.WithDays(
			testutil.NewTestColumn("1日目", testutil.WithColumnID("day-0")),
			testutil.NewTestColumn("2日目", testutil.WithColumnID("day-1")),
		),
	)
}

func cardIDs(cards []domain.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestEngine_StartRequiresKnownCard(t *testing.T) {
	e, _, _ := newEngine(t, testutil.KyotoPlan())

	err := e.Start("nope")
	require.ErrorIs(t, err, domain.ErrUnknownCard)
	assert.Equal(t, Idle, e.State())

	require.NoError(t, e.Start("c1"))
	assert.Equal(t, Dragging, e.State())
	assert.ErrorIs(t, e.Start("c1"), ErrGestureActive)
}

func TestEngine_OverColumnReassignsLocally(t *testing.T) {
	e, store, sink := newEngine(t, testutil.KyotoPlan())

	require.NoError(t, e.Start("c1"))
	e.Over("day-0")

	assert.Equal(t, []string{"c1"}, cardIDs(store.CardsIn("day-0")))
	assert.Empty(t, store.CardsIn(domain.StockColumnID))
	assert.Equal(t, 0, sink.Count(), "over must not persist")
	assert.Equal(t, "day-0", e.OverID())
}

func TestEngine_OverCardTakesItsColumn(t *testing.T) {
	e, store, sink := newEngine(t, twoDayPlan())

	require.NoError(t, e.Start("c1"))
	e.Over("c2")

	c1, _ := store.Snapshot().Card("c1")
	assert.Equal(t, "day-0", c1.ColumnID)
	assert.Equal(t, 0, sink.Count())
}

func TestEngine_OverTrashOrUnknownIsNoop(t *testing.T) {
	e, store, _ := newEngine(t, testutil.KyotoPlan())
	before := store.Snapshot()

	require.NoError(t, e.Start("c1"))
	e.Over(domain.TrashID)
	e.Over("ghost")
	e.Over("")

	assert.True(t, before.Equal(store.Snapshot()))
}

func TestEngine_EndOverColumnPersistsOnce(t *testing.T) {
	e, store, sink := newEngine(t, testutil.KyotoPlan())

	require.NoError(t, e.Start("c1"))
	e.Over("day-0")
	out := e.End("day-0")

	assert.Equal(t, Dropped, out)
	assert.Equal(t, Idle, e.State())
	assert.Empty(t, e.ActiveID())
	require.Equal(t, 1, sink.Count())
	require.Len(t, sink.Last().Cards, 1)
	assert.Equal(t, "day-0", sink.Last().Cards[0].ColumnID)
	assert.Equal(t, []string{"c1"}, cardIDs(store.CardsIn("day-0")))
}

func TestEngine_EndOverTrashRemovesAndPersistsOnce(t *testing.T) {
	e, store, sink := newEngine(t, twoDayPlan())

	require.NoError(t, e.Start("c2"))
	e.Over(domain.TrashID)
	out := e.End(domain.TrashID)

	assert.Equal(t, Trashed, out)
	assert.Equal(t, []string{"c1", "c3"}, cardIDs(store.ListCards()))
	require.Equal(t, 1, sink.Count())
	assert.Equal(t, []string{"c1", "c3"}, cardIDs(sink.Last().Cards))
}

func TestEngine_EndWithoutTargetKeepsCardsAndDoesNotPersist(t *testing.T) {
	e, store, sink := newEngine(t, twoDayPlan())

	require.NoError(t, e.Start("c1"))
	e.Over("day-1")
	out := e.End("")

	assert.Equal(t, Cancelled, out)
	assert.Equal(t, 3, store.Snapshot().Len())
	assert.Equal(t, 0, sink.Count())
	c1, _ := store.Snapshot().Card("c1")
	assert.Equal(t, "day-1", c1.ColumnID, "reassignment made while hovering stays local")
}

func TestEngine_EndOverSelfFlushes(t *testing.T) {
	e, store, sink := newEngine(t, twoDayPlan())
	before := store.Snapshot()

	require.NoError(t, e.Start("c2"))
	out := e.End("c2")

	assert.Equal(t, Dropped, out)
	assert.Equal(t, 1, sink.Count())
	assert.True(t, before.Equal(store.Snapshot()))
}

func TestEngine_EndOverCardReorders(t *testing.T) {
	e, store, sink := newEngine(t, twoDayPlan())

	require.NoError(t, e.Start("c3"))
	out := e.End("c2")

	assert.Equal(t, Reordered, out)
	assert.Equal(t, []string{"c3", "c2"}, cardIDs(store.CardsIn("day-0")))
	require.Equal(t, 1, sink.Count())
	assert.Equal(t, []string{"c1", "c3", "c2"}, cardIDs(sink.Last().Cards))
}

func TestEngine_EndAcrossColumnsViaCard(t *testing.T) {
	e, store, sink := newEngine(t, twoDayPlan())

	require.NoError(t, e.Start("c1"))
	e.Over("c3")
	out := e.End("c3")

	assert.Equal(t, Reordered, out)
	assert.Equal(t, []string{"c2", "c3", "c1"}, cardIDs(store.CardsIn("day-0")))
	assert.Empty(t, store.CardsIn(domain.StockColumnID))
	assert.Equal(t, 1, sink.Count())
}

func TestEngine_CardRemovedRemotelyMidDrag(t *testing.T) {
	e, store, sink := newEngine(t, twoDayPlan())

	require.NoError(t, e.Start("c1"))
	store.Load(store.Snapshot().RemoveCard("c1"))
	e.Over("day-1")

	assert.Equal(t, Dragging, e.State(), "remote snapshot does not reset the gesture")
	assert.Equal(t, Cancelled, e.End("day-1"))
	assert.Equal(t, 0, sink.Count())
}

func TestEngine_EndWhenIdle(t *testing.T) {
	e, _, sink := newEngine(t, testutil.KyotoPlan())
	assert.Equal(t, Cancelled, e.End("day-0"))
	assert.Equal(t, Cancelled, e.Cancel())
	assert.Equal(t, 0, sink.Count())
}

func TestEngine_EndOverUnknownCancels(t *testing.T) {
	e, _, sink := newEngine(t, testutil.KyotoPlan())
	require.NoError(t, e.Start("c1"))
	assert.Equal(t, Cancelled, e.End("ghost"))
	assert.Equal(t, 0, sink.Count())
}

func TestEngine_KeyboardGestureThroughLayout(t *testing.T) {
	e, store, sink := newEngine(t, testutil.KyotoPlan())

	layout := NewLayout(store.Snapshot(), domain.FilterAll)
	require.NoError(t, e.Start("c1"))
	// one grid column to the right: the day-0 container
	id := e.OverAt(SlotRect(1, 0), layout)
	assert.Equal(t, "day-0", id)

	layout = NewLayout(store.Snapshot(), domain.FilterAll)
	out := e.EndAt(SlotRect(1, 0), layout)

	assert.Equal(t, Dropped, out)
	assert.Equal(t, []string{"c1"}, cardIDs(store.CardsIn("day-0")))
	assert.Equal(t, 1, sink.Count())
}
