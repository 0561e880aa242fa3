package board

import (
	"testing"

	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(cards []domain.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

// sampleSnapshot: flat order a(stock) b(day-0) c(stock) d(day-0) e(day-1)
func sampleSnapshot() Snapshot {
	return NewSnapshot(
		[]domain.Card{
			testutil.NewTestCard("A", testutil.WithCardID("a")),
			testutil.NewTestCard("B", testutil.WithCardID("b"), testutil.WithColumn("day-0")),
			testutil.NewTestCard("C", testutil.WithCardID("c"), testutil.WithCategory(domain.CategoryFood)),
			testutil.NewTestCard("D", testutil.WithCardID("d"), testutil.WithColumn("day-0")),
			testutil.NewTestCard("E", testutil.WithCardID("e"), testutil.WithColumn("day-1")),
		},
		[]domain.Column{
			testutil.NewTestColumn("1日目", testutil.WithColumnID("day-0")),
			testutil.NewTestColumn("2日目", testutil.WithColumnID("day-1")),
		},
	)
}

func TestSnapshot_CardsInPreservesFlatOrder(t *testing.T) {
	s := sampleSnapshot()
	assert.Equal(t, []string{"a", "c"}, ids(s.CardsIn(domain.StockColumnID)))
	assert.Equal(t, []string{"b", "d"}, ids(s.CardsIn("day-0")))
	assert.Equal(t, []string{"e"}, ids(s.CardsIn("day-1")))
	assert.Empty(t, s.CardsIn("day-9"))
}

func TestSnapshot_CardsInFiltered(t *testing.T) {
	s := sampleSnapshot()
	assert.Equal(t, []string{"c"}, ids(s.CardsInFiltered(domain.StockColumnID, domain.FilterFood)))
	assert.Equal(t, []string{"a"}, ids(s.CardsInFiltered(domain.StockColumnID, domain.FilterSpot)))
	assert.Equal(t, []string{"a", "c"}, ids(s.CardsInFiltered(domain.StockColumnID, domain.FilterAll)))
}

func TestSnapshot_KyotoScenario(t *testing.T) {
	s := FromPlan(*testutil.KyotoPlan())
	assert.Equal(t, []string{"c1"}, ids(s.CardsIn(domain.StockColumnID)))
	assert.Empty(t, s.CardsIn("day-0"))
}

func TestSnapshot_MutationsDoNotTouchReceiver(t *testing.T) {
	s := sampleSnapshot()
	before := s.ListCards()

	_ = s.RemoveCard("a")
	_, _ = s.MoveCard("a", "day-1", End)
	_, _ = s.Reorder("a", "e")
	_, _ = s.Reassign("a", "day-0")

	assert.Equal(t, before, s.ListCards())
}

func TestSnapshot_ListCardsReturnsCopy(t *testing.T) {
	s := sampleSnapshot()
	list := s.ListCards()
	list[0].Title = "changed"
	c, ok := s.Card("a")
	require.True(t, ok)
	assert.Equal(t, "A", c.Title)
}

func TestSnapshot_UpsertCard(t *testing.T) {
	s := sampleSnapshot()

	edited, ok := s.Card("c")
	require.True(t, ok)
	edited.Title = "Matcha"
	next, err := s.UpsertCard(edited)
	require.NoError(t, err)
	assert.Equal(t, ids(s.ListCards()), ids(next.ListCards()), "in-place replacement keeps order")
	got, _ := next.Card("c")
	assert.Equal(t, "Matcha", got.Title)

	added := testutil.NewTestCard("New", testutil.WithCardID("z"))
	next, err = next.UpsertCard(added)
	require.NoError(t, err)
	assert.Equal(t, "z", next.ListCards()[next.Len()-1].ID)
}

func TestSnapshot_UpsertCardRejectsMalformed(t *testing.T) {
	s := sampleSnapshot()
	next, err := s.UpsertCard(domain.Card{ID: "x", Title: "", Category: domain.CategorySpot})
	require.ErrorIs(t, err, domain.ErrInvalidCard)
	assert.True(t, next.Equal(s))
}

func TestSnapshot_RemoveCard(t *testing.T) {
	s := sampleSnapshot()
	next := s.RemoveCard("b")
	assert.Equal(t, []string{"a", "c", "d", "e"}, ids(next.ListCards()))
	assert.True(t, next.RemoveCard("missing").Equal(next))
}

func TestSnapshot_AppendColumn(t *testing.T) {
	s := sampleSnapshot()
	next, err := s.AppendColumn(testutil.NewTestColumn("3日目", testutil.WithColumnID("day-2")))
	require.NoError(t, err)
	require.Len(t, next.Days(), 3)
	assert.Equal(t, "day-2", next.Days()[2].ID)

	_, err = next.AppendColumn(testutil.NewTestColumn("dup", testutil.WithColumnID("day-2")))
	assert.ErrorIs(t, err, domain.ErrInvalidColumn)
	_, err = next.AppendColumn(testutil.NewTestColumn("stock", testutil.WithColumnID(domain.StockColumnID)))
	assert.ErrorIs(t, err, domain.ErrInvalidColumn)
}

func TestSnapshot_MoveCard_Membership(t *testing.T) {
	s := sampleSnapshot()
	for _, card := range s.ListCards() {
		for _, target := range s.ColumnIDs() {
			for _, idx := range []int{End, 0, 1, 5} {
				next, err := s.MoveCard(card.ID, target, idx)
				require.NoError(t, err)
				for _, col := range next.ColumnIDs() {
					in := containsID(next.CardsIn(col), card.ID)
					assert.Equal(t, col == target, in, "card %s target %s idx %d col %s", card.ID, target, idx, col)
				}
				assert.Equal(t, s.Len(), next.Len())
			}
		}
	}
}

func containsID(cards []domain.Card, id string) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}

func TestSnapshot_MoveCard_Positions(t *testing.T) {
	s := sampleSnapshot()

	next, err := s.MoveCard("a", "day-0", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d"}, ids(next.CardsIn("day-0")))

	next, err = s.MoveCard("a", "day-0", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "d"}, ids(next.CardsIn("day-0")))

	next, err = s.MoveCard("a", "day-0", End)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "a"}, ids(next.CardsIn("day-0")))

	// same-column reorder
	next, err = s.MoveCard("d", "day-0", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "b"}, ids(next.CardsIn("day-0")))
}

func TestSnapshot_MoveCard_IntoEmptyColumnKeepsFlatPosition(t *testing.T) {
	s := FromPlan(*testutil.KyotoPlan())
	next, err := s.MoveCard("c1", "day-0", End)
	require.NoError(t, err)
	assert.Empty(t, next.CardsIn(domain.StockColumnID))
	assert.Equal(t, []string{"c1"}, ids(next.CardsIn("day-0")))
	assert.Equal(t, "day-0", next.ListCards()[0].ColumnID)
}

func TestSnapshot_MoveCard_Errors(t *testing.T) {
	s := sampleSnapshot()
	_, err := s.MoveCard("nope", "day-0", End)
	assert.ErrorIs(t, err, domain.ErrUnknownCard)
	_, err = s.MoveCard("a", "day-9", End)
	assert.ErrorIs(t, err, domain.ErrUnknownColumn)
	_, err = s.MoveCard("a", domain.TrashID, End)
	assert.ErrorIs(t, err, domain.ErrUnknownColumn)
}

func TestSnapshot_Reorder_SameColumnPreservesMembership(t *testing.T) {
	s := sampleSnapshot()
	next, ok := s.Reorder("d", "b")
	require.True(t, ok)
	assert.ElementsMatch(t, ids(s.CardsIn("day-0")), ids(next.CardsIn("day-0")))
	assert.Equal(t, []string{"d", "b"}, ids(next.CardsIn("day-0")))
	assert.Equal(t, []string{"a", "d", "b", "c", "e"}, ids(next.ListCards()))
}

func TestSnapshot_Reorder_AcrossColumnsTakesOverColumn(t *testing.T) {
	s := sampleSnapshot()
	next, ok := s.Reorder("a", "e")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c", "d", "e", "a"}, ids(next.ListCards()))
	assert.Equal(t, []string{"e", "a"}, ids(next.CardsIn("day-1")))
}

func TestSnapshot_Reorder_Unknown(t *testing.T) {
	s := sampleSnapshot()
	next, ok := s.Reorder("a", "zzz")
	assert.False(t, ok)
	assert.True(t, next.Equal(s))
}

func TestSnapshot_Reassign(t *testing.T) {
	s := sampleSnapshot()
	next, err := s.Reassign("c", "day-1")
	require.NoError(t, err)
	assert.Equal(t, ids(s.ListCards()), ids(next.ListCards()), "flat position unchanged")
	assert.Equal(t, []string{"c", "e"}, ids(next.CardsIn("day-1")))

	same, err := next.Reassign("c", "day-1")
	require.NoError(t, err)
	assert.True(t, same.Equal(next))
}

func TestSnapshot_Equal(t *testing.T) {
	a := sampleSnapshot()
	b := sampleSnapshot()
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(NewSnapshot(a.ListCards(), a.Days())))
	moved, _ := a.MoveCard("a", "day-1", End)
	assert.False(t, a.Equal(moved))
}
