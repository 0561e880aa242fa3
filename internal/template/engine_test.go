package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func osakaSchema() *TemplateSchema {
	return &TemplateSchema{
		ID:   "osaka",
		Name: "大阪1泊",
		Days: []DayConfig{
			{DateValue: "2024-10-02", Memo: "新大阪 9:00"},
			{Title: "帰る日"},
		},
		Cards: []CardConfig{
			{Title: "道頓堀", Category: "spot"},
			{Title: "たこ焼き", Category: "food", Day: intPtr(0)},
			{Title: "海遊館", Category: "spot", Day: intPtr(1), URL: "https://example.com"},
		},
	}
}

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()
	assert.Len(t, seed.Cards, 5)
	require.Len(t, seed.Days, 2)
	assert.Equal(t, "day-0", seed.Days[0].ID)
	assert.Equal(t, domain.UndecidedDateLabel, seed.Days[1].DateLabel)
}

func TestExecute(t *testing.T) {
	now := time.UnixMilli(1727740800000)
	seed, err := Execute(osakaSchema(), now)
	require.NoError(t, err)

	require.Len(t, seed.Days, 2)
	assert.Equal(t, "day-0-1727740800000", seed.Days[0].ID)
	assert.Equal(t, "1日目", seed.Days[0].Title)
	assert.Equal(t, "10/2(水)", seed.Days[0].DateLabel)
	assert.Equal(t, "2024-10-02", seed.Days[0].DateValue)
	assert.Equal(t, "新大阪 9:00", seed.Days[0].Memo)
	assert.Equal(t, "帰る日", seed.Days[1].Title)
	assert.Equal(t, domain.UndecidedDateLabel, seed.Days[1].DateLabel)

	require.Len(t, seed.Cards, 3)
	assert.Equal(t, domain.StockColumnID, seed.Cards[0].ColumnID)
	assert.Equal(t, seed.Days[0].ID, seed.Cards[1].ColumnID)
	assert.Equal(t, domain.CategoryFood, seed.Cards[1].Category)
	assert.Equal(t, seed.Days[1].ID, seed.Cards[2].ColumnID)
	for _, c := range seed.Cards {
		assert.True(t, strings.HasPrefix(c.ID, "card-"))
		assert.NoError(t, c.Validate())
	}
}

func TestExecute_Invalid(t *testing.T) {
	schema := osakaSchema()
	schema.Cards[0].Category = "hotel"
	_, err := Execute(schema, time.Now())
	assert.Error(t, err)
}

func TestValidateSchema(t *testing.T) {
	assert.Empty(t, ValidateSchema(osakaSchema()))

	errs := ValidateSchema(&TemplateSchema{
		Days:  []DayConfig{{DateValue: "soon"}},
		Cards: []CardConfig{{Title: "", Category: "spot", Day: intPtr(3)}},
	})
	assert.Len(t, errs, 5)
}

func writeTemplate(t *testing.T, dir, file, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644))
}

func TestCatalog_Resolve(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "a_kyoto.json", `{"id":"kyoto-2d","name":"Kyoto Two Days","days":[{},{}],"cards":[]}`)
	writeTemplate(t, dir, "b_osaka.json", `{"id":"osaka","name":"Osaka","days":[{}],"cards":[]}`)
	cat := NewCatalog(dir)

	entries, err := cat.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Index)

	for _, name := range []string{"a_kyoto", "A_KYOTO.json", "kyoto-2d", "kyoto two days", "1"} {
		e, err := cat.Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, "kyoto-2d", e.Schema.ID, name)
	}

	_, err = cat.Resolve("hokkaido")
	assert.Error(t, err)
	_, err = cat.Resolve(" ")
	assert.Error(t, err)
}

func TestCatalog_MissingDir(t *testing.T) {
	entries, err := NewCatalog(filepath.Join(t.TempDir(), "absent")).List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCatalog_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "bad.json", `{`)
	_, err := NewCatalog(dir).List()
	assert.Error(t, err)
}
