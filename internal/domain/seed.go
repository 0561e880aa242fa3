package domain

// DefaultSeedCards returns the sample cards every new plan starts with.
func DefaultSeedCards() []Card {
	return []Card{
		{ID: "c1", Title: "清水寺", Category: CategorySpot, ColumnID: StockColumnID, ImageURL: "https://images.unsplash.com/photo-1595792876675-7746a3507e3b?auto=format&fit=crop&w=300&q=80", Memo: "朝一で行くのがおすすめ"},
		{ID: "c2", Title: "抹茶カフェ", Category: CategoryFood, ColumnID: StockColumnID, ImageURL: "https://images.unsplash.com/photo-1563483784216-8c80717519a7?auto=format&fit=crop&w=300&q=80"},
		{ID: "c3", Title: "伏見稲荷", Category: CategorySpot, ColumnID: "day-0", ImageURL: "https://images.unsplash.com/photo-1478436127897-769e1b3f0f36?auto=format&fit=crop&w=300&q=80"},
		{ID: "c4", Title: "ラーメン横丁", Category: CategoryFood, ColumnID: StockColumnID},
		{ID: "c5", Title: "金閣寺", Category: CategorySpot, ColumnID: StockColumnID, ImageURL: "https://images.unsplash.com/photo-1605218457332-60374f6f5249?auto=format&fit=crop&w=300&q=80"},
	}
}

// DefaultSeedDays returns the two undated day columns every new plan starts with.
func DefaultSeedDays() []Column {
	return []Column{
		{ID: "day-0", Title: "1日目", DateLabel: UndecidedDateLabel},
		{ID: "day-1", Title: "2日目", DateLabel: UndecidedDateLabel},
	}
}
