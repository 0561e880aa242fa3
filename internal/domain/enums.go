package domain

type Category string

const (
	CategorySpot Category = "spot"
	CategoryFood Category = "food"
)

// ValidCategories is the canonical set of accepted card category strings.
var ValidCategories = map[string]bool{
	"spot": true, "food": true,
}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	if !ValidCategories[s] {
		return "", malformed("category %q must be one of spot, food", s)
	}
	return Category(s), nil
}

// CategoryFilter narrows the stock bucket by category. The zero value shows everything.
type CategoryFilter string

const (
	FilterAll  CategoryFilter = "all"
	FilterSpot CategoryFilter = "spot"
	FilterFood CategoryFilter = "food"
)

// ParseCategoryFilter accepts "", "all", "spot" or "food".
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	switch s {
	case "", "all":
		return FilterAll, nil
	case "spot":
		return FilterSpot, nil
	case "food":
		return FilterFood, nil
	}
	return "", malformed("filter %q must be one of all, spot, food", s)
}

// Match reports whether a card of category c passes the filter.
func (f CategoryFilter) Match(c Category) bool {
	switch f {
	case FilterSpot:
		return c == CategorySpot
	case FilterFood:
		return c == CategoryFood
	default:
		return true
	}
}

// Next cycles all -> spot -> food -> all.
func (f CategoryFilter) Next() CategoryFilter {
	switch f {
	case FilterSpot:
		return FilterFood
	case FilterFood:
		return FilterAll
	default:
		return FilterSpot
	}
}
