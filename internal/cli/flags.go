package cli

import (
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/spf13/pflag"
)

// categoryValue is a pflag.Value accepting spot or food.
type categoryValue domain.Category

func (v *categoryValue) String() string { return string(*v) }

func (v *categoryValue) Set(s string) error {
	c, err := domain.ParseCategory(s)
	if err != nil {
		return err
	}
	*v = categoryValue(c)
	return nil
}

func (v *categoryValue) Type() string { return "spot|food" }

// filterValue is a pflag.Value accepting all, spot or food.
type filterValue domain.CategoryFilter

func (v *filterValue) String() string { return string(*v) }

func (v *filterValue) Set(s string) error {
	f, err := domain.ParseCategoryFilter(s)
	if err != nil {
		return err
	}
	*v = filterValue(f)
	return nil
}

func (v *filterValue) Type() string { return "all|spot|food" }

// cardFlags are the editable card fields shared by `card add` and `card edit`.
type cardFlags struct {
	title    string
	category categoryValue
	url      string
	image    string
	memo     string
	column   string
}

func (f *cardFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "Card title")
	fs.Var(&f.category, "category", "Category (spot or food)")
	fs.StringVar(&f.url, "url", "", "Link for the card")
	fs.StringVar(&f.image, "image", "", "Image URL")
	fs.StringVar(&f.memo, "memo", "", "Memo (markdown)")
	fs.StringVar(&f.column, "column", "", "Column: stock, a day id, or a day number")
}

// changed reports whether any card field flag was given.
func (f *cardFlags) changed(fs *pflag.FlagSet) bool {
	for _, name := range []string{"title", "category", "url", "image", "memo", "column"} {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// apply copies the flags that were given onto c. The column is resolved by
// the caller.
func (f *cardFlags) apply(fs *pflag.FlagSet, c *domain.Card) {
	if fs.Changed("title") {
		c.Title = f.title
	}
	if fs.Changed("category") {
		c.Category = domain.Category(f.category)
	}
	if fs.Changed("url") {
		c.URL = f.url
	}
	if fs.Changed("image") {
		c.ImageURL = f.image
	}
	if fs.Changed("memo") {
		c.Memo = f.memo
	}
}
