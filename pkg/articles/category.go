package articles

// Category is a supplier catalog category. Subcategories are referenced for
// listing purposes only; a Category does not own them.
type Category struct {
	Number        int         `json:"number" yaml:"number"`
	Name          string      `json:"name" yaml:"name"`
	Subcategories []*Category `json:"subcategories,omitempty" yaml:"subcategories,omitempty"`
}

// NewCategory creates a category with optional subcategories.
func NewCategory(number int, name string, subcategories ...*Category) *Category {
	return &Category{Number: number, Name: name, Subcategories: subcategories}
}

// SubcategoryNames returns the names of the direct subcategories in order.
func (c *Category) SubcategoryNames() []string {
	names := make([]string, 0, len(c.Subcategories))
	for _, sc := range c.Subcategories {
		if sc != nil {
			names = append(names, sc.Name)
		}
	}
	return names
}

// Flatten returns c followed by all of its descendants, depth first.
// Categories reachable through more than one path are listed once.
func (c *Category) Flatten() []*Category {
	var out []*Category
	seen := make(map[*Category]bool)
	var walk func(*Category)
	walk = func(cat *Category) {
		if cat == nil || seen[cat] {
			return
		}
		seen[cat] = true
		out = append(out, cat)
		for _, sc := range cat.Subcategories {
			walk(sc)
		}
	}
	walk(c)
	return out
}
