package models

// Category is a news rubric. Categories form a two-level hierarchy:
// a category without a parent is a parent category, its direct
// children are subcategories.
type Category struct {
	ID               string      `json:"id" db:"id"`
	Slug             string      `json:"slug" db:"slug"`
	Title            string      `json:"title" db:"title"`
	SeoTitle         string      `json:"seo_title,omitempty" db:"seo_title"`
	Description      string      `json:"description,omitempty" db:"description"`
	Level            int         `json:"level" db:"level"`
	IsActive         bool        `json:"is_active" db:"is_active"`
	ParentCategoryID *string     `json:"parent_category_id,omitempty" db:"parent_category_id"`
	Children         []*Category `json:"children,omitempty"`
}

// IsParent reports whether the category sits at the top of the hierarchy
func (c *Category) IsParent() bool {
	return c.ParentCategoryID == nil
}

// ActiveChildren returns the active direct subcategories
func (c *Category) ActiveChildren() []*Category {
	active := make([]*Category, 0, len(c.Children))
	for _, child := range c.Children {
		if child.IsActive {
			active = append(active, child)
		}
	}
	return active
}

// ScopeIDs returns the category ids whose articles belong to this
// category's listing: itself plus, for a parent, its active children.
func (c *Category) ScopeIDs() []string {
	ids := []string{c.ID}
	if !c.IsParent() {
		return ids
	}
	for _, child := range c.ActiveChildren() {
		ids = append(ids, child.ID)
	}
	return ids
}
