package models

// Author is a user record owned by the external user service.
// Field names follow the service's JSON mapping.
type Author struct {
	ID        string       `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Slug      string       `json:"slug,omitempty"`
	Position  string       `json:"position,omitempty"`
	Image     *AuthorImage `json:"image,omitempty"`
}

// AuthorImage holds the author's picture variants
type AuthorImage struct {
	Alt      string            `json:"alt,omitempty"`
	Variants map[string]string `json:"variants,omitempty"`
}

// FullName returns "First Last"
func (a *Author) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// AuthorList is one page of the user service's author listing
type AuthorList struct {
	Users      []*Author `json:"users"`
	TotalUsers int       `json:"totalUsers"`
}
