package mocks

import (
	"sort"
	"time"

	"github.com/media-site/internal/models"
)

// compareDates orders two publication dates, nil dates last in either
// direction. decided is false when the dates are equal.
func compareDates(a, b *time.Time, desc bool) (less bool, decided bool) {
	switch {
	case a == nil && b == nil:
		return false, false
	case a == nil:
		return false, true
	case b == nil:
		return true, true
	case a.Equal(*b):
		return false, false
	}
	if desc {
		return a.After(*b), true
	}
	return a.Before(*b), true
}

func sortAuthors(list []*models.Author) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
