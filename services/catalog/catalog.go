// Package catalog serves the read-only class listings.
package catalog

import (
	"sort"
	"strings"

	"oneday/models"
)

type SortOrder string

const (
	SortDateAsc    SortOrder = "date_asc"
	SortReviewDesc SortOrder = "review_desc"
	SortPriceDesc  SortOrder = "price_desc"
	SortPriceAsc   SortOrder = "price_asc"
)

// TypeAll disables the type filter.
const TypeAll = "all"

// Query is the home screen's browse state.
type Query struct {
	Type     string    `json:"type" form:"type"`
	Search   string    `json:"q" form:"q"`
	HideFull bool      `json:"hideFull" form:"hideFull"`
	Sort     SortOrder `json:"sort" form:"sort"`
}

// Catalog holds listings that are never mutated after construction.
type Catalog struct {
	listings []models.ClassListing
}

// New builds a catalog from listings. With none given it serves the demo classes.
func New(listings ...models.ClassListing) *Catalog {
	if len(listings) == 0 {
		listings = demoClasses
	}
	return &Catalog{listings: listings}
}

// Get returns a copy of the listing with id.
func (c *Catalog) Get(id string) (models.ClassListing, bool) {
	for _, l := range c.listings {
		if l.ID == id {
			return clone(l), true
		}
	}
	return models.ClassListing{}, false
}

// All returns every listing in catalog order.
func (c *Catalog) All() []models.ClassListing {
	out := make([]models.ClassListing, 0, len(c.listings))
	for _, l := range c.listings {
		out = append(out, clone(l))
	}
	return out
}

// Browse applies search, type filter, full-class hiding and sort order.
func (c *Catalog) Browse(q Query) []models.ClassListing {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.ClassListing, 0, len(c.listings))
	for _, l := range c.listings {
		if needle != "" && !matches(l, needle) {
			continue
		}
		if q.Type != "" && q.Type != TypeAll && string(l.Type) != q.Type {
			continue
		}
		if q.HideFull {
			if s, ok := l.EarliestSlot(); !ok || s.IsFull() {
				continue
			}
		}
		out = append(out, clone(l))
	}

	sort.SliceStable(out, less(out, q.Sort))
	return out
}

// Favorites returns the listings for ids, skipping unknown ones.
func (c *Catalog) Favorites(ids []string) []models.ClassListing {
	out := make([]models.ClassListing, 0, len(ids))
	for _, l := range c.listings {
		for _, id := range ids {
			if l.ID == id {
				out = append(out, clone(l))
				break
			}
		}
	}
	return out
}

func matches(l models.ClassListing, needle string) bool {
	return strings.Contains(strings.ToLower(l.Title), needle) ||
		strings.Contains(strings.ToLower(l.Category), needle) ||
		strings.Contains(strings.ToLower(l.Location), needle)
}

func less(ls []models.ClassListing, order SortOrder) func(i, j int) bool {
	switch order {
	case SortReviewDesc:
		return func(i, j int) bool { return ls[i].Rating > ls[j].Rating }
	case SortPriceDesc:
		return func(i, j int) bool { return ls[i].TotalPrice > ls[j].TotalPrice }
	case SortPriceAsc:
		return func(i, j int) bool { return ls[i].TotalPrice < ls[j].TotalPrice }
	default:
		return func(i, j int) bool {
			a, _ := ls[i].EarliestSlot()
			b, _ := ls[j].EarliestSlot()
			return a.Date < b.Date
		}
	}
}

func clone(l models.ClassListing) models.ClassListing {
	l.Schedules = append([]models.ScheduleSlot(nil), l.Schedules...)
	l.Reviews = append([]models.ListingReview(nil), l.Reviews...)
	return l
}
