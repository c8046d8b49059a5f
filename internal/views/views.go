// Package views computes read-only projections over repository snapshots:
// filtered and sorted post listings, follower feeds, pagination, and the
// aggregate counts behind the admin dashboards. Everything here is a pure
// function; nothing in this package is ever persisted.
package views

import (
	"sort"
	"strings"

	"chronicle/internal/models"
)

// Sort orders accepted by FilterPosts.
const (
	SortDateDesc   = "date-desc"
	SortDateAsc    = "date-asc"
	SortRatingDesc = "rating-desc"
	SortTitleAsc   = "title-asc"
)

// DefaultPageSize matches the original listing page.
const DefaultPageSize = 9

// PostQuery describes a post listing request.
type PostQuery struct {
	Search   string
	Category string // exact category or "All"/"" for no filter
	SortBy   string // one of the Sort constants; defaults to SortDateDesc
}

// FilterPosts returns the posts matching q, sorted. The search term is a
// case-insensitive substring match on title and content.
func FilterPosts(posts []models.Post, q PostQuery) []models.Post {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Content), search) {
			continue
		}
		if q.Category != "" && q.Category != "All" && p.Category != q.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortDateDesc
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := &filtered[i], &filtered[j]
		switch sortBy {
		case SortDateAsc:
			return a.Date.Before(b.Date)
		case SortRatingDesc:
			return a.AverageRating() > b.AverageRating()
		case SortTitleAsc:
			return a.Title < b.Title
		default:
			return a.Date.After(b.Date)
		}
	})
	return filtered
}

// VisibleTo filters out posts the viewer may not see: disabled posts are
// hidden from everyone except the owning author and admins.
func VisibleTo(posts []models.Post, viewer *models.User) []models.Post {
	visible := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.VisibleTo(viewer) {
			visible = append(visible, p)
		}
	}
	return visible
}

// Feed returns the posts authored by the followed emails, newest first.
func Feed(posts []models.Post, following []string) []models.Post {
	followed := make(map[string]bool, len(following))
	for _, e := range following {
		followed[e] = true
	}
	feed := make([]models.Post, 0)
	for _, p := range posts {
		if followed[p.AuthorEmail] {
			feed = append(feed, p)
		}
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	return feed
}

// ByAuthor returns the posts written by the given author email, newest
// first. The profile page listing.
func ByAuthor(posts []models.Post, authorEmail string) []models.Post {
	mine := make([]models.Post, 0)
	for _, p := range posts {
		if p.AuthorEmail == authorEmail {
			mine = append(mine, p)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Date.After(mine[j].Date)
	})
	return mine
}

// Page is one page of a listing plus the bookkeeping the client needs to
// render pagination controls.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items into the requested 1-indexed page. Out-of-range
// page numbers clamp to the nearest valid page rather than erroring, so a
// listing that shrank underneath the client still renders.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(items),
		TotalPages: totalPages,
	}
}

// Stats counts how many items match a predicate.
type Stats struct {
	Total    int `json:"total"`
	Matching int `json:"matching"`
	Rest     int `json:"rest"`
}

// AggregateStats counts total, matching, and non-matching items. Both
// admin dashboards (users by disabled state, posts by disabled state) are
// built on this.
func AggregateStats[T any](items []T, predicate func(T) bool) Stats {
	s := Stats{Total: len(items)}
	for _, item := range items {
		if predicate(item) {
			s.Matching++
		}
	}
	s.Rest = s.Total - s.Matching
	return s
}

// FilterUsers returns users matching the admin search box: substring match
// on name or email, plus an active/disabled status filter ("all" for none).
func FilterUsers(users []models.User, search, status string) []models.User {
	search = strings.ToLower(strings.TrimSpace(search))
	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FullName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		switch status {
		case "active":
			if u.Disabled {
				continue
			}
		case "disabled":
			if !u.Disabled {
				continue
			}
		}
		filtered = append(filtered, u)
	}
	return filtered
}
