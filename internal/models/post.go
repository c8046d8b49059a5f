// Package models contains data structures for the application's domain models.
package models

import (
	"math"
	"time"
)

// Categories a post may belong to. "All" is a filter value only and is
// never stored on a post.
var Categories = []string{"Technology", "Design", "Business", "Lifestyle", "Travel"}

// ValidCategory reports whether c is one of the storable post categories.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// Post represents a blog post. Ratings are an append-only sequence of
// integers in [1,5]; comments are ordered oldest-first.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"authorEmail"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Image       string    `json:"image,omitempty"`
	Ratings     []int     `json:"ratings"`
	Comments    []Comment `json:"comments"`
	Disabled    bool      `json:"disabled,omitempty"`
}

// Comment represents a comment on a post. AuthorEmail is empty for
// comments imported from legacy data that predates accounts.
type Comment struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"authorEmail,omitempty"`
	Text        string    `json:"text"`
	Date        time.Time `json:"date"`
	Edited      bool      `json:"edited,omitempty"`
}

// AverageRating returns the arithmetic mean of the post's ratings rounded
// to one decimal. A post with no ratings averages 0.
func (p *Post) AverageRating() float64 {
	if len(p.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(p.Ratings))
	return math.Round(avg*10) / 10
}

// FindComment returns the index of the comment with the given id, or -1.
func (p *Post) FindComment(commentID string) int {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return i
		}
	}
	return -1
}

// VisibleTo reports whether viewer may see this post. Disabled posts are
// hidden from everyone except the owning author and admins. A nil viewer
// is an anonymous reader.
func (p *Post) VisibleTo(viewer *User) bool {
	if !p.Disabled {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.IsAdmin || viewer.Email == p.AuthorEmail
}
