package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTodoTitleLength is the maximum title length in characters.
const MaxTodoTitleLength = 255

// Todo is a single item on a user's list.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	OwnerID   string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeTitle trims surrounding whitespace from a title.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// ValidTitle reports whether a normalized title is non-empty and within the length limit.
func ValidTitle(title string) bool {
	n := utf8.RuneCountInString(title)
	return n >= 1 && n <= MaxTodoTitleLength
}
