package model

import (
	"time"
)

// ForumCategory groups posts. Posts is a denormalized counter incremented on
// post creation and never recomputed from a scan.
type ForumCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Posts       int       `json:"posts"`
	CreatedAt   time.Time `json:"created_at"`
}

// ForumPost represents a post in a category. Likes and Replies are
// denormalized counters, incremented by user actions.
type ForumPost struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorRole   string    `json:"author_role"`
	IsAnonymous  bool      `json:"is_anonymous,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Likes        int       `json:"likes"`
	Replies      int       `json:"replies"`
	IsReported   bool      `json:"is_reported,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ForumReply represents a reply to a post
type ForumReply struct {
	ID          string    `json:"id"`
	PostID      string    `json:"post_id"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	AuthorRole  string    `json:"author_role"`
	IsAnonymous bool      `json:"is_anonymous,omitempty"`
	Content     string    `json:"content"`
	IsReported  bool      `json:"is_reported,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryCreate represents data for creating a forum category
type CategoryCreate struct {
	Name        string `json:"name" binding:"required,min=2,max=60"`
	Description string `json:"description" binding:"max=300"`
}

// PostCreate represents data for creating a forum post
type PostCreate struct {
	Title       string `json:"title" binding:"required,min=3,max=150"`
	Content     string `json:"content" binding:"required"`
	CategoryID  string `json:"category_id" binding:"required"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// ReplyCreate represents data for replying to a post
type ReplyCreate struct {
	Content     string `json:"content" binding:"required"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// PostListResponse represents a list of posts within a category
type PostListResponse struct {
	Posts []ForumPost `json:"posts"`
	Total int         `json:"total"`
}
