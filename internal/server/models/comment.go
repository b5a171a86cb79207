package models

import "time"

// Comment is a flat comment record on a blog post. ParentID is nil for a
// top-level comment and is never changed after creation.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	ParentID  *string   `json:"parent_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentNode is a comment together with its direct replies.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// NewComment carries the fields a visitor supplies when posting.
type NewComment struct {
	PostID   string  `json:"-"`
	ParentID *string `json:"parent_id"`
	Author   string  `json:"author"`
	Content  string  `json:"content"`
}
