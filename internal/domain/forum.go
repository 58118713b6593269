package domain

import "time"

// Category groups threads by topic.
type Category struct {
	ID   int64
	Name string
}

// Thread is a top-level discussion post belonging to one category and one author.
type Thread struct {
	ID         int64
	Title      string
	Content    string
	CreatedAt  time.Time
	UserID     int64
	CategoryID int64
}

// Comment is a reply attached to a thread.
type Comment struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	UserID    int64
	ThreadID  int64
}

// CommentView is a comment joined with its author.
type CommentView struct {
	Comment
	Author User
}

// FeedItem is a thread with its author, category and comments resolved.
type FeedItem struct {
	Thread
	Author   User
	Category Category
	Comments []CommentView
}
