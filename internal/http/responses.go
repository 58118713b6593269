package http

import (
	"time"

	"threadboard/internal/domain"
)

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type AuthorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ThreadResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	UserID     int64  `json:"user_id"`
	CategoryID int64  `json:"category_id"`
}

type CommentResponse struct {
	ID        int64           `json:"id"`
	Content   string          `json:"content"`
	CreatedAt string          `json:"created_at"`
	UserID    int64           `json:"user_id"`
	ThreadID  int64           `json:"thread_id"`
	Author    *AuthorResponse `json:"author,omitempty"`
}

// FeedThreadResponse is a thread with its author, category and comments nested.
type FeedThreadResponse struct {
	ThreadResponse
	Author   AuthorResponse    `json:"author"`
	Category CategoryResponse  `json:"category"`
	Comments []CommentResponse `json:"comments"`
}

type CityResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CustomerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Zip   string `json:"zip"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func userToResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func categoryToResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func threadToResponse(t domain.Thread) ThreadResponse {
	return ThreadResponse{
		ID:         t.ID,
		Title:      t.Title,
		Content:    t.Content,
		CreatedAt:  formatTime(t.CreatedAt),
		UserID:     t.UserID,
		CategoryID: t.CategoryID,
	}
}

func commentToResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: formatTime(c.CreatedAt),
		UserID:    c.UserID,
		ThreadID:  c.ThreadID,
	}
}

func feedItemToResponse(item domain.FeedItem) FeedThreadResponse {
	resp := FeedThreadResponse{
		ThreadResponse: threadToResponse(item.Thread),
		Author:         AuthorResponse{ID: item.Author.ID, Username: item.Author.Username},
		Category:       categoryToResponse(item.Category),
		Comments:       make([]CommentResponse, len(item.Comments)),
	}
	for i, cv := range item.Comments {
		comment := commentToResponse(cv.Comment)
		comment.Author = &AuthorResponse{ID: cv.Author.ID, Username: cv.Author.Username}
		resp.Comments[i] = comment
	}
	return resp
}
