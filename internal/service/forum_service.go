package service

import (
	"context"
	"strings"

	"threadboard/internal/domain"
	"threadboard/internal/repository"
)

const (
	maxCategoryNameLen = 50
	maxThreadTitleLen  = 200
)

// ThreadInput carries the writable fields of a thread.
type ThreadInput struct {
	Title      string
	Content    string
	CategoryID int64
}

// ForumService coordinates categories, threads, comments and the feed.
type ForumService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)

	CreateThread(ctx context.Context, authorID int64, in ThreadInput) (*domain.Thread, error)
	GetThread(ctx context.Context, id int64) (*domain.FeedItem, error)
	ListThreads(ctx context.Context) ([]domain.Thread, error)
	ListThreadsByUser(ctx context.Context, userID int64) ([]domain.Thread, error)
	UpdateThread(ctx context.Context, actorID, id int64, in ThreadInput) (*domain.Thread, error)
	DeleteThread(ctx context.Context, actorID, id int64) error

	CreateComment(ctx context.Context, authorID, threadID int64, content string) (*domain.Comment, error)
	GetComment(ctx context.Context, id int64) (*domain.Comment, error)
	UpdateComment(ctx context.Context, actorID, id int64, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, actorID, id int64) error

	// Feed lists every thread newest first with author, category and comments resolved.
	Feed(ctx context.Context) ([]domain.FeedItem, error)
}

type forumService struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	threads    repository.ThreadRepository
	comments   repository.CommentRepository
}

func NewForumService(
	users repository.UserRepository,
	categories repository.CategoryRepository,
	threads repository.ThreadRepository,
	comments repository.CommentRepository,
) ForumService {
	return &forumService{
		users:      users,
		categories: categories,
		threads:    threads,
		comments:   comments,
	}
}

func (s *forumService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *forumService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if err := checkText("name", name, maxCategoryNameLen); err != nil {
		return nil, err
	}
	category := &domain.Category{Name: name}
	if _, err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *forumService) CreateThread(ctx context.Context, authorID int64, in ThreadInput) (*domain.Thread, error) {
	in, err := normalizeThread(in)
	if err != nil {
		return nil, err
	}
	thread := &domain.Thread{
		Title:      in.Title,
		Content:    in.Content,
		UserID:     authorID,
		CategoryID: in.CategoryID,
	}
	if _, err := s.threads.Create(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *forumService) GetThread(ctx context.Context, id int64) (*domain.FeedItem, error) {
	thread, err := s.threads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.assemble(ctx, []domain.Thread{*thread})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *forumService) ListThreads(ctx context.Context) ([]domain.Thread, error) {
	return s.threads.ListNewest(ctx)
}

func (s *forumService) ListThreadsByUser(ctx context.Context, userID int64) ([]domain.Thread, error) {
	return s.threads.ListByUser(ctx, userID)
}

func (s *forumService) UpdateThread(ctx context.Context, actorID, id int64, in ThreadInput) (*domain.Thread, error) {
	thread, err := s.threads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if thread.UserID != actorID {
		return nil, ErrForbidden
	}
	in, err = normalizeThread(in)
	if err != nil {
		return nil, err
	}

	thread.Title = in.Title
	thread.Content = in.Content
	thread.CategoryID = in.CategoryID
	if err := s.threads.Update(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *forumService) DeleteThread(ctx context.Context, actorID, id int64) error {
	thread, err := s.threads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if thread.UserID != actorID {
		return ErrForbidden
	}
	return s.threads.Delete(ctx, id)
}

func (s *forumService) CreateComment(ctx context.Context, authorID, threadID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if err := checkText("content", content, 0); err != nil {
		return nil, err
	}
	if threadID <= 0 {
		return nil, required("thread_id")
	}
	comment := &domain.Comment{
		Content:  content,
		UserID:   authorID,
		ThreadID: threadID,
	}
	if _, err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *forumService) GetComment(ctx context.Context, id int64) (*domain.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

func (s *forumService) UpdateComment(ctx context.Context, actorID, id int64, content string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, ErrForbidden
	}
	content = strings.TrimSpace(content)
	if err := checkText("content", content, 0); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *forumService) DeleteComment(ctx context.Context, actorID, id int64) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, id)
}

func (s *forumService) Feed(ctx context.Context) ([]domain.FeedItem, error) {
	threads, err := s.threads.ListNewest(ctx)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, threads)
}

// assemble resolves authors, categories and comments for the given threads,
// preserving thread order.
func (s *forumService) assemble(ctx context.Context, threads []domain.Thread) ([]domain.FeedItem, error) {
	items := make([]domain.FeedItem, len(threads))
	if len(threads) == 0 {
		return items, nil
	}

	ids := make([]int64, len(threads))
	userIDs := make([]int64, 0, len(threads))
	categoryIDs := make([]int64, 0, len(threads))
	for i := range threads {
		ids[i] = threads[i].ID
		userIDs = append(userIDs, threads[i].UserID)
		categoryIDs = append(categoryIDs, threads[i].CategoryID)
	}

	comments, err := s.comments.ListByThreads(ctx, ids...)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}

	users, err := s.users.ListByIDs(ctx, userIDs...)
	if err != nil {
		return nil, err
	}
	byUser := make(map[int64]domain.User, len(users))
	for _, u := range users {
		byUser[u.ID] = *sanitizeUser(&u)
	}

	categories, err := s.categories.ListByIDs(ctx, categoryIDs...)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[int64]domain.Category, len(categories))
	for _, c := range categories {
		byCategory[c.ID] = c
	}

	byThread := make(map[int64][]domain.CommentView, len(threads))
	for _, c := range comments {
		byThread[c.ThreadID] = append(byThread[c.ThreadID], domain.CommentView{
			Comment: c,
			Author:  byUser[c.UserID],
		})
	}

	for i, t := range threads {
		replies := byThread[t.ID]
		if replies == nil {
			replies = []domain.CommentView{}
		}
		items[i] = domain.FeedItem{
			Thread:   t,
			Author:   byUser[t.UserID],
			Category: byCategory[t.CategoryID],
			Comments: replies,
		}
	}
	return items, nil
}

func normalizeThread(in ThreadInput) (ThreadInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if err := checkText("title", in.Title, maxThreadTitleLen); err != nil {
		return in, err
	}
	if err := checkText("content", in.Content, 0); err != nil {
		return in, err
	}
	if in.CategoryID <= 0 {
		return in, required("category_id")
	}
	return in, nil
}
