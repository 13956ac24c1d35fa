package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"soulsync/internal/model"
	"soulsync/internal/store"
)

// ForumRepository persists the global category, post, and reply arrays
type ForumRepository struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewForumRepository creates a new forum repository
func NewForumRepository(recordStore store.RecordStore, logger *zap.Logger) *ForumRepository {
	return &ForumRepository{
		store:  recordStore,
		logger: logger,
	}
}

func (r *ForumRepository) loadCategories(ctx context.Context) ([]model.ForumCategory, error) {
	raw, err := r.store.Get(ctx, store.KeyForumCategories)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var categories []model.ForumCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		r.logger.Warn("corrupt category store, resetting to empty", zap.Error(err))
		return nil, nil
	}
	return categories, nil
}

func (r *ForumRepository) saveCategories(ctx context.Context, categories []model.ForumCategory) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyForumCategories, raw)
}

func (r *ForumRepository) loadPosts(ctx context.Context) ([]model.ForumPost, error) {
	raw, err := r.store.Get(ctx, store.KeyForumPosts)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var posts []model.ForumPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		r.logger.Warn("corrupt post store, resetting to empty", zap.Error(err))
		return nil, nil
	}
	return posts, nil
}

func (r *ForumRepository) savePosts(ctx context.Context, posts []model.ForumPost) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyForumPosts, raw)
}

func (r *ForumRepository) loadReplies(ctx context.Context) ([]model.ForumReply, error) {
	raw, err := r.store.Get(ctx, store.KeyForumReplies)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var replies []model.ForumReply
	if err := json.Unmarshal(raw, &replies); err != nil {
		r.logger.Warn("corrupt reply store, resetting to empty", zap.Error(err))
		return nil, nil
	}
	return replies, nil
}

func (r *ForumRepository) saveReplies(ctx context.Context, replies []model.ForumReply) error {
	raw, err := json.Marshal(replies)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyForumReplies, raw)
}

// ListCategories returns all categories in store order
func (r *ForumRepository) ListCategories(ctx context.Context) ([]model.ForumCategory, error) {
	return r.loadCategories(ctx)
}

// GetCategory retrieves a category by ID, (nil, nil) when not found
func (r *ForumRepository) GetCategory(ctx context.Context, id string) (*model.ForumCategory, error) {
	categories, err := r.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}

	return nil, nil
}

// CreateCategory appends a new category
func (r *ForumRepository) CreateCategory(ctx context.Context, category *model.ForumCategory) error {
	categories, err := r.loadCategories(ctx)
	if err != nil {
		return err
	}

	categories = append(categories, *category)
	return r.saveCategories(ctx, categories)
}

// IncrementCategoryPosts bumps the denormalized post counter. The counter is
// authoritative: it is never recomputed from a scan.
func (r *ForumRepository) IncrementCategoryPosts(ctx context.Context, categoryID string) error {
	categories, err := r.loadCategories(ctx)
	if err != nil {
		return err
	}

	for i := range categories {
		if categories[i].ID == categoryID {
			categories[i].Posts++
			return r.saveCategories(ctx, categories)
		}
	}

	return nil
}

// ListPosts returns posts, filtered to one category when categoryID is
// non-empty, in store order
func (r *ForumRepository) ListPosts(ctx context.Context, categoryID string) ([]model.ForumPost, error) {
	posts, err := r.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		return posts, nil
	}

	filtered := make([]model.ForumPost, 0, len(posts))
	for _, p := range posts {
		if p.CategoryID == categoryID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetPost retrieves a post by ID, (nil, nil) when not found
func (r *ForumRepository) GetPost(ctx context.Context, id string) (*model.ForumPost, error) {
	posts, err := r.loadPosts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}

	return nil, nil
}

// CreatePost appends a new post
func (r *ForumRepository) CreatePost(ctx context.Context, post *model.ForumPost) error {
	posts, err := r.loadPosts(ctx)
	if err != nil {
		return err
	}

	posts = append(posts, *post)
	return r.savePosts(ctx, posts)
}

// UpdatePost replaces the stored record matching post.ID. Returns false when
// no record matched.
func (r *ForumRepository) UpdatePost(ctx context.Context, post *model.ForumPost) (bool, error) {
	posts, err := r.loadPosts(ctx)
	if err != nil {
		return false, err
	}

	for i := range posts {
		if posts[i].ID == post.ID {
			posts[i] = *post
			return true, r.savePosts(ctx, posts)
		}
	}

	return false, nil
}

// DeletePost removes a post. Deleting a missing post is a no-op and returns
// false.
func (r *ForumRepository) DeletePost(ctx context.Context, id string) (bool, error) {
	posts, err := r.loadPosts(ctx)
	if err != nil {
		return false, err
	}

	for i := range posts {
		if posts[i].ID == id {
			posts = append(posts[:i], posts[i+1:]...)
			return true, r.savePosts(ctx, posts)
		}
	}

	return false, nil
}

// ListReplies returns the replies for one post in store order
func (r *ForumRepository) ListReplies(ctx context.Context, postID string) ([]model.ForumReply, error) {
	replies, err := r.loadReplies(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.ForumReply, 0, len(replies))
	for _, reply := range replies {
		if reply.PostID == postID {
			filtered = append(filtered, reply)
		}
	}
	return filtered, nil
}

// GetReply retrieves a reply by ID, (nil, nil) when not found
func (r *ForumRepository) GetReply(ctx context.Context, id string) (*model.ForumReply, error) {
	replies, err := r.loadReplies(ctx)
	if err != nil {
		return nil, err
	}

	for i := range replies {
		if replies[i].ID == id {
			return &replies[i], nil
		}
	}

	return nil, nil
}

// CreateReply appends a new reply
func (r *ForumRepository) CreateReply(ctx context.Context, reply *model.ForumReply) error {
	replies, err := r.loadReplies(ctx)
	if err != nil {
		return err
	}

	replies = append(replies, *reply)
	return r.saveReplies(ctx, replies)
}

// UpdateReply replaces the stored record matching reply.ID. Returns false
// when no record matched.
func (r *ForumRepository) UpdateReply(ctx context.Context, reply *model.ForumReply) (bool, error) {
	replies, err := r.loadReplies(ctx)
	if err != nil {
		return false, err
	}

	for i := range replies {
		if replies[i].ID == reply.ID {
			replies[i] = *reply
			return true, r.saveReplies(ctx, replies)
		}
	}

	return false, nil
}

// DeleteReply removes a reply. Deleting a missing reply is a no-op and
// returns false.
func (r *ForumRepository) DeleteReply(ctx context.Context, id string) (bool, error) {
	replies, err := r.loadReplies(ctx)
	if err != nil {
		return false, err
	}

	for i := range replies {
		if replies[i].ID == id {
			replies = append(replies[:i], replies[i+1:]...)
			return true, r.saveReplies(ctx, replies)
		}
	}

	return false, nil
}

// DeleteRepliesByPost removes every reply belonging to a post and returns the
// number removed
func (r *ForumRepository) DeleteRepliesByPost(ctx context.Context, postID string) (int, error) {
	replies, err := r.loadReplies(ctx)
	if err != nil {
		return 0, err
	}

	kept := replies[:0]
	for _, reply := range replies {
		if reply.PostID == postID {
			continue
		}
		kept = append(kept, reply)
	}

	removed := len(replies) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	return removed, r.saveReplies(ctx, kept)
}
