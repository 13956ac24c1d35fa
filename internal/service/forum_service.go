package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"soulsync/internal/kafka"
	"soulsync/internal/model"
	"soulsync/internal/policy"
	"soulsync/internal/repository"
)

// ForumService handles categories, posts, replies, likes, and report filing
type ForumService struct {
	forumRepo     *repository.ForumRepository
	reportRepo    *repository.ReportRepository
	userRepo      *repository.UserRepository
	notifications *NotificationService
	events        *kafka.Events
	logger        *zap.Logger
}

// NewForumService creates a new forum service
func NewForumService(
	forumRepo *repository.ForumRepository,
	reportRepo *repository.ReportRepository,
	userRepo *repository.UserRepository,
	notifications *NotificationService,
	events *kafka.Events,
	logger *zap.Logger,
) *ForumService {
	return &ForumService{
		forumRepo:     forumRepo,
		reportRepo:    reportRepo,
		userRepo:      userRepo,
		notifications: notifications,
		events:        events,
		logger:        logger,
	}
}

// ListCategories returns all forum categories
func (s *ForumService) ListCategories(ctx context.Context) ([]model.ForumCategory, error) {
	return s.forumRepo.ListCategories(ctx)
}

// CreateCategory creates a forum category
func (s *ForumService) CreateCategory(ctx context.Context, create *model.CategoryCreate) (*model.ForumCategory, error) {
	category := &model.ForumCategory{
		ID:          uuid.New().String(),
		Name:        create.Name,
		Description: create.Description,
		Posts:       0,
		CreatedAt:   time.Now(),
	}

	if err := s.forumRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// CreatePost creates a post in a category and bumps the category's
// denormalized post counter
func (s *ForumService) CreatePost(ctx context.Context, author *model.User, create *model.PostCreate) (*model.ForumPost, error) {
	category, err := s.forumRepo.GetCategory(ctx, create.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	post := &model.ForumPost{
		ID:           uuid.New().String(),
		AuthorID:     author.ID,
		AuthorName:   author.Username,
		AuthorRole:   author.Role,
		IsAnonymous:  create.IsAnonymous,
		Title:        create.Title,
		Content:      create.Content,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		CreatedAt:    time.Now(),
	}

	if err := s.forumRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	if err := s.forumRepo.IncrementCategoryPosts(ctx, category.ID); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, kafka.EventPostCreated, post.ID, author.ID)

	return post, nil
}

// ListPosts returns posts, optionally scoped to one category
func (s *ForumService) ListPosts(ctx context.Context, categoryID string) (*model.PostListResponse, error) {
	posts, err := s.forumRepo.ListPosts(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return &model.PostListResponse{
		Posts: posts,
		Total: len(posts),
	}, nil
}

// GetPost retrieves one post
func (s *ForumService) GetPost(ctx context.Context, id string) (*model.ForumPost, error) {
	post, err := s.forumRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// ListReplies returns the replies for one post
func (s *ForumService) ListReplies(ctx context.Context, postID string) ([]model.ForumReply, error) {
	post, err := s.forumRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	return s.forumRepo.ListReplies(ctx, postID)
}

// CreateReply replies to a post, bumps the post's denormalized reply counter,
// and notifies the post author
func (s *ForumService) CreateReply(ctx context.Context, author *model.User, postID string, create *model.ReplyCreate) (*model.ForumReply, error) {
	post, err := s.forumRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	reply := &model.ForumReply{
		ID:          uuid.New().String(),
		PostID:      post.ID,
		AuthorID:    author.ID,
		AuthorName:  author.Username,
		AuthorRole:  author.Role,
		IsAnonymous: create.IsAnonymous,
		Content:     create.Content,
		CreatedAt:   time.Now(),
	}

	if err := s.forumRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	post.Replies++
	if _, err := s.forumRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	if post.AuthorID != author.ID {
		name := reply.AuthorName
		if reply.IsAnonymous {
			name = policy.AnonymousName
		}
		message := fmt.Sprintf("%s replied to your post %q", name, post.Title)
		if _, err := s.notifications.Append(ctx, post.AuthorID, model.NotificationTypeReply, message, post.ID); err != nil {
			s.logger.Warn("failed to notify post author of reply", zap.Error(err), zap.String("postID", post.ID))
		}
	}

	return reply, nil
}

// LikePost bumps the post's denormalized like counter and notifies the
// author. The counter is trusted as stored; likes are not deduplicated.
func (s *ForumService) LikePost(ctx context.Context, liker *model.User, postID string) (*model.ForumPost, error) {
	post, err := s.forumRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	post.Likes++
	if _, err := s.forumRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	if post.AuthorID != liker.ID {
		message := fmt.Sprintf("Someone liked your post %q", post.Title)
		if _, err := s.notifications.Append(ctx, post.AuthorID, model.NotificationTypeLike, message, post.ID); err != nil {
			s.logger.Warn("failed to notify post author of like", zap.Error(err), zap.String("postID", post.ID))
		}
	}

	return post, nil
}

// Report files a report against a post or reply, flags the content, and
// notifies admins. Authors cannot report their own content; admins moderate
// rather than report.
func (s *ForumService) Report(ctx context.Context, reporter *model.User, create *model.ReportCreate) (*model.Report, error) {
	if reporter.Role == model.RoleAdmin {
		return nil, ErrForbidden
	}

	// Resolve the content and run every check before mutating anything: a
	// rejected report must leave no partial write behind.
	var (
		post  *model.ForumPost
		reply *model.ForumReply
	)
	var authorID string
	switch create.ContentType {
	case model.ContentTypePost:
		var err error
		post, err = s.forumRepo.GetPost(ctx, create.ContentID)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrNotFound
		}
		authorID = post.AuthorID
	case model.ContentTypeReply:
		var err error
		reply, err = s.forumRepo.GetReply(ctx, create.ContentID)
		if err != nil {
			return nil, err
		}
		if reply == nil {
			return nil, ErrNotFound
		}
		authorID = reply.AuthorID
	default:
		return nil, ErrNotFound
	}

	if authorID == reporter.ID {
		return nil, ErrOwnContent
	}

	if post != nil {
		post.IsReported = true
		if _, err := s.forumRepo.UpdatePost(ctx, post); err != nil {
			return nil, err
		}
	} else {
		reply.IsReported = true
		if _, err := s.forumRepo.UpdateReply(ctx, reply); err != nil {
			return nil, err
		}
	}

	report := &model.Report{
		ID:          uuid.New().String(),
		ContentID:   create.ContentID,
		ContentType: create.ContentType,
		ReportedBy:  reporter.ID,
		Reason:      create.Reason,
		Status:      model.ReportStatusPending,
		CreatedAt:   time.Now(),
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, report)
	s.events.Emit(ctx, kafka.EventReportFiled, report.ID, reporter.ID)

	return report, nil
}

// notifyAdmins appends a report notification to every admin's partition
func (s *ForumService) notifyAdmins(ctx context.Context, report *model.Report) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Warn("failed to load users for report notification", zap.Error(err))
		return
	}

	message := fmt.Sprintf("A %s was reported for %s", report.ContentType, report.Reason)
	for i := range users {
		if users[i].Role != model.RoleAdmin {
			continue
		}
		if _, err := s.notifications.Append(ctx, users[i].ID, model.NotificationTypeReport, message, report.ContentID); err != nil {
			s.logger.Warn("failed to notify admin of report",
				zap.Error(err),
				zap.String("adminID", users[i].ID))
		}
	}
}

// DeleteContent removes a post (and its replies) or a reply. Deleting
// content that is already gone is a no-op; the return reports whether
// anything was removed. Reply counters are not decremented: they are
// increment-only by design.
func (s *ForumService) DeleteContent(ctx context.Context, contentType, contentID string) (bool, error) {
	switch contentType {
	case model.ContentTypePost:
		deleted, err := s.forumRepo.DeletePost(ctx, contentID)
		if err != nil {
			return false, err
		}
		if deleted {
			if _, err := s.forumRepo.DeleteRepliesByPost(ctx, contentID); err != nil {
				return true, err
			}
		}
		return deleted, nil
	case model.ContentTypeReply:
		return s.forumRepo.DeleteReply(ctx, contentID)
	default:
		return false, nil
	}
}
