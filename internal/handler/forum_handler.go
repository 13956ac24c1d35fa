package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsync/internal/model"
	"soulsync/internal/policy"
	"soulsync/internal/service"
)

// ForumHandler handles category, post, reply, like, and report HTTP requests
type ForumHandler struct {
	forumService *service.ForumService
	userService  *service.UserService
	logger       *zap.Logger
}

// NewForumHandler creates a new forum handler
func NewForumHandler(forumService *service.ForumService, userService *service.UserService, logger *zap.Logger) *ForumHandler {
	return &ForumHandler{
		forumService: forumService,
		userService:  userService,
		logger:       logger,
	}
}

// PostView is a post as one viewer sees it: display identity and
// capabilities come from the visibility policy, never from the client.
type PostView struct {
	model.ForumPost
	DisplayName string `json:"display_name"`
	CanReport   bool   `json:"can_report"`
	CanModerate bool   `json:"can_moderate"`
}

// ReplyView is a reply as one viewer sees it
type ReplyView struct {
	model.ForumReply
	DisplayName string `json:"display_name"`
	CanReport   bool   `json:"can_report"`
	CanModerate bool   `json:"can_moderate"`
}

// viewer resolves the policy viewer for this request. Requests without a
// valid token get the zero (unauthenticated) viewer.
func (h *ForumHandler) viewer(c *gin.Context) policy.Viewer {
	userID, exists := c.Get("userID")
	if !exists {
		return policy.Viewer{}
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID.(string))
	if err != nil {
		return policy.Viewer{}
	}

	return policy.Viewer{
		ID:            user.ID,
		Role:          user.Role,
		Authenticated: true,
	}
}

func makePostView(viewer policy.Viewer, post model.ForumPost) PostView {
	decision := policy.Evaluate(viewer, post.AuthorID, post.AuthorName, post.IsAnonymous)

	view := PostView{
		ForumPost:   post,
		DisplayName: decision.DisplayName,
		CanReport:   decision.CanReport,
		CanModerate: decision.CanModerate,
	}

	// Hide the real identity wherever the policy did
	if decision.DisplayName == policy.AnonymousName {
		view.AuthorID = ""
		view.AuthorName = ""
	}

	return view
}

func makeReplyView(viewer policy.Viewer, reply model.ForumReply) ReplyView {
	decision := policy.Evaluate(viewer, reply.AuthorID, reply.AuthorName, reply.IsAnonymous)

	view := ReplyView{
		ForumReply:  reply,
		DisplayName: decision.DisplayName,
		CanReport:   decision.CanReport,
		CanModerate: decision.CanModerate,
	}

	if decision.DisplayName == policy.AnonymousName {
		view.AuthorID = ""
		view.AuthorName = ""
	}

	return view
}

// ListCategories returns all forum categories
// GET /api/v1/forum/categories
func (h *ForumHandler) ListCategories(c *gin.Context) {
	categories, err := h.forumService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory creates a forum category (admin only)
// POST /api/v1/admin/categories
func (h *ForumHandler) CreateCategory(c *gin.Context) {
	var create model.CategoryCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.forumService.CreateCategory(c.Request.Context(), &create)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// ListPosts returns posts, optionally filtered by category
// GET /api/v1/forum/posts?category_id=...
func (h *ForumHandler) ListPosts(c *gin.Context) {
	posts, err := h.forumService.ListPosts(c.Request.Context(), c.Query("category_id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to list posts")
		return
	}

	viewer := h.viewer(c)
	views := make([]PostView, 0, len(posts.Posts))
	for _, post := range posts.Posts {
		views = append(views, makePostView(viewer, post))
	}

	c.JSON(http.StatusOK, gin.H{"posts": views, "total": posts.Total})
}

// GetPost returns one post
// GET /api/v1/forum/posts/:id
func (h *ForumHandler) GetPost(c *gin.Context) {
	post, err := h.forumService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get post")
		return
	}

	c.JSON(http.StatusOK, makePostView(h.viewer(c), *post))
}

// CreatePost creates a post in a category
// POST /api/v1/forum/posts
func (h *ForumHandler) CreatePost(c *gin.Context) {
	var create model.PostCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, err := h.currentUser(c)
	if err != nil {
		respondError(c, h.logger, err, "Failed to resolve user")
		return
	}

	post, err := h.forumService.CreatePost(c.Request.Context(), author, &create)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListReplies returns the replies for one post
// GET /api/v1/forum/posts/:id/replies
func (h *ForumHandler) ListReplies(c *gin.Context) {
	replies, err := h.forumService.ListReplies(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to list replies")
		return
	}

	viewer := h.viewer(c)
	views := make([]ReplyView, 0, len(replies))
	for _, reply := range replies {
		views = append(views, makeReplyView(viewer, reply))
	}

	c.JSON(http.StatusOK, gin.H{"replies": views, "total": len(views)})
}

// CreateReply replies to a post
// POST /api/v1/forum/posts/:id/replies
func (h *ForumHandler) CreateReply(c *gin.Context) {
	var create model.ReplyCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, err := h.currentUser(c)
	if err != nil {
		respondError(c, h.logger, err, "Failed to resolve user")
		return
	}

	reply, err := h.forumService.CreateReply(c.Request.Context(), author, c.Param("id"), &create)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create reply")
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// LikePost increments a post's like counter
// POST /api/v1/forum/posts/:id/like
func (h *ForumHandler) LikePost(c *gin.Context) {
	liker, err := h.currentUser(c)
	if err != nil {
		respondError(c, h.logger, err, "Failed to resolve user")
		return
	}

	post, err := h.forumService.LikePost(c.Request.Context(), liker, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to like post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": post.Likes})
}

// CreateReport files a report against a post or reply
// POST /api/v1/forum/reports
func (h *ForumHandler) CreateReport(c *gin.Context) {
	var create model.ReportCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reporter, err := h.currentUser(c)
	if err != nil {
		respondError(c, h.logger, err, "Failed to resolve user")
		return
	}

	report, err := h.forumService.Report(c.Request.Context(), reporter, &create)
	if err != nil {
		respondError(c, h.logger, err, "Failed to file report")
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ForumHandler) currentUser(c *gin.Context) (*model.User, error) {
	userID, _ := c.Get("userID")
	return h.userService.GetByID(c.Request.Context(), userID.(string))
}
