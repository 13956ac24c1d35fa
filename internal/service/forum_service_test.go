package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulsync/internal/model"
)

func TestCreatePostBumpsCategoryCounter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	category := env.seedCategory(t, "Anxiety")

	post := env.seedPost(t, author, category.ID, false)
	assert.Equal(t, category.ID, post.CategoryID)
	assert.Equal(t, "Anxiety", post.CategoryName)
	assert.Equal(t, author.Username, post.AuthorName)
	assert.Zero(t, post.Replies)
	assert.Zero(t, post.Likes)

	categories, err := env.forum.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 1, categories[0].Posts)

	env.seedPost(t, author, category.ID, false)
	categories, err = env.forum.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, categories[0].Posts)
}

func TestCreatePostUnknownCategory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)

	_, err := env.forum.CreatePost(ctx, author, &model.PostCreate{
		Title:      "lost post",
		Content:    "body",
		CategoryID: "no-such-category",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPostsByCategory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	anxiety := env.seedCategory(t, "Anxiety")
	sleep := env.seedCategory(t, "Sleep")

	env.seedPost(t, author, anxiety.ID, false)
	env.seedPost(t, author, anxiety.ID, false)
	env.seedPost(t, author, sleep.ID, false)

	all, err := env.forum.ListPosts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	scoped, err := env.forum.ListPosts(ctx, anxiety.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, scoped.Total)
	for _, p := range scoped.Posts {
		assert.Equal(t, anxiety.ID, p.CategoryID)
	}
}

func TestCreateReplyBumpsCounterAndNotifiesAuthor(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	replier := env.seedUser(t, "jordan", model.RoleUser)
	category := env.seedCategory(t, "Anxiety")
	post := env.seedPost(t, author, category.ID, false)

	reply, err := env.forum.CreateReply(ctx, replier, post.ID, &model.ReplyCreate{
		Content: "Hang in there",
	})
	require.NoError(t, err)
	assert.Equal(t, post.ID, reply.PostID)

	updated, err := env.forum.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Replies)

	list, err := env.notifications.List(ctx, author.ID, false)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, model.NotificationTypeReply, list.Notifications[0].Type)
	assert.Contains(t, list.Notifications[0].Message, "jordan")
	assert.Equal(t, post.ID, list.Notifications[0].TargetID)
}

func TestAnonymousReplyHidesNameInNotification(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	replier := env.seedUser(t, "jordan", model.RoleUser)
	category := env.seedCategory(t, "Anxiety")
	post := env.seedPost(t, author, category.ID, false)

	_, err := env.forum.CreateReply(ctx, replier, post.ID, &model.ReplyCreate{
		Content:     "Me too",
		IsAnonymous: true,
	})
	require.NoError(t, err)

	list, err := env.notifications.List(ctx, author.ID, false)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.NotContains(t, list.Notifications[0].Message, "jordan")
	assert.Contains(t, list.Notifications[0].Message, "Anonymous")
}

func TestReplyToOwnPostSendsNoNotification(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	category := env.seedCategory(t, "Anxiety")
	post := env.seedPost(t, author, category.ID, false)

	_, err := env.forum.CreateReply(ctx, author, post.ID, &model.ReplyCreate{Content: "follow-up"})
	require.NoError(t, err)

	count, err := env.notifications.UnreadCount(ctx, author.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikePost(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	liker := env.seedUser(t, "jordan", model.RoleUser)
	category := env.seedCategory(t, "Anxiety")
	post := env.seedPost(t, author, category.ID, false)

	liked, err := env.forum.LikePost(ctx, liker, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	// Likes are not deduplicated
	liked, err = env.forum.LikePost(ctx, liker, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, liked.Likes)

	list, err := env.notifications.List(ctx, author.ID, false)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, model.NotificationTypeLike, list.Notifications[0].Type)
}

func TestReportFlagsContentAndNotifiesAdmins(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	reporter := env.seedUser(t, "jordan", model.RoleUser)
	admin := env.seedUser(t, "root", model.RoleAdmin)
	category := env.seedCategory(t, "Anxiety")
	post := env.seedPost(t, author, category.ID, false)

	report, err := env.forum.Report(ctx, reporter, &model.ReportCreate{
		ContentID:   post.ID,
		ContentType: model.ContentTypePost,
		Reason:      model.ReportReasonSpam,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusPending, report.Status)
	assert.Equal(t, reporter.ID, report.ReportedBy)

	flagged, err := env.forum.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, flagged.IsReported)

	adminList, err := env.notifications.List(ctx, admin.ID, false)
	require.NoError(t, err)
	require.Len(t, adminList.Notifications, 1)
	assert.Equal(t, model.NotificationTypeReport, adminList.Notifications[0].Type)

	// The content author is not told their content was reported
	authorCount, err := env.notifications.UnreadCount(ctx, author.ID)
	require.NoError(t, err)
	assert.Zero(t, authorCount)
}

func TestReportOwnContent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	category := env.seedCategory(t, "Anxiety")
	post := env.seedPost(t, author, category.ID, false)

	_, err := env.forum.Report(ctx, author, &model.ReportCreate{
		ContentID:   post.ID,
		ContentType: model.ContentTypePost,
		Reason:      model.ReportReasonOther,
	})
	assert.ErrorIs(t, err, ErrOwnContent)

	// The rejected report must leave nothing behind: the post stays
	// unflagged and no report record exists
	kept, err := env.forum.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsReported)

	pending, err := env.moderation.PendingReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReportOwnReply(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	replier := env.seedUser(t, "jordan", model.RoleUser)
	category := env.seedCategory(t, "Anxiety")
	post := env.seedPost(t, author, category.ID, false)

	reply, err := env.forum.CreateReply(ctx, replier, post.ID, &model.ReplyCreate{Content: "reply"})
	require.NoError(t, err)

	_, err = env.forum.Report(ctx, replier, &model.ReportCreate{
		ContentID:   reply.ID,
		ContentType: model.ContentTypeReply,
		Reason:      model.ReportReasonOther,
	})
	assert.ErrorIs(t, err, ErrOwnContent)

	replies, err := env.forum.ListReplies(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.False(t, replies[0].IsReported)
}

func TestAdminCannotReport(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	admin := env.seedUser(t, "root", model.RoleAdmin)
	category := env.seedCategory(t, "Anxiety")
	post := env.seedPost(t, author, category.ID, false)

	_, err := env.forum.Report(ctx, admin, &model.ReportCreate{
		ContentID:   post.ID,
		ContentType: model.ContentTypePost,
		Reason:      model.ReportReasonSpam,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteContentRemovesPostAndReplies(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	author := env.seedUser(t, "casey", model.RoleUser)
	replier := env.seedUser(t, "jordan", model.RoleUser)
	category := env.seedCategory(t, "Anxiety")
	post := env.seedPost(t, author, category.ID, false)

	_, err := env.forum.CreateReply(ctx, replier, post.ID, &model.ReplyCreate{Content: "reply"})
	require.NoError(t, err)

	deleted, err := env.forum.DeleteContent(ctx, model.ContentTypePost, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = env.forum.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again reports nothing removed
	deleted, err = env.forum.DeleteContent(ctx, model.ContentTypePost, post.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// The category counter stays where it was: counters only go up
	categories, err := env.forum.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 1, categories[0].Posts)
}
