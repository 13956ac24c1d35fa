package store

// Logical partition keys. Notification partitions are per owner; the rest
// are global arrays.
const (
	KeyUsers                = "users"
	KeyForumCategories      = "forum_categories"
	KeyForumPosts           = "forum_posts"
	KeyForumReplies         = "forum_replies"
	KeyReportedContent      = "reported_content"
	KeyPendingProfessionals = "pending_professionals"

	notificationKeyPrefix = "notifications:"
)

// NotificationKey returns the partition key for one owner's notifications.
// Operations on owner A must never touch owner B's key.
func NotificationKey(ownerID string) string {
	return notificationKeyPrefix + ownerID
}
