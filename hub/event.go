package hub

// EventNewComment is the only event type emitted today.
const EventNewComment = "NEW_COMMENT"

// commentPreviewLen is the number of leading runes of a comment shown in
// the notification before the ellipsis marker.
const commentPreviewLen = 20

// NewCommentEvent notifies connected clients that a comment was posted.
type NewCommentEvent struct {
	Type      string `json:"type"`
	PostID    uint   `json:"postId"`
	PostTitle string `json:"postTitle"`
	Author    string `json:"author"`
	Content   string `json:"content"`
}

// NewComment builds the event for a freshly inserted comment, truncating
// the content preview.
func NewComment(postID uint, postTitle, author, content string) NewCommentEvent {
	return NewCommentEvent{
		Type:      EventNewComment,
		PostID:    postID,
		PostTitle: postTitle,
		Author:    author,
		Content:   TruncateContent(content),
	}
}

// TruncateContent shortens content to the preview length, appending "..."
// only when something was cut. Counts runes, not bytes.
func TruncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= commentPreviewLen {
		return content
	}
	return string(runes[:commentPreviewLen]) + "..."
}
