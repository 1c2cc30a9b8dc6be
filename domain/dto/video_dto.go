package dto

// UploadVideoRequest is the POST /api/upload body.
type UploadVideoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	VideoLink   string `json:"videoLink" binding:"required"`
	Thumbnail   string `json:"thumbnail" binding:"required"`
	Category    string `json:"category"`
}

// UpdateVideoRequest is the PUT /api/video/:id body. Nil fields are left
// untouched so partial edits work.
type UpdateVideoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Thumbnail   *string `json:"thumbnail,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// CommentRequest is the body for adding or editing a comment.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}
