package viewmodel

import "time"

// Post is a community board post.
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	Images       []string  `json:"images,omitempty"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	ViewCount    int       `json:"viewCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Comment is a reply to a Post. ParentID is set for nested replies.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	ParentID   string    `json:"parentId,omitempty"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Diary is a pet diary entry.
type Diary struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PetID     string    `json:"petId,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	AudioURL  string    `json:"audioUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
