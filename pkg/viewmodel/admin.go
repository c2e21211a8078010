package viewmodel

import "time"

// AdminStats summarizes the admin dashboard.
type AdminStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalPosts     int `json:"totalPosts"`
	TotalReports   int `json:"totalReports"`
	PendingReports int `json:"pendingReports"`
	TodaySignups   int `json:"todaySignups"`
	ActiveUsers    int `json:"activeUsers"`
}

// UserStatus is the moderation state of an account.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
	UserBanned    UserStatus = "banned"
)

// AdminUser is a row of the admin user table.
type AdminUser struct {
	ID        string     `json:"id"`
	Nickname  string     `json:"nickname"`
	Email     string     `json:"email"`
	Provider  string     `json:"provider"`
	Status    UserStatus `json:"status"`
	PostCount int        `json:"postCount"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// ReportStatus is the review state of a report.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
)

// Report is a user report against a post or comment.
type Report struct {
	ID         string       `json:"id"`
	TargetType string       `json:"targetType"`
	TargetID   string       `json:"targetId"`
	ReporterID string       `json:"reporterId"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
}
