package group

import "time"

// MemberRole represents the role of a group member
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

// RemovalReason records why a membership ended.
type RemovalReason string

const (
	RemovalReasonLeft    RemovalReason = "LEFT"    // voluntary leave
	RemovalReasonRemoved RemovalReason = "REMOVED" // removed by an admin
)

// Group represents a group in the system
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroupMember represents a user's membership in a group. An ended membership
// is soft-deleted: LeftAt is set, the row stays. Inactive members cannot join
// new splits but their historical expenses and payments are retained.
type GroupMember struct {
	ID            int64          `json:"id"`
	GroupID       int64          `json:"group_id"`
	UserID        int64          `json:"user_id"`
	Role          MemberRole     `json:"role"`
	JoinedAt      time.Time      `json:"joined_at"`
	LeftAt        *time.Time     `json:"left_at,omitempty"`
	RemovalReason *RemovalReason `json:"removal_reason,omitempty"`

	// Populated from JOIN
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Active reports whether the membership is current.
func (m *GroupMember) Active() bool {
	return m.LeftAt == nil
}
