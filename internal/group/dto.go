package group

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// UpdateGroupRequest represents the request to update a group
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// AddMemberRequest represents the request to add a member to a group
type AddMemberRequest struct {
	UserID int64      `json:"user_id" validate:"required"`
	Role   MemberRole `json:"role,omitempty"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	CreatedAt   string                 `json:"created_at"`
	Members     []*GroupMemberResponse `json:"members,omitempty"`
}

// GroupMemberResponse represents the response for a group member
type GroupMemberResponse struct {
	ID            int64      `json:"id"`
	GroupID       int64      `json:"group_id"`
	UserID        int64      `json:"user_id"`
	Username      string     `json:"username,omitempty"`
	Email         string     `json:"email,omitempty"`
	Role          MemberRole `json:"role"`
	Active        bool       `json:"active"`
	JoinedAt      string     `json:"joined_at"`
	LeftAt        *string    `json:"left_at,omitempty"`
	RemovalReason *string    `json:"removal_reason,omitempty"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a GroupMember model to a GroupMemberResponse DTO
func (m *GroupMember) ToResponse() *GroupMemberResponse {
	resp := &GroupMemberResponse{
		ID:       m.ID,
		GroupID:  m.GroupID,
		UserID:   m.UserID,
		Username: m.Username,
		Email:    m.Email,
		Role:     m.Role,
		Active:   m.Active(),
		JoinedAt: m.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
	if m.LeftAt != nil {
		left := m.LeftAt.Format("2006-01-02T15:04:05Z")
		resp.LeftAt = &left
	}
	if m.RemovalReason != nil {
		reason := string(*m.RemovalReason)
		resp.RemovalReason = &reason
	}
	return resp
}
