package group

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
	ErrMemberInactive      = errors.New("membership has already ended")
	ErrNotAuthorized       = errors.New("not authorized to perform this action")
	ErrGroupNotSettled     = errors.New("group has unsettled balances")
)

// SettlementChecker reports whether a group's books are settled. The balance
// feature implements this; groups only consult it before deletion.
type SettlementChecker interface {
	IsGroupSettled(ctx context.Context, groupID int64) (bool, error)
}

// Service handles group business logic
type Service struct {
	repo    *Repository
	settled SettlementChecker
}

// NewService creates a new group service. The settlement checker guards group
// deletion and may be nil in contexts that never delete groups.
func NewService(repo *Repository, settled SettlementChecker) *Service {
	return &Service{repo: repo, settled: settled}
}

// Create creates a new group with the creator as admin.
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*Group, error) {
	return s.repo.Create(ctx, creatorID, req)
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetByIDWithMembers retrieves a group with all its memberships, ended ones included.
func (s *Service) GetByIDWithMembers(ctx context.Context, id int64) (*Group, []*GroupMember, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// ListByUserID retrieves all groups for a user
func (s *Service) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*Group, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// Update modifies an existing group
func (s *Service) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a group. Only an admin may delete, and only once every
// active member's net balance is zero.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	if err := s.requireAdmin(ctx, id, userID); err != nil {
		return err
	}

	if s.settled != nil {
		ok, err := s.settled.IsGroupSettled(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrGroupNotSettled
		}
	}

	return s.repo.Delete(ctx, id)
}

// AddMember adds a user to a group, reviving an ended membership if one exists.
func (s *Service) AddMember(ctx context.Context, groupID int64, req *AddMemberRequest) (*GroupMember, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	existing, err := s.repo.GetMember(ctx, groupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Active() {
			return nil, ErrMemberAlreadyExists
		}
		return s.repo.ReactivateMember(ctx, groupID, req.UserID)
	}

	return s.repo.AddMember(ctx, groupID, req)
}

// GetMembers retrieves all memberships of a group
func (s *Service) GetMembers(ctx context.Context, groupID int64) ([]*GroupMember, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.GetMembers(ctx, groupID)
}

// ListActiveMemberIDs returns the user IDs of current members in join order.
// This is the roster new expense splits are validated against.
func (s *Service) ListActiveMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	return s.repo.ListActiveMemberIDs(ctx, groupID)
}

// Leave ends the caller's own membership voluntarily.
func (s *Service) Leave(ctx context.Context, groupID, userID int64) error {
	return s.endMembership(ctx, groupID, userID, RemovalReasonLeft)
}

// RemoveMember lets an admin end another user's membership.
func (s *Service) RemoveMember(ctx context.Context, groupID, adminID, userID int64) error {
	if err := s.requireAdmin(ctx, groupID, adminID); err != nil {
		return err
	}
	return s.endMembership(ctx, groupID, userID, RemovalReasonRemoved)
}

func (s *Service) endMembership(ctx context.Context, groupID, userID int64, reason RemovalReason) error {
	member, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if !member.Active() {
		return ErrMemberInactive
	}

	return s.repo.EndMembership(ctx, groupID, userID, reason)
}

func (s *Service) requireAdmin(ctx context.Context, groupID, userID int64) error {
	member, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member == nil || !member.Active() || member.Role != MemberRoleAdmin {
		return ErrNotAuthorized
	}
	return nil
}
