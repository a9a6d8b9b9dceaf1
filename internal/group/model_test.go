package group

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroupMemberActive(t *testing.T) {
	now := time.Now()
	reason := RemovalReasonLeft

	current := &GroupMember{UserID: 1, Role: MemberRoleMember}
	assert.True(t, current.Active())

	ended := &GroupMember{UserID: 2, Role: MemberRoleMember, LeftAt: &now, RemovalReason: &reason}
	assert.False(t, ended.Active())
}
