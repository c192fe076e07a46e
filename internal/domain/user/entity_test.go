package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Employee ")
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, r)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRoleCapabilities(t *testing.T) {
	testCases := []struct {
		role     Role
		canApply bool
		canPost  bool
		canView  bool
	}{
		{role: RoleEmployee, canApply: true},
		{role: RoleEmployer, canPost: true, canView: true},
		{role: RoleAdmin, canView: true},
		{role: Role("guest")},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.canApply, tc.role.CanApply())
			assert.Equal(t, tc.canPost, tc.role.CanPostJobs())
			assert.Equal(t, tc.canView, tc.role.CanViewCandidates())
		})
	}
}
