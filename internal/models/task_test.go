package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func assignments(statuses ...AssignmentStatus) []TaskAssignment {
	out := make([]TaskAssignment, len(statuses))
	for i, s := range statuses {
		out[i] = TaskAssignment{Status: s}
	}
	return out
}

func TestTask_ComputeCompletionRate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []AssignmentStatus
		want     int
	}{
		{"no assignments", nil, 0},
		{"none done", []AssignmentStatus{AssignmentPending, AssignmentInProgress}, 0},
		{"half done", []AssignmentStatus{AssignmentSubmitted, AssignmentPending}, 50},
		{"one third rounds down", []AssignmentStatus{AssignmentCompleted, AssignmentPending, AssignmentPending}, 33},
		{"two thirds rounds up", []AssignmentStatus{AssignmentCompleted, AssignmentSubmitted, AssignmentPending}, 67},
		{"all done", []AssignmentStatus{AssignmentCompleted, AssignmentSubmitted}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Assignments: assignments(tt.statuses...)}
			require.Equal(t, tt.want, task.ComputeCompletionRate())
		})
	}
}

func TestAssignmentStatus_CountsCompleted(t *testing.T) {
	require.False(t, AssignmentPending.CountsCompleted())
	require.False(t, AssignmentInProgress.CountsCompleted())
	require.True(t, AssignmentCompleted.CountsCompleted())
	require.True(t, AssignmentSubmitted.CountsCompleted())
}

func TestUserRole_Capabilities(t *testing.T) {
	require.True(t, RoleMember.CanBeAssigned())
	require.False(t, RoleUser.CanBeAssigned())
	require.False(t, RoleAdmin.CanBeAssigned())

	require.True(t, RoleAdmin.CanManage())
	require.False(t, RoleMember.CanManage())
}
