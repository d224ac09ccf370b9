package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/unilink/unilink/internal/app/models"
)

func TestInGraceWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		visualized bool
		updatedAt  time.Time
		want       bool
	}{
		{
			name:       "unvisualized always shows",
			visualized: false,
			updatedAt:  now.Add(-30 * 24 * time.Hour),
			want:       true,
		},
		{
			name:       "visualized just now shows",
			visualized: true,
			updatedAt:  now,
			want:       true,
		},
		{
			name:       "visualized a day and a half ago shows",
			visualized: true,
			updatedAt:  now.Add(-36 * time.Hour),
			want:       true,
		},
		{
			name:       "visualized exactly at the window edge drops",
			visualized: true,
			updatedAt:  now.Add(-NotificationGraceWindow),
			want:       false,
		},
		{
			name:       "visualized three days ago drops",
			visualized: true,
			updatedAt:  now.Add(-72 * time.Hour),
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inGraceWindow(tt.visualized, tt.updatedAt, now))
		})
	}
}

func TestAdminEntryRequests(t *testing.T) {
	requests := []models.ProjectRequest{
		{ID: 1, ProjectID: 10},
		{ID: 2, ProjectID: 11},
		{ID: 3, ProjectID: 12},
	}
	roles := []models.MemberRole{models.RoleAdmin, models.RoleMember, models.RoleAdmin}

	filtered := adminEntryRequests(requests, roles)

	assert.Len(t, filtered, 2)
	assert.Equal(t, int64(1), filtered[0].ID)
	assert.Equal(t, int64(3), filtered[1].ID)
}

func TestAdminEntryRequestsEmpty(t *testing.T) {
	filtered := adminEntryRequests(nil, nil)

	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}
