package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProfileService_OverviewDerivesDisplayFields(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	api := newFakeAPI()
	api.profile = domain.Profile{
		Name:         "Robin",
		Email:        "robin@example.test",
		CreatedAt:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Unix(),
		LastActiveAt: now.Add(-24 * time.Hour).Unix(),
	}
	api.progress = domain.Progress{CurrentStage: 3, TotalStages: 6, DaysActive: 40}
	api.contacts = []domain.ContactRecord{
		{ID: strPtr("p1"), Type: domain.ContactProvider, Name: "Dr. Lee"},
		{Type: domain.ContactEmergency, Name: "Sam"},
	}
	svc := NewProfileService(api).(*profileService)
	svc.now = func() time.Time { return now }

	o, err := svc.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Robin", o.Name)
	assert.Equal(t, 2024, o.MemberSince)
	assert.Equal(t, "Yesterday", o.LastActive)
	assert.Equal(t, "Young Plant", o.StageName)
	assert.Equal(t, 50, o.Percentage)
	require.Len(t, o.Contacts, 1)
	assert.Equal(t, "Sam", o.Contacts[0].Name)
	assert.Equal(t, domain.DefaultRelationship, o.Contacts[0].Relationship)
	assert.NotEmpty(t, o.Contacts[0].ID)
	assert.Empty(t, o.Degraded)
}

func TestProfileService_ReadFailuresFallBackToDefaults(t *testing.T) {
	api := newFakeAPI()
	api.profileErr = errors.New("boom")
	api.contactsErr = errors.New("boom")
	api.progressErr = errors.New("boom")
	obs := &recordingObserver{}

	o, err := NewProfileService(api, obs).Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, DefaultProfileName, o.Name)
	assert.Empty(t, o.Contacts)
	assert.Equal(t, 1, o.Stage)
	assert.Equal(t, "Seedling", o.StageName)
	assert.Equal(t, domain.DefaultTotalStages, o.TotalStages)
	assert.Zero(t, o.MemberSince)
	assert.ElementsMatch(t, []string{"profile", "contacts", "progress"}, o.Degraded)

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "profile-overview", obs.events[0].Name)
	assert.Contains(t, obs.events[0].Fields, "degraded")
}

func TestProfileService_CancelledContextFails(t *testing.T) {
	api := newFakeAPI()
	api.profileErr = context.Canceled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProfileService(api).Overview(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestProfileService_PercentageClamped(t *testing.T) {
	api := newFakeAPI()
	api.progress = domain.Progress{CurrentStage: 8, TotalStages: 6}

	o, err := NewProfileService(api).Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 100, o.Percentage)
	assert.Equal(t, "Seedling", o.StageName)
}
