package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEmergencyContacts_FiltersProviders(t *testing.T) {
	records := []ContactRecord{
		{ID: strPtr("p1"), Type: ContactProvider, Name: "Dr. Ortiz"},
		{ID: strPtr("e1"), Type: ContactEmergency, Name: "Sam", Relationship: strPtr("Sister")},
		{ID: strPtr("p2"), Type: ContactProvider, Name: "Clinic"},
	}

	got := EmergencyContacts(records)

	require.Len(t, got, 1)
	assert.Equal(t, Contact{ID: "e1", Name: "Sam", Relationship: "Sister"}, got[0])
}

func TestEmergencyContacts_NullIDGetsUniqueID(t *testing.T) {
	records := []ContactRecord{
		{Type: ContactEmergency, Name: "A"},
		{Type: ContactEmergency, Name: "B"},
	}

	first := EmergencyContacts(records)
	second := EmergencyContacts(records)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	ids := map[string]bool{}
	for _, c := range append(first, second...) {
		assert.NotEmpty(t, c.ID)
		ids[c.ID] = true
	}
	assert.Len(t, ids, 4, "generated IDs must be distinct within and across calls")
}

func TestEmergencyContacts_DefaultsRelationship(t *testing.T) {
	records := []ContactRecord{
		{ID: strPtr("e1"), Type: ContactEmergency, Name: "A"},
		{ID: strPtr("e2"), Type: ContactEmergency, Name: "B", Relationship: strPtr("")},
	}

	got := EmergencyContacts(records)

	require.Len(t, got, 2)
	assert.Equal(t, DefaultRelationship, got[0].Relationship)
	assert.Equal(t, DefaultRelationship, got[1].Relationship)
}

func TestEmergencyContacts_FormatsPhone(t *testing.T) {
	records := []ContactRecord{
		{ID: strPtr("e1"), Type: ContactEmergency, Name: "A",
			Phone: &PhoneNumber{InternationalPrefix: 44, Number: 7700900123}},
	}

	got := EmergencyContacts(records)

	require.Len(t, got, 1)
	assert.Equal(t, "+44 7700900123", got[0].Phone)
}

func TestEmergencyContacts_Empty(t *testing.T) {
	assert.Empty(t, EmergencyContacts(nil))
}
