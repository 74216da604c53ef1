package sdc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name              string
		lifecycleState    string
		distributionState string
		want              Status
	}{
		{"checkout maps to draft", "NOT_CERTIFIED_CHECKOUT", "", StatusDraft},
		{"checkin maps to checked in", "NOT_CERTIFIED_CHECKIN", "", StatusCheckedIn},
		{"ready maps to submitted", "READY_FOR_CERTIFICATION", "", StatusSubmitted},
		{"in progress maps to under certification", "CERTIFICATION_IN_PROGRESS", "", StatusUnderCertification},
		{"certified without distribution", "CERTIFIED", "", StatusCertified},
		{"certified and distributed", "CERTIFIED", "DISTRIBUTED", StatusDistributed},
		{"certified with pending distribution", "CERTIFIED", "DISTRIBUTION_NOT_APPROVED", StatusCertified},
		{"onboarding vocabulary passes", "Certified", "", StatusCertified},
		{"empty means none", "", "", StatusNone},
		{"unknown passes through", "SOME_NEW_STATE", "", Status("SOME_NEW_STATE")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatus(tt.lifecycleState, tt.distributionState))
		})
	}
}

func TestCompareVersions(t *testing.T) {
	assert.Negative(t, compareVersions("1.0", "2.0"))
	assert.Positive(t, compareVersions("2.1", "2.0"))
	assert.Zero(t, compareVersions("1.0", "1.0"))
	assert.Positive(t, compareVersions("10.0", "9.0"))
	assert.Negative(t, compareVersions("1.0", "1.0.1"))
}

func TestFindLatest(t *testing.T) {
	entries := []catalogEntry{
		{Name: "svc", Version: "1.0", UUID: "a"},
		{Name: "other", Version: "5.0", UUID: "b"},
		{Name: "svc", Version: "2.0", UUID: "c"},
	}
	entry, found := findLatest(entries, "svc")
	assert.True(t, found)
	assert.Equal(t, "c", entry.UUID)

	_, found = findLatest(entries, "missing")
	assert.False(t, found)
}
