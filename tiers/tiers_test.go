package tiers_test

import (
	"testing"

	"github.com/mingusapp/go-token-service/tiers"
	"github.com/stretchr/testify/require"
)

func TestIndexOrdering(t *testing.T) {
	require.Equal(t, 0, tiers.Index(tiers.TierFree))
	require.Equal(t, 1, tiers.Index(tiers.TierBasic))
	require.Equal(t, 2, tiers.Index(tiers.TierPremium))
	require.Equal(t, 3, tiers.Index(tiers.TierEnterprise))
	require.Equal(t, -1, tiers.Index(tiers.Tier("platinum")))
	require.Equal(t, -1, tiers.Index(tiers.Tier("")))
}

func TestMeets(t *testing.T) {
	tests := []struct {
		name     string
		current  tiers.Tier
		minimum  tiers.Tier
		expected bool
	}{
		{"premium meets premium", tiers.TierPremium, tiers.TierPremium, true},
		{"enterprise meets premium", tiers.TierEnterprise, tiers.TierPremium, true},
		{"free fails premium", tiers.TierFree, tiers.TierPremium, false},
		{"basic fails premium", tiers.TierBasic, tiers.TierPremium, false},
		{"free meets free", tiers.TierFree, tiers.TierFree, true},
		{"enterprise meets free", tiers.TierEnterprise, tiers.TierFree, true},
		{"unknown tier fails premium", tiers.Tier("platinum"), tiers.TierPremium, false},
		{"unknown tier fails free", tiers.Tier("platinum"), tiers.TierFree, false},
		{"empty tier fails free", tiers.Tier(""), tiers.TierFree, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tiers.Meets(tc.current, tc.minimum))
		})
	}
}

func TestValid(t *testing.T) {
	require.True(t, tiers.Valid(tiers.TierFree))
	require.True(t, tiers.Valid(tiers.TierEnterprise))
	require.False(t, tiers.Valid(tiers.Tier("gold")))
}
