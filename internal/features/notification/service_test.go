package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goil-app/notification-read-service/internal/features/user"
)

func TestIsPrimaryStoreID(t *testing.T) {
	cases := map[string]bool{
		"64a1b2c3d4e5f60718293a4b":            true,  // 24 hex chars
		"64A1B2C3D4E5F60718293A4B":            true,  // hex is case-insensitive
		"64a1b2c3d4e5f60718293a4":             false, // 23 chars
		"7b1e1c2e-1b4d-4f9b-9b3a-6a0a0a0a0a0a": false, // UUID
		"zzzzzzzzzzzzzzzzzzzzzzzz":             false, // 24 non-hex chars
		"":                                     false,
	}

	for id, want := range cases {
		require.Equal(t, want, isPrimaryStoreID(id), "id=%q", id)
	}
}

func TestBuildReachabilityParams_OldestCreationDate(t *testing.T) {
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	cohort := []user.SimplifiedUser{
		{ID: "u1", Phone: "p1", AccountType: "t1", CreationDate: newer},
		{ID: "u2", Phone: "p2", AccountType: "t2", CreationDate: older},
	}

	params := buildReachabilityParams(cohort, []string{"b1"})

	require.True(t, params.OldestCreationDate.Equal(older), "must take the minimum creation date across the cohort, not the first-seen one")
	require.ElementsMatch(t, []string{"u1", "u2"}, params.UserIDs)
	require.ElementsMatch(t, []string{"t1", "t2"}, params.AccountTypes)
	require.Len(t, params.HashedPhones, 2)
}

func TestBuildReachabilityParams_DedupesAndSkipsBlanks(t *testing.T) {
	when := time.Now().UTC()
	cohort := []user.SimplifiedUser{
		{ID: "u1", Phone: "p1", AccountType: "t1", CreationDate: when},
		{ID: "u1", Phone: "p1", AccountType: "t1", CreationDate: when},
		{ID: "", Phone: "", AccountType: "", CreationDate: when},
	}

	params := buildReachabilityParams(cohort, []string{"b1"})

	require.Equal(t, []string{"u1"}, params.UserIDs)
	require.Equal(t, []string{"t1"}, params.AccountTypes)
	require.Len(t, params.HashedPhones, 1)
}

func TestLocalize(t *testing.T) {
	table := []I18nText{
		{Lang: "en", Text: "Hello"},
		{Lang: "fr", Text: "Bonjour"},
	}

	require.Equal(t, "Hello", localize(table, "en", "fallback"))
	require.Equal(t, "fallback", localize(table, "de", "fallback"))
	require.Equal(t, "fallback", localize(nil, "en", "fallback"))
}
