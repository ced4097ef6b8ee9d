package cryptox_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zamanihq/dashboard/pkg/cryptox"
)

func TestFingerprintToken(t *testing.T) {
	a := cryptox.FingerprintToken("alice-token")
	require.Len(t, a, 43)
	require.Equal(t, a, cryptox.FingerprintToken("alice-token"))
	require.NotEqual(t, a, cryptox.FingerprintToken("bob-token"))
	require.NotContains(t, a, "alice")
}

func TestShortFingerprint(t *testing.T) {
	full := cryptox.FingerprintToken("tok")

	require.Equal(t, full[:16], cryptox.ShortFingerprint("tok", 16))
	require.Equal(t, full, cryptox.ShortFingerprint("tok", 0))
	require.Equal(t, full, cryptox.ShortFingerprint("tok", 100))
}
