package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("hunter2")
	require.NoError(t, err)
	require.True(t, Verify("hunter2", hash))
	require.False(t, Verify("wrong", hash))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("hunter2")
	require.NoError(t, err)
	second, err := Hash("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	require.False(t, Verify("hunter2", "not-a-hash"))
	require.False(t, Verify("hunter2", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5"))
}
