package token

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/utilitech/utilicore/internal/config"
)

func TestIssueAndParse(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	issuer := NewIssuer(config.Config{AuthJWTSecret: "test-secret"})

	userID := node.Generate()
	raw, err := issuer.Issue(userID)
	require.NoError(t, err)

	parsed, err := issuer.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, userID, parsed)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	issuer := NewIssuer(config.Config{AuthJWTSecret: "test-secret"})
	other := NewIssuer(config.Config{AuthJWTSecret: "other-secret"})

	raw, err := issuer.Issue(node.Generate())
	require.NoError(t, err)

	_, err = other.Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	issuer := NewIssuer(config.Config{AuthJWTSecret: "test-secret"})

	_, err := issuer.Parse("")
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = issuer.Parse("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
