package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Params{}.Normalize()
	require.Equal(t, 1, p.Page)
	require.Equal(t, DefaultLimit, p.Limit)
}

func TestNormalizeClampsLimit(t *testing.T) {
	p := Params{Page: 3, Limit: 500}.Normalize()
	require.Equal(t, 3, p.Page)
	require.Equal(t, MaxLimit, p.Limit)
}

func TestOffset(t *testing.T) {
	p := Params{Page: 4, Limit: 25}.Normalize()
	require.Equal(t, 75, p.Offset())
}

func TestBuildPageInfo(t *testing.T) {
	p := Params{Page: 2, Limit: 10}.Normalize()

	info := BuildPageInfo(35, p)
	require.Equal(t, int64(35), info.TotalCount)
	require.Equal(t, 2, info.Page)
	require.Equal(t, 10, info.Limit)
	require.Equal(t, 4, info.TotalPages)

	info = BuildPageInfo(30, p)
	require.Equal(t, 3, info.TotalPages)

	info = BuildPageInfo(0, p)
	require.Equal(t, 0, info.TotalPages)
}
