package borrowing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"libraryservice/model"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)
	for _, in := range []string{
		"2026-07-01T09:30:00Z",
		"2026-07-01T11:30:00+02:00",
		"2026-07-01T09:30:00",
		"2026-07-01 09:30:00",
		"2026-07-01T09:30",
	} {
		got, err := parseTimestamp(in)
		require.NoError(t, err, in)
		require.True(t, want.Equal(got), in)
		require.Equal(t, time.UTC, got.Location())
	}

	got, err := parseTimestamp("2026-07-01T09:30:00.123456")
	require.NoError(t, err)
	require.Equal(t, 123456000, got.Nanosecond())

	got, err = parseTimestamp("2026-07-01")
	require.NoError(t, err)
	require.True(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC).Equal(got))

	_, err = parseTimestamp("next tuesday")
	require.EqualError(t, err, badTimestamp)
}

func TestListRespHidesUserForNonStaff(t *testing.T) {
	rows := []model.BorrowingListItem{{Borrowing: model.Borrowing{ID: 1, UserID: 5}, BookTitle: "Kindred"}}

	out := toListResp(rows, false)
	require.Equal(t, "Kindred", out[0].Book)
	require.Nil(t, out[0].UserID)

	out = toListResp(rows, true)
	require.Equal(t, int64(5), *out[0].UserID)

	require.NotNil(t, toListResp(nil, false))
}
