package bountypager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_CursorPager_WithMethods(t *testing.T) {
	p := (*CursorPager)(nil)
	p = p.WithLimit(5).WithCursor(NewIndexCursor(7))
	require.Equal(t, 5, p.GetLimit())
	require.Equal(t, 7, p.GetCursor().GetIndex(-1))
	require.False(t, p.IsUnlimited())

	p = p.WithUnlimited()
	require.True(t, p.IsUnlimited())
	require.Equal(t, NoLimit, p.GetLimit())

	var nilPager *CursorPager
	require.Equal(t, DefaultLimit, nilPager.GetLimit())
	require.Nil(t, nilPager.GetCursor())
	require.False(t, nilPager.IsUnlimited())
}

func Test_DecodeCursorPager(t *testing.T) {
	tests := []struct {
		name          string
		raw           RawCursorPager
		expectedLimit int
		expectedIndex int
		expectError   bool
	}{
		{"defaults", RawCursorPager{}, DefaultLimit, -100, false},
		{"clamped", RawCursorPager{Limit: 1000, StartToken: NewIndexCursor(3).String()}, MaxLimit, 3, false},
		{"unlimited is not reachable from the api", RawCursorPager{Limit: NoLimit}, DefaultLimit, -100, false},
		{"broken token", RawCursorPager{Limit: 5, StartToken: "!"}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.raw.Decode()
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expectedLimit, p.GetLimit())
			require.Equal(t, tt.expectedIndex, p.GetCursor().GetIndex(-100))
		})
	}
}

func Test_CursorPager_Next(t *testing.T) {
	p := NewCursorPager().WithLimit(3)

	require.Nil(t, p.Next(nil))
	require.Nil(t, p.Next(newPaginationResult(nil, 3, -1)))

	next := p.Next(newPaginationResult(nil, 3, 9))
	require.NotNil(t, next)
	require.Equal(t, 3, next.GetLimit())
	require.Equal(t, 9, next.GetCursor().GetIndex(-1))
}

func Test_CursorPager_validate(t *testing.T) {
	tests := []struct {
		name    string
		pager   *CursorPager
		wantErr bool
	}{
		{"default", NewCursorPager(), false},
		{"unlimited", NewCursorPager().WithUnlimited(), false},
		{"zero", NewCursorPager().WithLimit(0), false},
		{"negative", NewCursorPager().WithLimit(-2), true},
		{"cursor out of range", NewCursorPager().WithCursor(NewIndexCursor(10)), true},
		{"nil pager", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if gotErr := tt.pager.validate(9); (gotErr != nil) != tt.wantErr {
				t.Errorf("%s: got error = %v, want error = %v", tt.name, gotErr, tt.wantErr)
			}
		})
	}
}
