package words

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Pair
		want    Pair
		wantErr bool
	}{
		{"trims both sides", Pair{"  γάτα ", " кошка  "}, Pair{"γάτα", "кошка"}, false},
		{"empty term", Pair{"   ", "кошка"}, Pair{"", "кошка"}, true},
		{"empty translation", Pair{"γάτα", ""}, Pair{"γάτα", ""}, true},
		{"term at limit", Pair{strings.Repeat("α", MaxLen), "x"}, Pair{strings.Repeat("α", MaxLen), "x"}, false},
		{"term too long", Pair{strings.Repeat("α", MaxLen+1), "x"}, Pair{strings.Repeat("α", MaxLen+1), "x"}, true},
		{"translation too long", Pair{"x", strings.Repeat("я", MaxLen+1)}, Pair{"x", strings.Repeat("я", MaxLen+1)}, true},
		{"limit counts characters not bytes", Pair{strings.Repeat("ж", MaxLen) + "  ", "x"}, Pair{strings.Repeat("ж", MaxLen), "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyFoldsCase(t *testing.T) {
	assert.Equal(t, Key("Σπίτι"), Key("  σπίτι "))
	assert.Equal(t, "house", Key(" HOUSE"))
}

func TestSortByScoreBreaksTiesByID(t *testing.T) {
	ws := []Word{
		{ID: 3, Score: 1},
		{ID: 1, Score: 1},
		{ID: 2, Score: -4},
		{ID: 4, Score: 0},
	}
	SortByScore(ws)
	assert.Equal(t, []int64{2, 4, 1, 3}, IDs(ws))
}

func TestMatches(t *testing.T) {
	w := Word{Term: "Θάλασσα", Translation: "Море"}
	assert.True(t, w.Matches(""))
	assert.True(t, w.Matches("θάλ"))
	assert.True(t, w.Matches("мор"))
	assert.False(t, w.Matches("sea"))
}
