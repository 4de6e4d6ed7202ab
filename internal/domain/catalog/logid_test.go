package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		wantPlayers int
		wantTonpu   bool
	}{
		{name: "4 players hanchan", code: "00a9", wantPlayers: 4, wantTonpu: false},
		{name: "4 players tonpu", code: "00e1", wantPlayers: 4, wantTonpu: true},
		{name: "3 players hanchan", code: "00b9", wantPlayers: 3, wantTonpu: false},
		{name: "3 players tonpu", code: "00f1", wantPlayers: 3, wantTonpu: true},
		{name: "yakuman list entry", code: "0001", wantPlayers: 4, wantTonpu: true},
		{name: "upper case hex", code: "00A9", wantPlayers: 4, wantTonpu: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players, tonpu, err := ParseType(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPlayers, players)
			assert.Equal(t, tt.wantTonpu, tonpu)
		})
	}
}

func TestParseType_AllCodes(t *testing.T) {
	for v := 0; v <= 0xffff; v += 7 {
		code := []byte("0000")
		const hex = "0123456789abcdef"
		for i := 3; i >= 0; i-- {
			code[i] = hex[(v>>(4*(3-i)))&0xf]
		}

		players, tonpu, err := ParseType(string(code))
		require.NoError(t, err)
		assert.Equal(t, v&0x010 != 0, players == 3, "code %s", code)
		assert.Equal(t, v&0x008 == 0, tonpu, "code %s", code)
	}
}

func TestParseType_Invalid(t *testing.T) {
	_, _, err := ParseType("zz")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestSplitID(t *testing.T) {
	stamp, code, err := SplitID("2009020100gm-00a9-0000-00000000")
	require.NoError(t, err)
	assert.Equal(t, "2009020100", stamp)
	assert.Equal(t, "00a9", code)

	_, _, err = SplitID("2009020100gm-00a9")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("00:05", "2024010100")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:05", date)

	_, err = ParseDate("0:05", "2024010100")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestParseHourDate(t *testing.T) {
	date, err := ParseHourDate("2009020123")
	require.NoError(t, err)
	assert.Equal(t, "2009-02-01 23", date)
}

func TestParseYakumanDate(t *testing.T) {
	date, err := ParseYakumanDate(2025, "01/31 23:57")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-31T23:57", date)

	_, err = ParseYakumanDate(2025, "2025/01/31")
	assert.ErrorIs(t, err, ErrFormat)
}
