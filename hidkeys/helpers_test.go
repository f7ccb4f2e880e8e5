package hidkeys_test

import (
	"testing"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/hidkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		expected uint8
		wantErr  bool
	}

	testCases := []testCase{
		{name: "function key", input: "F4", expected: hidkeys.KeyF4},
		{name: "case and separators", input: "page-up", expected: hidkeys.KeyPageUp},
		{name: "single character", input: "a", expected: hidkeys.KeyA},
		{name: "alias", input: "esc", expected: hidkeys.KeyEscape},
		{name: "raw usage code", input: "0x68", expected: 0x68},
		{name: "zero usage code", input: "0x00", wantErr: true},
		{name: "unknown", input: "bogus", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := hidkeys.ParseKey(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, hidkeys.ErrUnknownKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseCombo(t *testing.T) {
	type testCase struct {
		name         string
		input        string
		expectedKey  uint8
		expectedMods uint8
		expectedErr  error
	}

	testCases := []testCase{
		{name: "bare key", input: "f4", expectedKey: hidkeys.KeyF4},
		{name: "two modifiers", input: "ctrl+shift+a", expectedKey: hidkeys.KeyA, expectedMods: hidkeys.ModCtrl | hidkeys.ModShift},
		{name: "win alias", input: "super+l", expectedKey: hidkeys.KeyL, expectedMods: hidkeys.ModWin},
		{name: "uppercase implies shift", input: "A", expectedKey: hidkeys.KeyA, expectedMods: hidkeys.ModShift},
		{name: "shifted symbol implies shift", input: "!", expectedKey: hidkeys.Key1, expectedMods: hidkeys.ModShift},
		{name: "explicit shift not doubled", input: "shift+1", expectedKey: hidkeys.Key1, expectedMods: hidkeys.ModShift},
		{name: "unknown modifier", input: "hyper+a", expectedErr: hidkeys.ErrUnknownModifier},
		{name: "unknown key", input: "ctrl+bogus", expectedErr: hidkeys.ErrUnknownKey},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, mods, err := hidkeys.ParseCombo(tc.input)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedKey, key)
			assert.Equal(t, tc.expectedMods, mods)
		})
	}
}

func TestFormatCombo(t *testing.T) {
	assert.Equal(t, "a", hidkeys.FormatCombo(hidkeys.KeyA, 0))
	assert.Equal(t, "ctrl+shift+a", hidkeys.FormatCombo(hidkeys.KeyA, hidkeys.ModCtrl|hidkeys.ModShift))
	assert.Equal(t, "win+pageup", hidkeys.FormatCombo(hidkeys.KeyPageUp, hidkeys.ModWin))
	assert.Equal(t, "0x68", hidkeys.FormatCombo(0x68, 0))
}

func TestComboRoundTrip(t *testing.T) {
	combos := []struct {
		key  uint8
		mods uint8
	}{
		{hidkeys.KeyA, 0},
		{hidkeys.KeyF12, hidkeys.ModCtrl},
		{hidkeys.KeyEnter, hidkeys.ModCtrl | hidkeys.ModAlt},
		{hidkeys.KeySpace, hidkeys.ModWin},
		{0x68, hidkeys.ModShift},
	}

	for _, c := range combos {
		spec := hidkeys.FormatCombo(c.key, c.mods)
		key, mods, err := hidkeys.ParseCombo(spec)
		require.NoError(t, err, spec)
		assert.Equal(t, c.key, key, spec)
		assert.Equal(t, c.mods, mods, spec)
	}
}

func TestParseMediaKey(t *testing.T) {
	code, err := hidkeys.ParseMediaKey("play-pause")
	require.NoError(t, err)
	assert.Equal(t, uint8(hidkeys.MediaPlayPause), code)

	code, err = hidkeys.ParseMediaKey("VolumeUp")
	require.NoError(t, err)
	assert.Equal(t, uint8(hidkeys.MediaVolumeUp), code)

	_, err = hidkeys.ParseMediaKey("rewind")
	assert.ErrorIs(t, err, hidkeys.ErrUnknownMediaKey)
}

func TestModifierNames(t *testing.T) {
	assert.Nil(t, hidkeys.ModifierNames(0))
	assert.Equal(t, []string{"ctrl", "shift", "alt", "win"},
		hidkeys.ModifierNames(hidkeys.ModCtrl|hidkeys.ModShift|hidkeys.ModAlt|hidkeys.ModWin))
	assert.Equal(t, []string{"shift"}, hidkeys.ModifierNames(hidkeys.ModShift))
}

func TestCharToHID(t *testing.T) {
	assert.Equal(t, uint8(hidkeys.KeyA), hidkeys.CharToHID('a'))
	assert.Equal(t, uint8(hidkeys.KeyA), hidkeys.CharToHID('A'))
	assert.Equal(t, uint8(hidkeys.Key1), hidkeys.CharToHID('!'))
	assert.Equal(t, uint8(hidkeys.KeySpace), hidkeys.CharToHID(' '))
	assert.Equal(t, uint8(0), hidkeys.CharToHID(0x01))
}

func TestNeedsShift(t *testing.T) {
	assert.True(t, hidkeys.NeedsShift('A'))
	assert.True(t, hidkeys.NeedsShift('!'))
	assert.False(t, hidkeys.NeedsShift('a'))
	assert.False(t, hidkeys.NeedsShift('1'))
}
