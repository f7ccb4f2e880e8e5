package venus_test

import (
	"testing"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/stretchr/testify/assert"
)

func TestAddressAdvance(t *testing.T) {
	type testCase struct {
		name        string
		start       venus.Address
		n           int
		expected    venus.Address
		expectedErr error
	}

	testCases := []testCase{
		{
			name:     "within page",
			start:    venus.Address{Page: 0x01, Offset: 0x20},
			n:        0x0A,
			expected: venus.Address{Page: 0x01, Offset: 0x2A},
		},
		{
			name:     "carry into next page",
			start:    venus.Address{Page: 0x03, Offset: 0xF8},
			n:        0x10,
			expected: venus.Address{Page: 0x04, Offset: 0x08},
		},
		{
			name:     "carry across several pages",
			start:    venus.Address{Page: 0x00, Offset: 0x00},
			n:        0x0480,
			expected: venus.Address{Page: 0x04, Offset: 0x80},
		},
		{
			name:     "zero advance",
			start:    venus.Address{Page: 0x40, Offset: 0x60},
			n:        0,
			expected: venus.Address{Page: 0x40, Offset: 0x60},
		},
		{
			name:        "past end of flash",
			start:       venus.Address{Page: 0xFF, Offset: 0xFF},
			n:           1,
			expectedErr: venus.ErrAddressOverflow,
		},
		{
			name:        "before start of flash",
			start:       venus.Address{Page: 0x00, Offset: 0x00},
			n:           -1,
			expectedErr: venus.ErrAddressOverflow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.start.Advance(tc.n)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMacroSlotAddress(t *testing.T) {
	type testCase struct {
		name        string
		slot        int
		expected    venus.Address
		expectedErr error
	}

	testCases := []testCase{
		{
			name:     "slot 0",
			slot:     0,
			expected: venus.Address{Page: 0x03, Offset: 0x00},
		},
		{
			name:     "slot 1",
			slot:     1,
			expected: venus.Address{Page: 0x04, Offset: 0x80},
		},
		{
			name:     "slot 2",
			slot:     2,
			expected: venus.Address{Page: 0x06, Offset: 0x00},
		},
		{
			name:     "last slot",
			slot:     venus.MaxMacroSlots - 1,
			expected: venus.Address{Page: 0x13, Offset: 0x80},
		},
		{
			name:        "negative slot",
			slot:        -1,
			expectedErr: venus.ErrSlotOutOfRange,
		},
		{
			name:        "slot past end",
			slot:        venus.MaxMacroSlots,
			expectedErr: venus.ErrSlotOutOfRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := venus.MacroSlotAddress(tc.slot)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestButtonBindingAddress(t *testing.T) {
	// Binding entries live in the page-0 table, shifted by the profile's
	// page base; the key regions shift with them.
	addr, err := venus.ButtonBindingAddress(venus.Button1, 0)
	assert.NoError(t, err)
	assert.Equal(t, venus.Address{Page: 0x00, Offset: 0x60}, addr)

	addr, err = venus.ButtonBindingAddress(venus.Button1, 2)
	assert.NoError(t, err)
	assert.Equal(t, venus.Address{Page: 0x80, Offset: 0x60}, addr)

	addr, err = venus.ButtonBindingAddress(venus.ButtonFire, 0)
	assert.NoError(t, err)
	assert.Equal(t, venus.Address{Page: 0x00, Offset: 0x8C}, addr)

	_, err = venus.ButtonBindingAddress(venus.Button1, 4)
	assert.ErrorIs(t, err, venus.ErrProfileOutOfRange)

	_, err = venus.ButtonBindingAddress(venus.ButtonKey(99), 0)
	assert.ErrorIs(t, err, venus.ErrUnknownButton)
}

func TestButtonProfileRegions(t *testing.T) {
	prof, ok := venus.Profile(venus.Button7)
	assert.True(t, ok)
	assert.Equal(t, venus.Address{Page: 0x02, Offset: 0x00}, prof.KeyRegion(0x00))
	assert.Equal(t, venus.Address{Page: 0x42, Offset: 0x00}, prof.KeyRegion(0x40))
	assert.Equal(t, venus.Address{Page: 0xC0, Offset: 0x80}, prof.BindingEntry(0xC0))
}

func TestParseButton(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		expected venus.ButtonKey
		wantErr  bool
	}

	testCases := []testCase{
		{name: "plain number", input: "3", expected: venus.Button3},
		{name: "button prefix", input: "button12", expected: venus.Button12},
		{name: "short prefix", input: "b7", expected: venus.Button7},
		{name: "fire", input: "fire", expected: venus.ButtonFire},
		{name: "fire by index", input: "button13", expected: venus.ButtonFire},
		{name: "left click", input: "Left", expected: venus.ButtonLeft},
		{name: "label form rejected", input: "side-button_4", wantErr: true},
		{name: "middle", input: "middle", expected: venus.ButtonMiddle},
		{name: "right", input: "right-click", expected: venus.ButtonRight},
		{name: "zero", input: "button0", wantErr: true},
		{name: "past range", input: "button17", wantErr: true},
		{name: "garbage", input: "pinky", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := venus.ParseButton(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, venus.ErrUnknownButton)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestButtonNamesRoundTrip(t *testing.T) {
	for _, b := range venus.Buttons() {
		parsed, err := venus.ParseButton(b.String())
		assert.NoError(t, err, "button %v", b)
		assert.Equal(t, b, parsed)
	}
}
