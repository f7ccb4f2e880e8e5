package binding_test

import (
	"testing"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/hidkeys"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/binding"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/macro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entryData extracts the 4 byte binding entry from a write report.
func entryData(r venus.Report) []byte {
	return r.Payload()[4:8]
}

func TestBindingEntries(t *testing.T) {
	type testCase struct {
		name     string
		action   func() (binding.Action, error)
		expected []byte
	}

	testCases := []testCase{
		{
			name:     "mouse forward",
			action:   func() (binding.Action, error) { return binding.MouseButton(binding.MouseForward) },
			expected: []byte{0x01, 0x10, 0x00, 0x44},
		},
		{
			name:     "mouse back",
			action:   func() (binding.Action, error) { return binding.MouseButton(binding.MouseBack) },
			expected: []byte{0x01, 0x08, 0x00, 0x4C},
		},
		{
			name:     "macro slot 0 once",
			action:   func() (binding.Action, error) { return binding.RunMacro(0, macro.RepeatOnce) },
			expected: []byte{0x06, 0x00, 0x01, 0x4E},
		},
		{
			name:     "macro slot 5 hold",
			action:   func() (binding.Action, error) { return binding.RunMacro(5, macro.RepeatHold) },
			expected: []byte{0x06, 0x05, 0xFE, 0x4C},
		},
		{
			name:     "disabled",
			action:   func() (binding.Action, error) { return binding.Disabled(), nil },
			expected: []byte{0x00, 0x00, 0x00, 0x55},
		},
		{
			name:     "shift a stores the modifier",
			action:   func() (binding.Action, error) { return binding.KeyboardKey(hidkeys.KeyA, hidkeys.ModShift) },
			expected: []byte{0x05, 0x02, 0x00, 0x4E},
		},
		{
			name:     "burst 50ms x3",
			action:   func() (binding.Action, error) { return binding.Special(50, 3) },
			expected: []byte{0x04, 0x32, 0x03, 0x1C},
		},
		{
			name:     "polling toggle",
			action:   func() (binding.Action, error) { return binding.PollingToggle(), nil },
			expected: []byte{0x07, 0x00, 0x00, 0x4E},
		},
		{
			name:     "rgb toggle",
			action:   func() (binding.Action, error) { return binding.RGBToggle(), nil },
			expected: []byte{0x08, 0x00, 0x00, 0x4D},
		},
		{
			name:     "dpi loop",
			action:   func() (binding.Action, error) { return binding.DPIControl(binding.DPILoop) },
			expected: []byte{0x02, 0x02, 0x00, 0x51},
		},
		{
			name:     "media key",
			action:   func() (binding.Action, error) { return binding.MediaKey(hidkeys.MediaPlayPause) },
			expected: []byte{0x05, 0x00, 0x00, 0x50},
		},
	}

	b := &binding.Builder{}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			action, err := tc.action()
			require.NoError(t, err)
			reports, err := b.BuildPackets(venus.Button1, action)
			require.NoError(t, err)
			require.NotEmpty(t, reports)
			// The binding entry is the last write of each profile page.
			last := reports[len(reports)-1]
			assert.Equal(t, tc.expected, entryData(last))
		})
	}
}

func TestBuildPacketsReplicatesProfiles(t *testing.T) {
	b := &binding.Builder{}
	action, err := binding.MouseButton(binding.MouseForward)
	require.NoError(t, err)

	reports, err := b.BuildPackets(venus.Button1, action)
	require.NoError(t, err)
	require.Len(t, reports, 4)

	for i, pageBase := range venus.ProfilePages {
		payload := reports[i].Payload()
		assert.Equal(t, pageBase, payload[1], "profile %d page", i)
		assert.Equal(t, byte(0x60), payload[2], "profile %d offset", i)
		assert.Equal(t, byte(0x04), payload[3], "profile %d length", i)
		assert.Equal(t, []byte{0x01, 0x10, 0x00, 0x44}, entryData(reports[i]))
	}
}

func TestBuildPacketsModifiedKeyStream(t *testing.T) {
	b := &binding.Builder{}
	action, err := binding.KeyboardKey(hidkeys.KeyA, hidkeys.ModShift)
	require.NoError(t, err)

	reports, err := b.BuildPackets(venus.Button1, action)
	require.NoError(t, err)
	// Two stream chunks and one entry write per profile page.
	require.Len(t, reports, 12)

	assert.Equal(t, venus.Report{
		0x08, 0x07, 0x00, 0x01, 0x00, 0x0A, 0x04, 0x80,
		0x02, 0x00, 0x81, 0x04, 0x00, 0x40, 0x02, 0x00,
		0xEE,
	}, reports[0])
	assert.Equal(t, venus.Report{
		0x08, 0x07, 0x00, 0x01, 0x0A, 0x04, 0x41, 0x04,
		0x00, 0xC3, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x2F,
	}, reports[1])

	// Entry follows its page's stream so it never points at stale key data.
	entry := reports[2]
	assert.Equal(t, byte(0x00), entry.Payload()[1])
	assert.Equal(t, byte(0x60), entry.Payload()[2])
	assert.Equal(t, []byte{0x05, 0x02, 0x00, 0x4E}, entryData(entry))

	// Second profile shifts both regions by the page base.
	assert.Equal(t, byte(0x41), reports[3].Payload()[1])
	assert.Equal(t, byte(0x40), reports[5].Payload()[1])
}

func TestBuildPacketsPlainKeyStream(t *testing.T) {
	b := &binding.Builder{}
	action, err := binding.KeyboardKey(hidkeys.KeyB, 0)
	require.NoError(t, err)

	reports, err := b.BuildPackets(venus.Button2, action)
	require.NoError(t, err)
	// One 8 byte stream chunk and one entry write per profile page.
	require.Len(t, reports, 8)

	stream := reports[0].Payload()
	assert.Equal(t, byte(0x01), stream[1])
	assert.Equal(t, byte(0x20), stream[2])
	assert.Equal(t, byte(0x08), stream[3])
	assert.Equal(t, []byte{0x02, 0x81, 0x05, 0x00, 0x41, 0x05, 0x00, 0x87}, stream[4:12])

	assert.Equal(t, []byte{0x05, 0x00, 0x00, 0x50}, entryData(reports[1]))
}

func TestBuildPacketsMediaStream(t *testing.T) {
	b := &binding.Builder{}
	action, err := binding.MediaKey(hidkeys.MediaVolumeUp)
	require.NoError(t, err)

	reports, err := b.BuildPackets(venus.Button1, action)
	require.NoError(t, err)
	require.Len(t, reports, 8)

	// Consumer-page statuses with a literal zero tail instead of a guard.
	stream := reports[0].Payload()
	assert.Equal(t, []byte{0x02, 0x82, 0xE9, 0x00, 0x42, 0xE9, 0x00, 0x00}, stream[4:12])
}

func TestBuildPacketsDPIKeys(t *testing.T) {
	type testCase struct {
		name     string
		fn       binding.DPIFunction
		key      byte
		expected []byte
	}

	// The firmware recognises the DPI functions by these usage codes in
	// the key region.
	testCases := []testCase{
		{name: "loop", fn: binding.DPILoop, key: 0x23, expected: []byte{0x02, 0x02, 0x00, 0x51}},
		{name: "up", fn: binding.DPIUp, key: 0x24, expected: []byte{0x02, 0x03, 0x00, 0x50}},
		{name: "down", fn: binding.DPIDown, key: 0x25, expected: []byte{0x02, 0x01, 0x00, 0x52}},
	}

	b := &binding.Builder{}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			action, err := binding.DPIControl(tc.fn)
			require.NoError(t, err)
			reports, err := b.BuildPackets(venus.Button1, action)
			require.NoError(t, err)
			require.Len(t, reports, 8)

			stream := reports[0].Payload()
			assert.Equal(t, tc.key, stream[6])
			assert.Equal(t, tc.expected, entryData(reports[1]))
		})
	}
}

func TestBuildPacketsCustomProfile(t *testing.T) {
	b := &binding.Builder{
		Custom: map[venus.ButtonKey]venus.ButtonProfile{
			venus.Button1: {Label: "Side Button 1", KeyPage: 0x02, KeyOffset: 0x10, ApplyOffset: 0xA0},
		},
	}
	action, err := binding.KeyboardKey(hidkeys.KeyB, 0)
	require.NoError(t, err)

	reports, err := b.BuildPackets(venus.Button1, action)
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), reports[0].Payload()[1])
	assert.Equal(t, byte(0x10), reports[0].Payload()[2])
	assert.Equal(t, byte(0xA0), reports[1].Payload()[2])
}

func TestBuildPacketsUnknownButton(t *testing.T) {
	b := &binding.Builder{}
	_, err := b.BuildPackets(venus.ButtonKey(99), binding.Disabled())
	assert.ErrorIs(t, err, binding.ErrUnresolvedProfile)
}

func TestDecodeEntry(t *testing.T) {
	type testCase struct {
		name     string
		entry    []byte
		stream   []byte
		expected binding.Action
	}

	testCases := []testCase{
		{
			name:     "mouse forward",
			entry:    []byte{0x01, 0x10, 0x00, 0x44},
			expected: binding.Action{Kind: binding.KindMouseButton, Mouse: binding.MouseForward},
		},
		{
			name:     "disabled",
			entry:    []byte{0x00, 0x00, 0x00, 0x55},
			expected: binding.Disabled(),
		},
		{
			name:     "dpi loop without stream",
			entry:    []byte{0x02, 0x02, 0x00, 0x51},
			expected: binding.Action{Kind: binding.KindDPIControl, DPI: binding.DPILoop},
		},
		{
			name:     "burst",
			entry:    []byte{0x04, 0x32, 0x03, 0x1C},
			expected: binding.Action{Kind: binding.KindSpecial, DelayMS: 50, Count: 3},
		},
		{
			name:     "macro slot 5 hold",
			entry:    []byte{0x06, 0x05, 0xFE, 0x4C},
			expected: binding.Action{Kind: binding.KindMacro, Slot: 5, Repeat: macro.RepeatHold},
		},
		{
			name:     "polling toggle",
			entry:    []byte{0x07, 0x00, 0x00, 0x4E},
			expected: binding.PollingToggle(),
		},
		{
			name:     "plain key from stream",
			entry:    []byte{0x05, 0x00, 0x00, 0x50},
			stream:   []byte{0x02, 0x81, 0x05, 0x00, 0x41, 0x05, 0x00, 0x87},
			expected: binding.Action{Kind: binding.KindKeyboardKey, Key: hidkeys.KeyB},
		},
		{
			name:     "modified key from stream",
			entry:    []byte{0x05, 0x02, 0x00, 0x4E},
			stream:   []byte{0x04, 0x80, 0x02, 0x00, 0x81, 0x04, 0x00, 0x40, 0x02, 0x00, 0x41, 0x04, 0x00, 0xC3},
			expected: binding.Action{Kind: binding.KindKeyboardKey, Key: hidkeys.KeyA, Modifier: hidkeys.ModShift},
		},
		{
			name:     "media key from stream",
			entry:    []byte{0x05, 0x00, 0x00, 0x50},
			stream:   []byte{0x02, 0x82, 0xCD, 0x00, 0x42, 0xCD, 0x00, 0x00},
			expected: binding.Action{Kind: binding.KindMediaKey, Media: hidkeys.MediaPlayPause},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := binding.DecodeEntry(tc.entry, tc.stream)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDecodeEntryErrors(t *testing.T) {
	_, err := binding.DecodeEntry([]byte{0x01}, nil)
	assert.ErrorIs(t, err, binding.ErrInvalidAction)

	_, err = binding.DecodeEntry([]byte{0x0A, 0x00, 0x00, 0x4B}, nil)
	assert.ErrorIs(t, err, binding.ErrUnknownAction)

	_, err = binding.DecodeEntry([]byte{0x05, 0x00, 0x00, 0x50}, nil)
	assert.ErrorIs(t, err, binding.ErrInvalidAction)

	_, err = binding.DecodeEntry([]byte{0x05, 0x02, 0x00, 0x4E}, []byte{0x04, 0x80, 0x02})
	assert.ErrorIs(t, err, binding.ErrInvalidAction)
}

func TestBuildDecodeRoundTrip(t *testing.T) {
	b := &binding.Builder{}
	actions := []binding.Action{
		mustAction(binding.MouseButton(binding.MouseMiddle)),
		mustAction(binding.KeyboardKey(hidkeys.KeyF5, 0)),
		mustAction(binding.KeyboardKey(hidkeys.KeyC, hidkeys.ModCtrl|hidkeys.ModAlt)),
		mustAction(binding.MediaKey(hidkeys.MediaMute)),
		mustAction(binding.RunMacro(3, macro.RepeatToggle)),
		mustAction(binding.Special(10, 2)),
		mustAction(binding.DPIControl(binding.DPIUp)),
		binding.Disabled(),
		binding.PollingToggle(),
		binding.RGBToggle(),
	}

	for _, action := range actions {
		t.Run(action.String(), func(t *testing.T) {
			reports, err := b.BuildPackets(venus.Button4, action)
			require.NoError(t, err)

			// Reassemble the page 0 key stream from the write payloads and
			// decode the page 0 entry against it.
			var stream []byte
			var entry []byte
			for _, r := range reports {
				payload := r.Payload()
				if payload[1] == 0x00 && payload[2] == 0x6C {
					entry = payload[4:8]
					break
				}
				stream = append(stream, payload[4:4+payload[3]]...)
			}
			require.NotNil(t, entry)

			got, err := binding.DecodeEntry(entry, stream)
			require.NoError(t, err)
			assert.Equal(t, action, got)
		})
	}
}

func mustAction(a binding.Action, err error) binding.Action {
	if err != nil {
		panic(err)
	}
	return a
}
