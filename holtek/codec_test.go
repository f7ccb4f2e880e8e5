package holtek_test

import (
	"testing"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/hidkeys"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/holtek"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtrlFrames(t *testing.T) {
	type testCase struct {
		name  string
		frame []byte
		b2    byte
		b3    byte
	}

	testCases := []testCase{
		{name: "enter write", frame: holtek.CtrlEnterWrite(), b2: 0x02, b3: 0x01},
		{name: "commit", frame: holtek.CtrlCommit(), b2: 0x02, b3: 0x02},
		{name: "exit write", frame: holtek.CtrlExitWrite(), b2: 0x02, b3: 0x10},
		{name: "post commit 1", frame: holtek.CtrlPostCommit1(), b2: 0x00, b3: 0x04},
		{name: "post commit 2", frame: holtek.CtrlPostCommit2(), b2: 0x00, b3: 0x01},
		{name: "reset", frame: holtek.CtrlReset(), b2: 0x00, b3: 0x00},
		{name: "flash ack", frame: holtek.CtrlFlashAck(), b2: 0x00, b3: 0x08},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Len(t, tc.frame, holtek.ShortLen)
			assert.Equal(t, byte(holtek.RIDShort), tc.frame[0])
			assert.Equal(t, byte(holtek.CmdWriteCtrl), tc.frame[1])
			assert.Equal(t, tc.b2, tc.frame[2])
			assert.Equal(t, tc.b3, tc.frame[3])
		})
	}
}

func TestCommitFrames(t *testing.T) {
	frames := holtek.CommitFrames()
	require.Len(t, frames, 5)
	assert.Equal(t, holtek.CtrlExitWrite(), frames[0])
	assert.Equal(t, holtek.CtrlPostCommit1(), frames[1])
	assert.Equal(t, holtek.CtrlPostCommit2(), frames[2])
	assert.Equal(t, holtek.CtrlReset(), frames[3])
	assert.Equal(t, holtek.CtrlFlashAck(), frames[4])
}

func TestBuildRead(t *testing.T) {
	f := holtek.BuildRead(0x0080, 8)
	require.Len(t, f, holtek.ShortLen)
	assert.Equal(t, []byte{0x02, 0xF2, 0x80, 0x00, 0x08}, f[:5])
}

func TestBuildWrite(t *testing.T) {
	// Small writes fit the short report.
	f, err := holtek.BuildWrite(0x0082, []byte{0x81, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	require.Len(t, f, holtek.ShortLen)
	assert.Equal(t, []byte{0x02, 0xF3, 0x82, 0x00, 0x81, 0x00, 0x00, 0x00}, f[:8])

	// Larger writes move to the long report.
	f, err = holtek.BuildWrite(0x0020, make([]byte, 16))
	require.NoError(t, err)
	require.Len(t, f, holtek.LongLen)
	assert.Equal(t, byte(holtek.RIDLong), f[0])
	assert.Equal(t, byte(0xF3), f[1])

	_, err = holtek.BuildWrite(0x0000, make([]byte, 61))
	assert.ErrorIs(t, err, holtek.ErrDataTooLong)
}

func TestBuildPolling(t *testing.T) {
	type testCase struct {
		rate int
		code byte
	}

	testCases := []testCase{
		{rate: 125, code: 0x08},
		{rate: 250, code: 0x04},
		{rate: 500, code: 0x02},
		{rate: 1000, code: 0x01},
	}

	for _, tc := range testCases {
		f, err := holtek.BuildPolling(tc.rate)
		require.NoError(t, err)
		assert.Equal(t, byte(holtek.CmdPolling), f[1])
		assert.Equal(t, tc.code, f[2], "rate %d", tc.rate)
	}

	_, err := holtek.BuildPolling(2000)
	assert.ErrorIs(t, err, holtek.ErrUnknownRate)
}

func TestPollingRateFromCode(t *testing.T) {
	rate, ok := holtek.PollingRateFromCode(0x04)
	assert.True(t, ok)
	assert.Equal(t, 250, rate)

	_, ok = holtek.PollingRateFromCode(0xAA)
	assert.False(t, ok)
}

func TestBuildLED(t *testing.T) {
	f, err := holtek.BuildLED(0xFF, 0x40, 0x00, 0x01, 80)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0xF3, 0x00, 0x00, 0xFF, 0x40, 0x00, 0x01, 0x50}, f[:9])
}

func TestParseReadResponse(t *testing.T) {
	resp := append([]byte{0x02, 0x08, 0x80, 0x00, 0x08, 0x00, 0xFA, 0xFA}, 1, 2, 3, 4, 5, 6, 7, 8)
	data, err := holtek.ParseReadResponse(resp, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, data)

	_, err = holtek.ParseReadResponse(resp, 9)
	assert.ErrorIs(t, err, holtek.ErrShortResponse)
}

func TestParseButtonMap(t *testing.T) {
	data := []byte{20, 0x00}
	def := holtek.DefaultButtonMap()
	for _, e := range def {
		data = append(data, e.Type, 0x00, e.Code, 0x00)
	}

	m, err := holtek.ParseButtonMap(data)
	require.NoError(t, err)
	assert.Equal(t, def, m)

	_, err = holtek.ParseButtonMap([]byte{0x05})
	assert.ErrorIs(t, err, holtek.ErrShortResponse)

	_, err = holtek.ParseButtonMap([]byte{20, 0x00, 0x81, 0x00})
	assert.ErrorIs(t, err, holtek.ErrShortResponse)
}

func TestWritePackets(t *testing.T) {
	m := holtek.DefaultButtonMap()
	packets, err := m.WritePackets()
	require.NoError(t, err)
	require.Len(t, packets, 21)

	// Entry count first, then one write per slot at 0x82 + 4n.
	assert.Equal(t, []byte{0x02, 0xF3, 0x80, 0x00, 0x14, 0x00}, packets[0][:6])
	assert.Equal(t, []byte{0x02, 0xF3, 0x82, 0x00, 0x81, 0x00, 0x00, 0x00}, packets[1][:8])
	assert.Equal(t, []byte{0x02, 0xF3, 0xA2, 0x00, 0x90, 0x00, 0x04, 0x00}, packets[9][:8])
	assert.Equal(t, byte(0x82+19*4), packets[20][2])
}

func TestEntryWritePacket(t *testing.T) {
	e := holtek.Entry{Type: holtek.BtnKeyboard, Code: hidkeys.KeyF5}
	f, err := e.WritePacket(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0xF3, 0x8A, 0x00, 0x90, 0x00, 0x3E, 0x00}, f[:8])

	_, err = e.WritePacket(holtek.MapLen)
	assert.ErrorIs(t, err, holtek.ErrBadIndex)
}

func TestEntryFromAction(t *testing.T) {
	type testCase struct {
		name     string
		action   string
		expected holtek.Entry
		wantErr  bool
	}

	testCases := []testCase{
		{name: "mouse left", action: "mouse:left", expected: holtek.Entry{Type: holtek.BtnLeft}},
		{name: "mouse forward", action: "mouse:forward", expected: holtek.Entry{Type: holtek.BtnForward}},
		{name: "disabled", action: "disabled", expected: holtek.Entry{Type: holtek.BtnDisabled}},
		{name: "plain key", action: "key:f5", expected: holtek.Entry{Type: holtek.BtnKeyboard, Code: hidkeys.KeyF5}},
		{name: "dpi up", action: "dpi:up", expected: holtek.Entry{Type: holtek.BtnDPIUp}},
		{name: "dpi down", action: "dpi:down", expected: holtek.Entry{Type: holtek.BtnDPIDown}},
		{name: "profile switch", action: "profile-switch", expected: holtek.Entry{Type: holtek.BtnProfile}},
		{name: "modifier combos unsupported", action: "key:ctrl+c", wantErr: true},
		{name: "macros unsupported", action: "macro:1", wantErr: true},
		{name: "media unsupported", action: "media:mute", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := holtek.ParseAction(tc.action)
			if tc.wantErr {
				assert.ErrorIs(t, err, holtek.ErrUnsupportedAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestEntryStringRoundTrip(t *testing.T) {
	for i, e := range holtek.DefaultButtonMap() {
		got, err := holtek.ParseAction(e.String())
		require.NoError(t, err, "slot %d (%s)", i, e)
		assert.Equal(t, e, got, "slot %d", i)
	}
}

func TestEntryStringUnknown(t *testing.T) {
	assert.Equal(t, "unknown(0x99)", holtek.Entry{Type: 0x99}.String())
}

func TestParseButton(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}

	testCases := []testCase{
		{name: "bare index", input: "3", expected: 2},
		{name: "button prefix", input: "button12", expected: 11},
		{name: "short prefix", input: "b7", expected: 6},
		{name: "fire", input: "fire", expected: 12},
		{name: "left", input: "left", expected: 13},
		{name: "middle", input: "middle-click", expected: 14},
		{name: "right", input: "right", expected: 15},
		{name: "dpi up", input: "dpi-up", expected: 16},
		{name: "dpi down", input: "button18", expected: 17},
		{name: "profile", input: "profile", expected: 18},
		{name: "scroll", input: "scroll", expected: 19},
		{name: "zero", input: "0", wantErr: true},
		{name: "past side range", input: "button21", wantErr: true},
		{name: "garbage", input: "pinky", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := holtek.ParseButton(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, holtek.ErrBadIndex)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestButtonNameRoundTrip(t *testing.T) {
	for i := 0; i < holtek.MapLen; i++ {
		got, err := holtek.ParseButton(holtek.ButtonName(i))
		require.NoError(t, err, "index %d (%s)", i, holtek.ButtonName(i))
		assert.Equal(t, i, got)
	}
}
