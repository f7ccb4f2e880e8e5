package holtek

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/hidkeys"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/binding"
)

var (
	ErrDataTooLong       = errors.New("holtek: data exceeds long report capacity")
	ErrShortResponse     = errors.New("holtek: short read response")
	ErrUnknownRate       = errors.New("holtek: unsupported polling rate")
	ErrUnsupportedAction = errors.New("holtek: action not supported by this device")
	ErrBadIndex          = errors.New("holtek: button index out of range")
)

// shortFrame returns a zeroed short report with the command header set.
func shortFrame(cmd byte) []byte {
	f := make([]byte, ShortLen)
	f[0] = RIDShort
	f[1] = cmd
	return f
}

// ctrlFrame builds an F1 write control frame.
func ctrlFrame(b2, b3 byte) []byte {
	f := shortFrame(CmdWriteCtrl)
	f[2] = b2
	f[3] = b3
	return f
}

// Flash write control frames, replayed from the Windows driver. CommitWrites
// sends the exit/post/reset/ack sequence in order.
func CtrlEnterWrite() []byte  { return ctrlFrame(0x02, 0x01) }
func CtrlCommit() []byte      { return ctrlFrame(0x02, 0x02) }
func CtrlExitWrite() []byte   { return ctrlFrame(0x02, 0x10) }
func CtrlPostCommit1() []byte { return ctrlFrame(0x00, 0x04) }
func CtrlPostCommit2() []byte { return ctrlFrame(0x00, 0x01) }
func CtrlReset() []byte       { return ctrlFrame(0x00, 0x00) }
func CtrlFlashAck() []byte    { return ctrlFrame(0x00, 0x08) }

// BuildRead builds an F2 read request. The response arrives via a
// get-feature transfer, on the long report when length exceeds 8.
func BuildRead(addr uint16, length byte) []byte {
	f := shortFrame(CmdRead)
	f[2] = byte(addr)
	f[3] = byte(addr >> 8)
	f[4] = length
	return f
}

// BuildWrite builds an F3 memory write. Data up to the short report
// capacity uses the short report, anything larger the long one.
func BuildWrite(addr uint16, data []byte) ([]byte, error) {
	if len(data) > longDataMax {
		return nil, fmt.Errorf("%w: %d bytes", ErrDataTooLong, len(data))
	}
	var f []byte
	if len(data) <= shortDataMax {
		f = shortFrame(CmdWriteData)
	} else {
		f = make([]byte, LongLen)
		f[0] = RIDLong
		f[1] = CmdWriteData
	}
	f[2] = byte(addr)
	f[3] = byte(addr >> 8)
	copy(f[4:], data)
	return f, nil
}

// BuildPolling builds the F5 polling rate command.
func BuildPolling(rate int) ([]byte, error) {
	code, ok := pollingCodes[rate]
	if !ok {
		return nil, fmt.Errorf("%w: %d Hz", ErrUnknownRate, rate)
	}
	f := shortFrame(CmdPolling)
	f[2] = code
	return f, nil
}

// BuildLED builds the LED configuration write at the LED base address.
func BuildLED(r, g, b, mode, brightness byte) ([]byte, error) {
	return BuildWrite(AddrLED, []byte{r, g, b, mode, brightness})
}

// BuildDPI writes raw DPI slot values at the DPI base address.
func BuildDPI(values []byte) ([]byte, error) {
	if len(values) > shortDataMax {
		return nil, fmt.Errorf("%w: %d dpi bytes", ErrDataTooLong, len(values))
	}
	return BuildWrite(AddrDPI, values)
}

// ParseReadResponse extracts length data bytes from a read response. The
// header is [rid, 0x08, addr_lo, status, len, 0x00, 0xFA, 0xFA].
func ParseReadResponse(resp []byte, length int) ([]byte, error) {
	if len(resp) < 8+length {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrShortResponse, len(resp), 8+length)
	}
	return append([]byte(nil), resp[8:8+length]...), nil
}

// Entry is one button map slot: a type byte and, for keyboard entries, the
// HID usage code. The stored form is [type, 0x00, code, 0x00].
type Entry struct {
	Type byte
	Code byte
}

func (e Entry) encode() [4]byte {
	return [4]byte{e.Type, 0x00, e.Code, 0x00}
}

func (e Entry) String() string {
	switch e.Type {
	case BtnDisabled:
		return "disabled"
	case BtnLeft:
		return "mouse:left"
	case BtnRight:
		return "mouse:right"
	case BtnMiddle:
		return "mouse:middle"
	case BtnBack:
		return "mouse:back"
	case BtnForward:
		return "mouse:forward"
	case BtnDPIUp:
		return "dpi:up"
	case BtnDPIDown:
		return "dpi:down"
	case BtnProfile:
		return "profile-switch"
	case BtnKeyboard:
		return "key:" + hidkeys.FormatCombo(e.Code, 0)
	}
	return fmt.Sprintf("unknown(0x%02x)", e.Type)
}

// EntryFromAction translates the shared action model into a map entry.
// The Holtek map has no modifier byte, so key combos are rejected.
func EntryFromAction(a binding.Action) (Entry, error) {
	switch a.Kind {
	case binding.KindDisabled:
		return Entry{Type: BtnDisabled}, nil
	case binding.KindMouseButton:
		switch a.Mouse {
		case binding.MouseLeft:
			return Entry{Type: BtnLeft}, nil
		case binding.MouseRight:
			return Entry{Type: BtnRight}, nil
		case binding.MouseMiddle:
			return Entry{Type: BtnMiddle}, nil
		case binding.MouseBack:
			return Entry{Type: BtnBack}, nil
		case binding.MouseForward:
			return Entry{Type: BtnForward}, nil
		}
	case binding.KindKeyboardKey:
		if a.Modifier != 0 {
			return Entry{}, fmt.Errorf("%w: modifier combos", ErrUnsupportedAction)
		}
		return Entry{Type: BtnKeyboard, Code: a.Key}, nil
	case binding.KindDPIControl:
		if a.DPI == binding.DPIDown {
			return Entry{Type: BtnDPIDown}, nil
		}
		return Entry{Type: BtnDPIUp}, nil
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrUnsupportedAction, a)
}

// ParseAction parses the textual action grammar for this device: the shared
// forms where supported, plus the device's own profile-switch function.
func ParseAction(s string) (Entry, error) {
	if strings.EqualFold(strings.TrimSpace(s), "profile-switch") {
		return Entry{Type: BtnProfile}, nil
	}
	a, err := binding.ParseAction(s)
	if err != nil {
		return Entry{}, err
	}
	return EntryFromAction(a)
}

// ButtonMap is the full 20 slot assignment table.
type ButtonMap [MapLen]Entry

// DefaultButtonMap returns the factory assignment.
func DefaultButtonMap() ButtonMap {
	return ButtonMap{
		{Type: BtnLeft}, {Type: BtnRight}, {Type: BtnMiddle}, {Type: BtnBack},
		{Type: BtnForward}, {Type: BtnDPIUp}, {Type: BtnDPIDown}, {Type: BtnProfile},
		{Type: BtnKeyboard, Code: 0x04}, {Type: BtnKeyboard, Code: 0x05},
		{Type: BtnKeyboard, Code: 0x06}, {Type: BtnKeyboard, Code: 0x07},
		{Type: BtnLeft}, {Type: BtnLeft}, {Type: BtnMiddle}, {Type: BtnRight},
		{Type: BtnDPIUp}, {Type: BtnDPIDown}, {Type: BtnProfile}, {Type: BtnMiddle},
	}
}

// ParseButtonMap decodes the stored form: a 2 byte LE count followed by
// 4 byte entries. Entries beyond MapLen are ignored.
func ParseButtonMap(data []byte) (ButtonMap, error) {
	var m ButtonMap
	if len(data) < 2 {
		return m, fmt.Errorf("%w: no entry count", ErrShortResponse)
	}
	count := int(binary.LittleEndian.Uint16(data))
	if count > MapLen {
		count = MapLen
	}
	for i := 0; i < count; i++ {
		off := 2 + i*4
		if off+4 > len(data) {
			return m, fmt.Errorf("%w: entry %d truncated", ErrShortResponse, i)
		}
		m[i] = Entry{Type: data[off], Code: data[off+2]}
	}
	return m, nil
}

// EntryAddr returns the flash address of one map slot.
func EntryAddr(index int) (uint16, error) {
	if index < 0 || index >= MapLen {
		return 0, fmt.Errorf("%w: %d", ErrBadIndex, index)
	}
	return uint16(AddrButtonEntries + index*4), nil
}

// CommitFrames returns the control frames of the flash commit sequence, in
// send order.
func CommitFrames() [][]byte {
	return [][]byte{CtrlExitWrite(), CtrlPostCommit1(), CtrlPostCommit2(), CtrlReset(), CtrlFlashAck()}
}

// WritePacket builds the frame that stores this entry in one map slot.
func (e Entry) WritePacket(index int) ([]byte, error) {
	addr, err := EntryAddr(index)
	if err != nil {
		return nil, err
	}
	enc := e.encode()
	return BuildWrite(addr, enc[:])
}

// WritePackets builds the frames that store the whole map: the entry count
// write followed by one write per slot.
func (m ButtonMap) WritePackets() ([][]byte, error) {
	count, err := BuildWrite(AddrButtons, []byte{MapLen, 0x00})
	if err != nil {
		return nil, err
	}
	packets := [][]byte{count}
	for i, e := range m {
		addr, err := EntryAddr(i)
		if err != nil {
			return nil, err
		}
		entry := e.encode()
		w, err := BuildWrite(addr, entry[:])
		if err != nil {
			return nil, err
		}
		packets = append(packets, w)
	}
	return packets, nil
}

// ParseButton resolves a button name to its map index. It accepts the
// side-button forms used elsewhere ("button3", "b3", "3"), the standard
// button names, and the device's top controls.
func ParseButton(name string) (int, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "fire", "fire-key", "button13":
		return 12, nil
	case "left", "left-click", "button14":
		return 13, nil
	case "middle", "middle-click", "button15":
		return 14, nil
	case "right", "right-click", "button16":
		return 15, nil
	case "dpi-up", "button17":
		return 16, nil
	case "dpi-down", "button18":
		return 17, nil
	case "profile", "profile-switch", "button19":
		return 18, nil
	case "scroll", "scroll-click", "button20":
		return 19, nil
	default:
		var idx int
		if _, err := fmt.Sscanf(n, "button%d", &idx); err != nil {
			if _, err := fmt.Sscanf(n, "b%d", &idx); err != nil {
				if _, err := fmt.Sscanf(n, "%d", &idx); err != nil {
					return 0, fmt.Errorf("%w: %q", ErrBadIndex, name)
				}
			}
		}
		if idx < 1 || idx > 12 {
			return 0, fmt.Errorf("%w: %q", ErrBadIndex, name)
		}
		return idx - 1, nil
	}
}
