package holtek

import (
	"errors"
	"fmt"
	"time"

	"github.com/sstallion/go-hid"
)

// Inter-packet pacing. The firmware offers no acknowledgements, so writes
// rely on settle delays replayed from the Windows driver.
const (
	settleDelay = 8 * time.Millisecond
	ctrlDelay   = 10 * time.Millisecond
	readDelay   = 5 * time.Millisecond
	commitDelay = 50 * time.Millisecond
)

var ErrNotOpen = errors.New("holtek: device not open")

// TrafficLogger receives every raw frame exchanged with the device.
type TrafficLogger interface {
	Log(toDevice bool, data []byte)
}

// DeviceInfo describes one enumerated configuration interface.
type DeviceInfo struct {
	Path         string
	Product      string
	Manufacturer string
	Serial       string
}

// Enumerate lists attached Holtek configuration interfaces.
func Enumerate() ([]DeviceInfo, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("holtek: hid init: %w", err)
	}
	var infos []DeviceInfo
	seen := make(map[string]bool)
	_ = hid.Enumerate(VendorID, ProductID, func(info *hid.DeviceInfo) error {
		if info.InterfaceNbr != ConfigInterface || seen[info.Path] {
			return nil
		}
		seen[info.Path] = true
		infos = append(infos, DeviceInfo{
			Path:         info.Path,
			Product:      info.ProductStr,
			Manufacturer: info.MfrStr,
			Serial:       info.SerialNbr,
		})
		return nil
	})
	return infos, nil
}

// Device is a handle to one configuration interface. All configuration
// traffic is feature reports; reads are polled back with get-feature.
type Device struct {
	path string
	dev  *hid.Device
	raw  TrafficLogger
}

func NewDevice(path string) *Device {
	return &Device{path: path}
}

// SetTrafficLogger attaches a raw frame logger. Pass nil to disable.
func (d *Device) SetTrafficLogger(l TrafficLogger) {
	d.raw = l
}

// Path returns the platform path the handle was created for.
func (d *Device) Path() string { return d.path }

func (d *Device) Open() error {
	if d.dev != nil {
		return nil
	}
	if err := hid.Init(); err != nil {
		return fmt.Errorf("holtek: hid init: %w", err)
	}
	dev, err := hid.OpenPath(d.path)
	if err != nil {
		return fmt.Errorf("holtek: open %s: %w", d.path, err)
	}
	if err := dev.SetNonblock(true); err != nil {
		_ = dev.Close()
		return fmt.Errorf("holtek: set nonblocking: %w", err)
	}
	d.dev = dev
	return nil
}

func (d *Device) Close() error {
	if d.dev == nil {
		return nil
	}
	err := d.dev.Close()
	d.dev = nil
	return err
}

// SendFeature sends one raw frame.
func (d *Device) SendFeature(frame []byte) error {
	if d.dev == nil {
		return ErrNotOpen
	}
	if d.raw != nil {
		d.raw.Log(true, frame)
	}
	if _, err := d.dev.SendFeatureReport(frame); err != nil {
		return fmt.Errorf("holtek: send frame 0x%02x: %w", frame[1], err)
	}
	return nil
}

// SendReliable sends one frame and waits the inter-packet delay. There is
// no acknowledgement to wait for on this device.
func (d *Device) SendReliable(frame []byte) error {
	if err := d.SendFeature(frame); err != nil {
		return err
	}
	time.Sleep(settleDelay)
	return nil
}

// ReadMemory reads length bytes at addr. Reads above the short response
// capacity come back on the long report.
func (d *Device) ReadMemory(addr uint16, length int) ([]byte, error) {
	if d.dev == nil {
		return nil, ErrNotOpen
	}
	if length <= 0 || length > LongLen-8 {
		return nil, fmt.Errorf("holtek: read length %d out of range", length)
	}
	if err := d.SendFeature(BuildRead(addr, byte(length))); err != nil {
		return nil, err
	}
	time.Sleep(readDelay)

	buf := make([]byte, ShortLen)
	buf[0] = RIDShort
	if length > ShortLen-8 {
		buf = make([]byte, LongLen)
		buf[0] = RIDLong
	}
	n, err := d.dev.GetFeatureReport(buf)
	if err != nil {
		return nil, fmt.Errorf("holtek: read at 0x%04x: %w", addr, err)
	}
	if d.raw != nil {
		d.raw.Log(false, buf[:n])
	}
	return ParseReadResponse(buf[:n], length)
}

// WriteMemory writes data at addr and waits the inter-packet delay.
func (d *Device) WriteMemory(addr uint16, data []byte) error {
	frame, err := BuildWrite(addr, data)
	if err != nil {
		return err
	}
	return d.SendReliable(frame)
}

// EnterWriteMode unlocks the flash for F3 writes.
func (d *Device) EnterWriteMode() error {
	if err := d.SendFeature(CtrlEnterWrite()); err != nil {
		return err
	}
	time.Sleep(ctrlDelay)
	return nil
}

// CommitWrites replays the driver's commit sequence, persisting pending F3
// writes to flash.
func (d *Device) CommitWrites() error {
	frames := CommitFrames()
	for i, frame := range frames {
		if err := d.SendFeature(frame); err != nil {
			return err
		}
		if i == len(frames)-1 {
			time.Sleep(commitDelay)
		} else {
			time.Sleep(ctrlDelay)
		}
	}
	return nil
}

// SetPollingRate switches the polling rate immediately, outside the flash
// write path.
func (d *Device) SetPollingRate(rate int) error {
	frame, err := BuildPolling(rate)
	if err != nil {
		return err
	}
	if err := d.SendFeature(frame); err != nil {
		return err
	}
	time.Sleep(ctrlDelay)
	return nil
}

// ReadButtonMap reads and decodes the full assignment table.
func (d *Device) ReadButtonMap() (ButtonMap, error) {
	data, err := d.readRegion(AddrButtons, buttonsLen)
	if err != nil {
		return ButtonMap{}, err
	}
	return ParseButtonMap(data)
}

// ReadSettings reads the DPI/LED/polling region.
func (d *Device) ReadSettings() ([]byte, error) {
	return d.readRegion(AddrSettings, settingsLen)
}

// readRegion reads a span in 8 byte chunks, the stride the firmware
// answers reliably.
func (d *Device) readRegion(base uint16, length int) ([]byte, error) {
	data := make([]byte, 0, length)
	for off := 0; off < length; off += 8 {
		chunk, err := d.ReadMemory(base+uint16(off), 8)
		if err != nil {
			return nil, err
		}
		data = append(data, chunk...)
	}
	return data[:length], nil
}

// WriteEntry stores one button assignment and commits it.
func (d *Device) WriteEntry(index int, e Entry) error {
	addr, err := EntryAddr(index)
	if err != nil {
		return err
	}
	if err := d.EnterWriteMode(); err != nil {
		return err
	}
	entry := e.encode()
	if err := d.WriteMemory(addr, entry[:]); err != nil {
		return err
	}
	return d.CommitWrites()
}

// WriteLED stores the lighting configuration and commits it.
func (d *Device) WriteLED(r, g, b, mode, brightness byte) error {
	frame, err := BuildLED(r, g, b, mode, brightness)
	if err != nil {
		return err
	}
	if err := d.EnterWriteMode(); err != nil {
		return err
	}
	if err := d.SendReliable(frame); err != nil {
		return err
	}
	return d.CommitWrites()
}

// WriteButtonMap stores the whole assignment table and commits it.
func (d *Device) WriteButtonMap(m ButtonMap) error {
	packets, err := m.WritePackets()
	if err != nil {
		return err
	}
	if err := d.EnterWriteMode(); err != nil {
		return err
	}
	for _, p := range packets {
		if err := d.SendReliable(p); err != nil {
			return err
		}
	}
	return d.CommitWrites()
}
