package venus

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sstallion/go-hid"
)

// Timing of the synchronous transport. The device acknowledges memory
// writes by echoing the report on the interrupt endpoint; control commands
// are not echoed and only need a short settle delay.
const (
	ackTimeout   = 500 * time.Millisecond
	readTimeout  = 200 * time.Millisecond
	readPoll     = 50 * time.Millisecond
	settleDelay  = 8 * time.Millisecond
	flushTimeout = 10 * time.Millisecond
)

// TrafficLogger receives every raw report exchanged with the device.
type TrafficLogger interface {
	Log(toDevice bool, data []byte)
}

// DeviceInfo describes one enumerated configuration interface.
type DeviceInfo struct {
	Path         string
	Product      string
	Manufacturer string
	Serial       string
	VendorID     uint16
	ProductID    uint16
}

// Enumerate lists attached Venus Pro configuration interfaces. Entries for
// the dual-mode product sort first, matching the vendor tool's preference.
func Enumerate() ([]DeviceInfo, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("venus: hid init: %w", err)
	}
	var infos []DeviceInfo
	seen := make(map[string]bool)
	// hid.Enumerate reports an error when nothing matches; an empty result
	// is not a failure here.
	_ = hid.Enumerate(VendorID, 0, func(info *hid.DeviceInfo) error {
		if info.ProductID != ProductIDWired && info.ProductID != ProductIDDual {
			return nil
		}
		if info.InterfaceNbr != ConfigInterface {
			return nil
		}
		if seen[info.Path] {
			return nil
		}
		seen[info.Path] = true
		infos = append(infos, DeviceInfo{
			Path:         info.Path,
			Product:      info.ProductStr,
			Manufacturer: info.MfrStr,
			Serial:       info.SerialNbr,
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
		})
		return nil
	})
	slices.SortStableFunc(infos, func(a, b DeviceInfo) int {
		return enumRank(a) - enumRank(b)
	})
	return infos, nil
}

func enumRank(d DeviceInfo) int {
	if strings.Contains(d.Product, "Dual Mode Mouse") {
		return 0
	}
	return 1
}

// Device is a handle to one configuration interface. All I/O is synchronous
// and single-threaded: feature reports out, interrupt endpoint reads in.
type Device struct {
	path string
	dev  *hid.Device
	raw  TrafficLogger
}

// NewDevice prepares a handle for the interface at path. Open establishes it.
func NewDevice(path string) *Device {
	return &Device{path: path}
}

// SetTrafficLogger attaches a raw report logger. Pass nil to disable.
func (d *Device) SetTrafficLogger(l TrafficLogger) {
	d.raw = l
}

// Path returns the platform path the handle was created for.
func (d *Device) Path() string { return d.path }

// Open opens the HID handle. Opening an already open device is a no-op.
func (d *Device) Open() error {
	if d.dev != nil {
		return nil
	}
	if err := hid.Init(); err != nil {
		return fmt.Errorf("venus: hid init: %w", err)
	}
	dev, err := hid.OpenPath(d.path)
	if err != nil {
		return fmt.Errorf("venus: open %s: %w", d.path, err)
	}
	if err := dev.SetNonblock(true); err != nil {
		_ = dev.Close()
		return fmt.Errorf("venus: set nonblocking: %w", err)
	}
	d.dev = dev
	return nil
}

// Close releases the HID handle.
func (d *Device) Close() error {
	if d.dev == nil {
		return nil
	}
	err := d.dev.Close()
	d.dev = nil
	return err
}

// Send writes one report without waiting for a device response.
func (d *Device) Send(r Report) error {
	if d.dev == nil {
		return ErrNotOpen
	}
	if d.raw != nil {
		d.raw.Log(true, r[:])
	}
	if _, err := d.dev.SendFeatureReport(r[:]); err != nil {
		return fmt.Errorf("venus: send report 0x%02x: %w", r.Command(), err)
	}
	return nil
}

// SendReliable sends a report and waits for the device to echo it back on
// the interrupt endpoint within the ack deadline. The echo's checksum is
// verified; a corrupt echo is surfaced, not retried.
func (d *Device) SendReliable(r Report) error {
	if err := d.Send(r); err != nil {
		return err
	}
	switch r.Command() {
	case CmdHandshake, CmdPrepare, CmdReset:
		time.Sleep(settleDelay)
		return nil
	}
	deadline := time.Now().Add(ackTimeout)
	buf := make([]byte, 32)
	for time.Now().Before(deadline) {
		n, err := d.dev.ReadWithTimeout(buf, readPoll)
		if err != nil {
			return fmt.Errorf("venus: read ack: %w", err)
		}
		if n < ReportLen {
			continue
		}
		if d.raw != nil {
			d.raw.Log(false, buf[:n])
		}
		if buf[0] != ReportIDDevice || buf[1] != r.Command() {
			continue
		}
		if _, err := ParseReport(buf[:ReportLen]); err != nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("%w: no ack for command 0x%02x", ErrTimeout, r.Command())
}

// ReadFlash reads length bytes at (page, offset). The response arrives on
// the interrupt endpoint as a read echo carrying the data; reads larger
// than one chunk should be issued as multiple calls.
func (d *Device) ReadFlash(page, offset, length byte) ([]byte, error) {
	if d.dev == nil {
		return nil, ErrNotOpen
	}
	d.flush()
	req, err := BuildRead(Address{Page: page, Offset: offset}, length)
	if err != nil {
		return nil, err
	}
	if err := d.Send(req); err != nil {
		return nil, err
	}
	deadline := time.Now().Add(readTimeout)
	buf := make([]byte, 32)
	for time.Now().Before(deadline) {
		n, err := d.dev.ReadWithTimeout(buf, readPoll)
		if err != nil {
			return nil, fmt.Errorf("venus: read flash: %w", err)
		}
		if n < ReportLen {
			continue
		}
		if d.raw != nil {
			d.raw.Log(false, buf[:n])
		}
		if buf[0] != ReportIDDevice || buf[1] != CmdRead {
			continue
		}
		if buf[3] != page || buf[4] != offset {
			continue
		}
		resp, err := ParseReport(buf[:ReportLen])
		if err != nil {
			return nil, err
		}
		dataLen := int(resp[5])
		if dataLen > WriteChunkLen {
			dataLen = WriteChunkLen
		}
		return append([]byte(nil), resp[6:6+dataLen]...), nil
	}
	return nil, fmt.Errorf("%w: flash read at page 0x%02x offset 0x%02x", ErrTimeout, page, offset)
}

// flush drains stale interrupt reports before a read transaction.
func (d *Device) flush() {
	buf := make([]byte, 32)
	for {
		n, err := d.dev.ReadWithTimeout(buf, flushTimeout)
		if err != nil || n <= 0 {
			return
		}
		if d.raw != nil {
			d.raw.Log(false, buf[:n])
		}
	}
}
