package venus

import (
	"fmt"
	"strings"
)

// Report is one wire-format HID report. Device-generated reports carry ID
// 0x09 and are parsed with ParseReport; everything outbound is built here.
type Report [ReportLen]byte

// Checksum computes the subtractive checksum over data. A report is valid
// when all 17 bytes (including the checksum) sum to 0x55 modulo 256.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return ChecksumBase - sum
}

// BuildReport builds a host-to-device report for the given command. The
// payload is zero-padded to 14 bytes; longer payloads are a caller error.
func BuildReport(cmd byte, payload []byte) (Report, error) {
	var r Report
	if len(payload) > PayloadLen {
		return r, fmt.Errorf("%w: %d bytes", ErrPayloadTooLong, len(payload))
	}
	r[0] = ReportIDHost
	r[1] = cmd
	copy(r[2:2+PayloadLen], payload)
	r[ReportLen-1] = Checksum(r[:ReportLen-1])
	return r, nil
}

// BuildSimple builds a report with an all-zero payload, used for the
// handshake, prepare/commit and reset control commands.
func BuildSimple(cmd byte) Report {
	var r Report
	r[0] = ReportIDHost
	r[1] = cmd
	r[ReportLen-1] = Checksum(r[:ReportLen-1])
	return r
}

// ParseReport validates length and checksum of a raw device report.
func ParseReport(data []byte) (Report, error) {
	var r Report
	if len(data) < ReportLen {
		return r, fmt.Errorf("%w: %d bytes", ErrShortReport, len(data))
	}
	copy(r[:], data[:ReportLen])
	if !r.Valid() {
		return r, fmt.Errorf("%w: got 0x%02x, want 0x%02x",
			ErrChecksumMismatch, r[ReportLen-1], Checksum(r[:ReportLen-1]))
	}
	return r, nil
}

// Command returns the command byte.
func (r Report) Command() byte { return r[1] }

// Payload returns the 14 payload bytes.
func (r Report) Payload() []byte { return r[2 : 2+PayloadLen] }

// Checksum returns the trailing checksum byte.
func (r Report) Checksum() byte { return r[ReportLen-1] }

// Valid reports whether the checksum invariant holds.
func (r Report) Valid() bool {
	var sum byte
	for _, b := range r {
		sum += b
	}
	return sum == ChecksumBase
}

// String renders the report as space-separated hex.
func (r Report) String() string {
	var sb strings.Builder
	for i, b := range r {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}
