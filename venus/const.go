// Package venus implements the vendor HID protocol of the UtechSmart Venus
// Pro family (25A7:FA07/FA08): the 17-byte report codec with its subtractive
// checksum, the flash address model, and builders for configuration writes.
package venus

// USB identifiers of the configuration interface.
const (
	VendorID        = 0x25A7
	ProductIDWired  = 0xFA07
	ProductIDDual   = 0xFA08
	ConfigInterface = 1
)

// Report framing. Every report is 17 bytes: report ID, command, 14 payload
// bytes and a trailing checksum that makes the whole report sum to 0x55.
const (
	ReportLen      = 17
	PayloadLen     = 14
	ReportIDHost   = 0x08
	ReportIDDevice = 0x09
	ChecksumBase   = 0x55
)

// Commands.
const (
	CmdHandshake = 0x03
	CmdPrepare   = 0x04
	CmdWrite     = 0x07
	CmdRead      = 0x08
	CmdReset     = 0x09
)

// WriteChunkLen is the data capacity of one memory-write report.
const WriteChunkLen = 10
