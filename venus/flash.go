package venus

import "fmt"

// BuildWrite builds one memory-write report for up to 10 data bytes.
// Payload layout: [reserved, page, offset, length, data...].
func BuildWrite(addr Address, data []byte) (Report, error) {
	if len(data) > WriteChunkLen {
		return Report{}, fmt.Errorf("%w: %d data bytes in one write", ErrPayloadTooLong, len(data))
	}
	payload := make([]byte, 0, PayloadLen)
	payload = append(payload, 0x00, addr.Page, addr.Offset, byte(len(data)))
	payload = append(payload, data...)
	return BuildReport(CmdWrite, payload)
}

// WriteStream splits data into 10-byte chunk writes starting at addr,
// advancing the address with page carry between chunks.
func WriteStream(addr Address, data []byte) ([]Report, error) {
	reports := make([]Report, 0, (len(data)+WriteChunkLen-1)/WriteChunkLen)
	for i := 0; i < len(data); i += WriteChunkLen {
		end := min(i+WriteChunkLen, len(data))
		at, err := addr.Advance(i)
		if err != nil {
			return nil, err
		}
		r, err := BuildWrite(at, data[i:end])
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// BuildRead builds a memory-read request. The device answers on the
// interrupt endpoint with a report echoing page, offset and length.
func BuildRead(addr Address, length byte) (Report, error) {
	return BuildReport(CmdRead, []byte{0x00, addr.Page, addr.Offset, length})
}
