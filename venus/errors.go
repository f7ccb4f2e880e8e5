package venus

import "errors"

var (
	ErrPayloadTooLong    = errors.New("venus: payload too long")
	ErrShortReport       = errors.New("venus: short report")
	ErrChecksumMismatch  = errors.New("venus: checksum mismatch")
	ErrTimeout           = errors.New("venus: device response timeout")
	ErrNotOpen           = errors.New("venus: device not open")
	ErrSlotOutOfRange    = errors.New("venus: macro slot out of range")
	ErrDPISlotOutOfRange = errors.New("venus: dpi slot out of range")
	ErrProfileOutOfRange = errors.New("venus: profile index out of range")
	ErrAddressOverflow   = errors.New("venus: address past end of flash")
	ErrUnknownButton     = errors.New("venus: unknown button")
	ErrUnknownRate       = errors.New("venus: unsupported polling rate")
)
