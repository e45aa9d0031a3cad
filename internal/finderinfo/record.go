package finderinfo

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
	"unicode"
)

// The size in bytes of a Finder information record
const Size = 32

// Layout of the Finder information record. All multi-byte fields are big-endian.
//
//	offset  width  field
//	     0      4  file type code
//	     4      4  file creator code
//	     8      2  Finder flags
//	    10      4  icon location
//	    14     10  opaque (reserved, extended Finder info)
//	    24      2  extended flags
//	    26      6  opaque (put-away folder and reserved)
//
// Only the extended flags field is ever interpreted or modified.
const (
	extendedFlagsOffset = 24
	extendedFlagsWidth  = 2
)

// Bits of the extended flags field
const (

	// Set while the item is busy (e.g. mid-copy) and cleared once it is complete
	ExtendedFlagBusy uint16 = 0x0080
)

// Represents the fixed-size Finder information record stored in the com.apple.FinderInfo extended attribute
type Record struct {
	data [Size]byte
}

// Parses the hex dump of a Finder information record, ignoring any whitespace.
// Records shorter than Size bytes are padded with trailing zero bytes, whereas
// longer records are rejected.
func Decode(dump string) (*Record, error) {

	// Strip all whitespace from the hex dump
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, dump)

	// Attempt to convert the hex digits into raw bytes
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return nil, &ValidationError{Kind: MalformedHex, Length: len(digits), Err: err}
	}

	// Refuse to truncate oversized records
	if len(raw) > Size {
		return nil, &ValidationError{Kind: LengthExceeded, Length: len(raw)}
	}

	// Copy the bytes into place, leaving any remainder zeroed
	record := &Record{}
	copy(record.data[:], raw)
	return record, nil
}

// Returns the value of the extended flags field
func (r *Record) ExtendedFlags() uint16 {
	return binary.BigEndian.Uint16(r.extendedFlags())
}

// Determines whether the busy bit is set
func (r *Record) Busy() bool {
	return r.ExtendedFlags()&ExtendedFlagBusy != 0
}

// Clears the busy bit, leaving every other bit of the record untouched
func (r *Record) ClearBusyBit() {
	binary.BigEndian.PutUint16(r.extendedFlags(), r.ExtendedFlags()&^ExtendedFlagBusy)
}

// Serialises the record as the lowercase hex string accepted by `xattr -wx`
func (r *Record) Encode() string {
	return hex.EncodeToString(r.data[:])
}

// Returns a copy of the raw bytes of the record
func (r *Record) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, r.data[:])
	return out
}

func (r *Record) extendedFlags() []byte {
	return r.data[extendedFlagsOffset : extendedFlagsOffset+extendedFlagsWidth]
}
