package header

import "fmt"

// Kind is the value discriminant carried in the top two bits of a header
// identifier byte.
type Kind byte

const (
	KindUnicode Kind = 0 // id>>6 == 0b00: UTF-16BE string, null-terminated
	KindBytes   Kind = 1 // id>>6 == 0b01: raw byte sequence
	KindU8      Kind = 2 // id>>6 == 0b10: single byte
	KindU32     Kind = 3 // id>>6 == 0b11: 32-bit big-endian unsigned
)

// KindOf returns the value kind implied by id's top two bits. Every byte
// value decodes to a valid Kind — there is no "unknown kind", only
// unknown mnemonics.
func KindOf(id byte) Kind {
	return Kind(id >> 6)
}

// Identifiers for the header names defined by the Generic Object Exchange
// Profile. Unlisted identifiers still decode correctly (see NameForID) —
// this table only supplies the mnemonic.
const (
	IDName                  byte = 0x01
	IDDescription           byte = 0x05
	IDType                  byte = 0x42
	IDTimestamp             byte = 0x44
	IDTarget                byte = 0x46
	IDHTTP                  byte = 0x47
	IDBody                  byte = 0x48
	IDEndOfBody             byte = 0x49
	IDWho                   byte = 0x4A
	IDAppParameters         byte = 0x4C
	IDAuthChallenge         byte = 0x4D
	IDAuthResponse          byte = 0x4E
	IDWanUUID               byte = 0x50
	IDObjectClass           byte = 0x51
	IDSessionParameters     byte = 0x52
	IDSessionSequenceNumber byte = 0x93
	IDCount                 byte = 0xC0
	IDLength                byte = 0xC3
	IDTimestamp4            byte = 0xC4
	IDConnectionID          byte = 0xCB
	IDCreatorID             byte = 0xCF
)

var byName = map[string]byte{
	"name":                  IDName,
	"description":           IDDescription,
	"type":                  IDType,
	"timestamp":             IDTimestamp,
	"target":                IDTarget,
	"http":                  IDHTTP,
	"body":                  IDBody,
	"endofbody":             IDEndOfBody,
	"who":                   IDWho,
	"appparameters":         IDAppParameters,
	"authchallenge":         IDAuthChallenge,
	"authresponse":          IDAuthResponse,
	"wanuuid":               IDWanUUID,
	"objectclass":           IDObjectClass,
	"sessionparameters":     IDSessionParameters,
	"sessionsequencenumber": IDSessionSequenceNumber,
	"count":                 IDCount,
	"length":                IDLength,
	"timestamp4":            IDTimestamp4,
	"connectionid":          IDConnectionID,
	"creatorid":             IDCreatorID,
}

var byID = map[byte]string{
	IDName:                  "Name",
	IDDescription:           "Description",
	IDType:                  "Type",
	IDTimestamp:             "Timestamp",
	IDTarget:                "Target",
	IDHTTP:                  "Http",
	IDBody:                  "Body",
	IDEndOfBody:             "EndOfBody",
	IDWho:                   "Who",
	IDAppParameters:         "AppParameters",
	IDAuthChallenge:         "AuthChallenge",
	IDAuthResponse:          "AuthResponse",
	IDWanUUID:               "WanUuid",
	IDObjectClass:           "ObjectClass",
	IDSessionParameters:     "SessionParameters",
	IDSessionSequenceNumber: "SessionSequenceNumber",
	IDCount:                 "Count",
	IDLength:                "Length",
	IDTimestamp4:            "Timestamp4",
	IDConnectionID:          "ConnectionId",
	IDCreatorID:             "CreatorId",
}

// lookupID resolves a mnemonic name (case-insensitive) to its identifier
// byte. ok is false for names not in the static registry.
func lookupID(name string) (id byte, ok bool) {
	id, ok = byName[lowerASCII(name)]
	return id, ok
}

// NameForID returns the canonical mnemonic for a known identifier, or a
// synthetic "0xNN" name for an identifier this registry doesn't know —
// unknown identifiers still decode successfully using the kind implied by
// their top two bits.
func NameForID(id byte) string {
	if name, ok := byID[id]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", id)
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
