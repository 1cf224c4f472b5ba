package raster

import (
	"encoding/binary"
	"strings"
)

// Magic is the two byte tag at the start of a file, read as a little-endian
// 16-bit value.
type Magic uint16

// Known tags.
const (
	MagicEBF Magic = 0x6265 // "eb"
	MagicEBU Magic = 0x7565 // "eu"
	MagicEBC Magic = 0x6365 // "ec"
)

// Bytes returns the tag as it appears on disk.
func (m Magic) Bytes() [2]byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(m))
	return b
}

func (m Magic) String() string {
	b := m.Bytes()
	return string(b[:])
}

// Encoding selects how the pixel body is stored.
type Encoding int

const (
	// PackedByte stores one raw byte per sample with no delimiters
	PackedByte Encoding = iota
	// WhitespaceText stores one decimal token per sample
	WhitespaceText
)

func (e Encoding) String() string {
	switch e {
	case PackedByte:
		return "packed"
	case WhitespaceText:
		return "text"
	default:
		return "unknown"
	}
}

// SampleWidth is the integer width a profile parses samples into. It never
// changes the valid range, which is always 0 to MaxSample.
type SampleWidth int

const (
	Byte SampleWidth = iota
	Word
)

func (s SampleWidth) bits() int {
	if s == Word {
		return 32
	}
	return 8
}

// Profile describes one variant of the format.
type Profile struct {
	Name        string
	Magic       Magic
	Encoding    Encoding
	SampleWidth SampleWidth
}

// Ext returns the conventional file extension for the profile.
func (p Profile) Ext() string {
	return "." + p.Name
}

func (p Profile) String() string {
	return p.Name
}

// Built-in profiles.
var (
	EBF = Profile{Name: "ebf", Magic: MagicEBF, Encoding: WhitespaceText, SampleWidth: Word}
	EBU = Profile{Name: "ebu", Magic: MagicEBU, Encoding: PackedByte, SampleWidth: Byte}
	EBC = Profile{Name: "ebc", Magic: MagicEBC, Encoding: PackedByte, SampleWidth: Byte}

	// EBUCopy is the packed body written under the "eb" tag by the ebu
	// echo tool. It is never chosen by tag or extension.
	EBUCopy = Profile{Name: "ebu", Magic: MagicEBF, Encoding: PackedByte, SampleWidth: Byte}
)

var profiles = []Profile{EBF, EBU, EBC}

// ProfileByMagic returns the built-in profile using tag m.
func ProfileByMagic(m Magic) (Profile, bool) {
	for _, p := range profiles {
		if p.Magic == m {
			return p, true
		}
	}
	return Profile{}, false
}

// ProfileByExt returns the built-in profile for a file extension such as
// ".ebf". The match is case-insensitive.
func ProfileByExt(ext string) (Profile, bool) {
	for _, p := range profiles {
		if strings.EqualFold(p.Ext(), ext) {
			return p, true
		}
	}
	return Profile{}, false
}
