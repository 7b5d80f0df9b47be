// Package cartridge implements SNES cartridge header parsing, ROM/SRAM
// addressing, and LoROM/HiROM mapping detection.
package cartridge

import "errors"

// ErrUnrecognizedCartridge is returned when neither the LoROM nor the
// HiROM header candidate scores acceptably.
var ErrUnrecognizedCartridge = errors.New("cartridge: unrecognized ROM layout")

// ErrUnsupportedCoprocessor is returned when the header names a
// cartridge coprocessor (DSP-1, SA-1, SuperFX, ...). Coprocessor
// emulation is outside the scope of this core.
var ErrUnsupportedCoprocessor = errors.New("cartridge: unsupported coprocessor")

// Mapping identifies the cartridge's bank-layout convention.
type Mapping uint8

const (
	LoROM Mapping = iota
	HiROM
)

func (m Mapping) String() string {
	if m == HiROM {
		return "HiROM"
	}
	return "LoROM"
}

// CoprocessorKind tags the on-cartridge coprocessor, if any.
type CoprocessorKind uint8

const (
	CoprocessorNone CoprocessorKind = iota
	CoprocessorDSP
	CoprocessorSA1
	CoprocessorSuperFX
	CoprocessorUnknown
)

// copierHeaderSize is the optional leading header some ROM dumps carry.
const copierHeaderSize = 512

// header candidate offsets within the ROM image (after any copier
// header has been stripped), relative to the start of the bank the
// candidate lives in.
const (
	loROMHeaderOffset = 0x7FB0
	hiROMHeaderOffset = 0xFFB0
	headerFieldLen    = 0x50
)

// field offsets inside a 0x50-byte header window.
const (
	fieldTitle        = 0x10 // 21 bytes
	fieldTitleLen     = 21
	fieldMapMode      = 0x25
	fieldCartType     = 0x26
	fieldROMSize      = 0x27
	fieldRAMSize      = 0x28
	fieldChecksumComp = 0x2C // 2 bytes LE
	fieldChecksum     = 0x2E // 2 bytes LE
)

// Cartridge exposes byte-addressable ROM and battery-backed SRAM plus
// the mapping metadata the bus needs to translate 24-bit addresses.
type Cartridge struct {
	rom  []byte
	sram []byte

	mapping    Mapping
	coprocKind CoprocessorKind
	title      string
	hasBattery bool
}

// New parses rom and constructs a Cartridge. sram, if non-nil, seeds
// battery-backed RAM from a prior save (spec.md persisted-state layout);
// otherwise RAM is sized from the header and zero-filled.
func New(rom []byte, sram []byte) (*Cartridge, error) {
	rom = stripCopierHeader(rom)

	loScore, loHeader := scoreCandidate(rom, loROMHeaderOffset)
	hiScore, hiHeader := scoreCandidate(rom, hiROMHeaderOffset)

	var (
		mapping Mapping
		header  []byte
		best    int
	)
	// A candidate needs a valid checksum complement or a printable title;
	// a plausible map-mode byte alone is not enough.
	const minAcceptableScore = 5
	switch {
	case loScore < minAcceptableScore && hiScore < minAcceptableScore:
		return nil, ErrUnrecognizedCartridge
	case hiScore > loScore:
		mapping, header, best = HiROM, hiHeader, hiScore
	default:
		mapping, header, best = LoROM, loHeader, loScore
	}
	_ = best

	cart := &Cartridge{
		rom:     rom,
		mapping: mapping,
		title:   decodeTitle(header),
	}

	cart.coprocKind, cart.hasBattery = decodeCartType(header[fieldCartType])

	ramSize := decodeRAMSize(header[fieldRAMSize])
	if sram != nil {
		cart.sram = make([]byte, len(sram))
		copy(cart.sram, sram)
	} else {
		cart.sram = make([]byte, ramSize)
	}

	if cart.coprocKind != CoprocessorNone {
		return nil, ErrUnsupportedCoprocessor
	}

	return cart, nil
}

func stripCopierHeader(rom []byte) []byte {
	if len(rom)%1024 == copierHeaderSize {
		return rom[copierHeaderSize:]
	}
	return rom
}

// scoreCandidate scores a header window by checksum-complement validity
// (the primary, hardware-verifiable signal) and title plausibility (a
// secondary tiebreaker that can never by itself overturn a checksum
// mismatch — per spec.md §4.1, title-field overflow must not misclassify
// the cartridge).
func scoreCandidate(rom []byte, offset int) (score int, header []byte) {
	if offset+headerFieldLen > len(rom) {
		return 0, make([]byte, headerFieldLen)
	}
	header = rom[offset : offset+headerFieldLen]

	checksum := uint16(header[fieldChecksum]) | uint16(header[fieldChecksum+1])<<8
	complement := uint16(header[fieldChecksumComp]) | uint16(header[fieldChecksumComp+1])<<8

	if checksum^complement == 0xFFFF && checksum != 0 {
		score += 100
	}

	if isPrintableTitle(header[fieldTitle : fieldTitle+fieldTitleLen]) {
		score += 5
	}

	mapMode := header[fieldMapMode] & 0x0F
	if mapMode == 0x00 || mapMode == 0x01 || mapMode == 0x02 || mapMode == 0x03 {
		score++
	}

	return score, header
}

func isPrintableTitle(title []byte) bool {
	printable := 0
	for _, b := range title {
		if b >= 0x20 && b < 0x7F {
			printable++
		}
	}
	return printable >= len(title)-2
}

func decodeTitle(header []byte) string {
	raw := header[fieldTitle : fieldTitle+fieldTitleLen]
	end := len(raw)
	for end > 0 && (raw[end-1] == 0x20 || raw[end-1] == 0x00) {
		end--
	}
	return string(raw[:end])
}

func decodeCartType(b byte) (CoprocessorKind, bool) {
	hasBattery := false
	switch b {
	case 0x02, 0x05, 0x06, 0x09, 0x0A:
		hasBattery = true
	}
	switch b & 0x0F {
	case 0x00, 0x01, 0x02:
		return CoprocessorNone, hasBattery
	case 0x03, 0x04, 0x05:
		return CoprocessorDSP, hasBattery
	default:
		return CoprocessorUnknown, hasBattery
	}
}

func decodeRAMSize(b byte) int {
	if b == 0 {
		return 0
	}
	if b > 8 {
		b = 8
	}
	return 1024 << b
}

// Mapping returns the detected bank-layout convention.
func (c *Cartridge) Mapping() Mapping { return c.mapping }

// CoprocessorKind returns the tagged on-cartridge coprocessor.
func (c *Cartridge) CoprocessorKind() CoprocessorKind { return c.coprocKind }

// Title returns the decoded, trimmed cartridge title.
func (c *Cartridge) Title() string { return c.title }

// HasBattery reports whether the cartridge's SRAM is battery-backed.
func (c *Cartridge) HasBattery() bool { return c.hasBattery }

// SRAM returns the live battery-backed RAM slice for persistence.
func (c *Cartridge) SRAM() []byte { return c.sram }

// ResetVector returns the emulation-mode reset vector ($FFFC/$FFFD) as
// translated through the cartridge's own mapping.
func (c *Cartridge) ResetVector() uint16 {
	lo := c.ReadROM(0xFFFC)
	hi := c.ReadROM(0xFFFD)
	return uint16(lo) | uint16(hi)<<8
}

// ReadROM reads a byte from ROM using the bank-0 mirror of the reset/
// interrupt vector table, honoring the detected mapping. This is a
// convenience used for vector reads; general address translation lives
// in internal/bus, which calls TranslateROM for bus-wide reads.
func (c *Cartridge) ReadROM(offsetInBank0 uint16) byte {
	addr, ok := c.TranslateROM(0x00, offsetInBank0)
	if !ok {
		return 0
	}
	return c.rom[addr]
}

// TranslateROM maps a (bank, offset) pair to a flat ROM file index per
// the cartridge's mapping (spec.md §3). ok is false if the address does
// not land in ROM space for this mapping.
func (c *Cartridge) TranslateROM(bank uint8, offset uint16) (int, bool) {
	switch c.mapping {
	case LoROM:
		return translateLoROM(bank, offset, len(c.rom))
	default:
		return translateHiROM(bank, offset, len(c.rom))
	}
}

func translateLoROM(bank uint8, offset uint16, romLen int) (int, bool) {
	b := bank &^ 0x80 // banks $00-$7D and $80-$FF mirror identically
	if offset < 0x8000 {
		return 0, false // $0000-$7FFF is WRAM/MMIO/SRAM space, not ROM
	}
	idx := int(b)*0x8000 + int(offset&0x7FFF)
	if idx >= romLen {
		idx %= romLen
	}
	return idx, true
}

func translateHiROM(bank uint8, offset uint16, romLen int) (int, bool) {
	b := bank &^ 0x80
	if b < 0x40 {
		// mirrored high half of banks $00-$3F/$80-$BF only exposes $8000-$FFFF
		if offset < 0x8000 {
			return 0, false
		}
		idx := int(b)*0x10000 + int(offset)
		if idx >= romLen {
			idx %= romLen
		}
		return idx, true
	}
	idx := int(b-0x40)*0x10000 + int(offset)
	if idx >= romLen {
		idx %= romLen
	}
	return idx, true
}

// TranslateSRAM maps a (bank, offset) pair into the SRAM slice. ok is
// false when the address is not in SRAM space for this mapping or when
// the cartridge has no SRAM.
func (c *Cartridge) TranslateSRAM(bank uint8, offset uint16) (int, bool) {
	if len(c.sram) == 0 {
		return 0, false
	}
	b := bank &^ 0x80
	switch c.mapping {
	case LoROM:
		if b < 0x70 || b > 0x7D || offset >= 0x8000 {
			return 0, false
		}
		idx := int(b-0x70)*0x8000 + int(offset)
		return idx % len(c.sram), true
	default: // HiROM
		if b < 0x20 || b > 0x3F || offset < 0x6000 || offset >= 0x8000 {
			return 0, false
		}
		idx := int(b-0x20)*0x2000 + int(offset-0x6000)
		return idx % len(c.sram), true
	}
}

// ReadSRAM reads a byte at the given translated SRAM index.
func (c *Cartridge) ReadSRAM(idx int) byte { return c.sram[idx] }

// WriteSRAM writes a byte at the given translated SRAM index.
func (c *Cartridge) WriteSRAM(idx int, value byte) { c.sram[idx] = value }

// ReadAt reads a raw ROM byte at a flat file index, used by the bus
// once TranslateROM has resolved the index.
func (c *Cartridge) ReadAt(idx int) byte { return c.rom[idx] }

// Len returns the size of the raw ROM image in bytes.
func (c *Cartridge) Len() int { return len(c.rom) }
