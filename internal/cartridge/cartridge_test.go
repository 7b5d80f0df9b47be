package cartridge

import "testing"

// buildLoROM constructs a minimal 32KB LoROM image with a valid header
// at the canonical offset and a correct checksum complement.
func buildLoROM(size int) []byte {
	rom := make([]byte, size)
	header := rom[loROMHeaderOffset : loROMHeaderOffset+headerFieldLen]
	copy(header[fieldTitle:], []byte("TEST GAME          "))
	header[fieldMapMode] = 0x20
	header[fieldCartType] = 0x00
	header[fieldROMSize] = 0x08
	header[fieldRAMSize] = 0x01

	checksum := uint16(0xBEEF)
	header[fieldChecksum] = byte(checksum)
	header[fieldChecksum+1] = byte(checksum >> 8)
	comp := ^checksum
	header[fieldChecksumComp] = byte(comp)
	header[fieldChecksumComp+1] = byte(comp >> 8)

	rom[0x7FFC] = 0x00
	rom[0x7FFD] = 0x80
	return rom
}

func buildHiROM(size int) []byte {
	rom := make([]byte, size)
	header := rom[hiROMHeaderOffset : hiROMHeaderOffset+headerFieldLen]
	copy(header[fieldTitle:], []byte("HIROM GAME          "))
	header[fieldMapMode] = 0x21
	header[fieldCartType] = 0x00
	header[fieldROMSize] = 0x0A
	header[fieldRAMSize] = 0x00

	checksum := uint16(0x1234)
	header[fieldChecksum] = byte(checksum)
	header[fieldChecksum+1] = byte(checksum >> 8)
	comp := ^checksum
	header[fieldChecksumComp] = byte(comp)
	header[fieldChecksumComp+1] = byte(comp >> 8)

	rom[0xFFFC] = 0x00
	rom[0xFFFD] = 0xC0
	return rom
}

func TestNewDetectsLoROM(t *testing.T) {
	cart, err := New(buildLoROM(0x8000), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cart.Mapping() != LoROM {
		t.Fatalf("mapping = %v, want LoROM", cart.Mapping())
	}
	if cart.Title() != "TEST GAME" {
		t.Fatalf("title = %q", cart.Title())
	}
}

func TestNewDetectsHiROM(t *testing.T) {
	cart, err := New(buildHiROM(0x10000), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cart.Mapping() != HiROM {
		t.Fatalf("mapping = %v, want HiROM", cart.Mapping())
	}
}

func TestNewStripsCopierHeader(t *testing.T) {
	rom := buildLoROM(0x8000)
	withHeader := append(make([]byte, copierHeaderSize), rom...)
	cart, err := New(withHeader, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cart.Mapping() != LoROM {
		t.Fatalf("mapping = %v, want LoROM", cart.Mapping())
	}
}

func TestNewRejectsUnrecognized(t *testing.T) {
	rom := make([]byte, 0x8000)
	if _, err := New(rom, nil); err != ErrUnrecognizedCartridge {
		t.Fatalf("err = %v, want ErrUnrecognizedCartridge", err)
	}
}

func TestNewRejectsCoprocessor(t *testing.T) {
	rom := buildLoROM(0x8000)
	rom[loROMHeaderOffset+fieldCartType] = 0x03 // DSP
	if _, err := New(rom, nil); err != ErrUnsupportedCoprocessor {
		t.Fatalf("err = %v, want ErrUnsupportedCoprocessor", err)
	}
}

func TestResetVector(t *testing.T) {
	cart, err := New(buildLoROM(0x8000), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := cart.ResetVector(); got != 0x8000 {
		t.Fatalf("ResetVector() = %#04x, want $8000", got)
	}
}

func TestSRAMRoundTrip(t *testing.T) {
	saved := make([]byte, 2048)
	saved[10] = 0x42
	cart, err := New(buildLoROM(0x8000), saved)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cart.SRAM()[10] != 0x42 {
		t.Fatalf("SRAM not restored from save data")
	}
	idx, ok := cart.TranslateSRAM(0x70, 0x0005)
	if !ok {
		t.Fatalf("TranslateSRAM: not ok")
	}
	cart.WriteSRAM(idx, 0x99)
	if cart.ReadSRAM(idx) != 0x99 {
		t.Fatalf("SRAM write/read mismatch")
	}
}

func TestTranslateLoROMMirrors(t *testing.T) {
	cart, err := New(buildLoROM(0x8000), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	idxLow, ok := cart.TranslateROM(0x00, 0x8000)
	if !ok {
		t.Fatalf("bank $00 $8000 should be ROM")
	}
	idxHigh, ok := cart.TranslateROM(0x80, 0x8000)
	if !ok {
		t.Fatalf("bank $80 $8000 should be ROM")
	}
	if idxLow != idxHigh {
		t.Fatalf("bank $00 and $80 should mirror: %d != %d", idxLow, idxHigh)
	}
	if _, ok := cart.TranslateROM(0x00, 0x0000); ok {
		t.Fatalf("bank $00 offset $0000 should not be ROM under LoROM")
	}
}
