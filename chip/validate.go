package chip

import (
	"encoding/hex"
	"fmt"
)

// maxFlashSize is the largest QSPI flash addressable through the XIP
// window, 16 MiB.
const maxFlashSize = 16 * 1024 * 1024

// Validate checks profile correctness.
// It performs declarative validation only.
// It MUST NOT mutate the profile.
func Validate(p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}
	if p.Name == "" {
		return fmt.Errorf("profile: name required")
	}

	if p.JEDECID == 0 || p.JEDECID > 0xFFFFFF {
		return fmt.Errorf("profile %q: jedec_id 0x%X is not a three-byte ID", p.Name, p.JEDECID)
	}

	if p.EraseUnit == 0 || p.EraseUnit&(p.EraseUnit-1) != 0 {
		return fmt.Errorf("profile %q: erase_unit %d must be a power of two", p.Name, p.EraseUnit)
	}
	if p.ProgramUnit == 0 || p.ProgramUnit&(p.ProgramUnit-1) != 0 {
		return fmt.Errorf("profile %q: program_unit %d must be a power of two", p.Name, p.ProgramUnit)
	}
	if p.EraseUnit%p.ProgramUnit != 0 {
		return fmt.Errorf("profile %q: erase_unit %d must be a multiple of program_unit %d",
			p.Name, p.EraseUnit, p.ProgramUnit)
	}

	if p.SizeBytes == 0 || p.SizeBytes%p.EraseUnit != 0 {
		return fmt.Errorf("profile %q: size_bytes %d must be a non-zero multiple of erase_unit %d",
			p.Name, p.SizeBytes, p.EraseUnit)
	}
	if p.SizeBytes > maxFlashSize {
		return fmt.Errorf("profile %q: size_bytes %d exceeds the %d-byte XIP window",
			p.Name, p.SizeBytes, maxFlashSize)
	}

	if p.UniqueID != "" {
		b, err := hex.DecodeString(p.UniqueID)
		if err != nil {
			return fmt.Errorf("profile %q: unique_id is not valid hex", p.Name)
		}
		// Winbond parts have 8-byte IDs; LCSC/Zetta parts have 16.
		if len(b) != 8 && len(b) != 16 {
			return fmt.Errorf("profile %q: unique_id must be 8 or 16 bytes, got %d", p.Name, len(b))
		}
	}

	if p.PageProgramMs < 0 || p.SectorEraseMs < 0 {
		return fmt.Errorf("profile %q: timing values must not be negative", p.Name)
	}

	return nil
}
