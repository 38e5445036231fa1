// Package chip describes serial flash chip parameters: identity,
// geometry and datasheet timings. Profiles can be loaded from YAML or
// taken from the built-in table of known parts.
package chip

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile holds the parameters of one flash chip model.
type Profile struct {
	Name string `yaml:"name"`

	// JEDECID is the three-byte manufacturer-and-model ID, e.g.
	// 0xEF7015 for a Winbond W25Q16JV.
	JEDECID uint32 `yaml:"jedec_id"`

	// UniqueID is the hex-encoded factory unique ID of one concrete
	// part, when known. Empty means the chip (or this profile) has no
	// unique ID; queries then return garbage.
	UniqueID string `yaml:"unique_id"`

	// SizeBytes is the chip capacity.
	SizeBytes uint32 `yaml:"size_bytes"`

	// EraseUnit is the smallest erasable region.
	EraseUnit uint32 `yaml:"erase_unit"`

	// ProgramUnit is the smallest programmable granularity.
	ProgramUnit uint32 `yaml:"program_unit"`

	// PageProgramMs is the datasheet page-program cycle time (tPP).
	PageProgramMs int `yaml:"page_program_ms"`

	// SectorEraseMs is the datasheet sector-erase cycle time (tSE).
	SectorEraseMs int `yaml:"sector_erase_ms"`
}

// PageProgramTime returns tPP as a duration.
func (p *Profile) PageProgramTime() time.Duration {
	return time.Duration(p.PageProgramMs) * time.Millisecond
}

// SectorEraseTime returns tSE as a duration.
func (p *Profile) SectorEraseTime() time.Duration {
	return time.Duration(p.SectorEraseMs) * time.Millisecond
}

// UniqueIDBytes decodes the profile's unique ID. Returns nil for a
// profile without one.
func (p *Profile) UniqueIDBytes() ([]byte, error) {
	if p.UniqueID == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(p.UniqueID)
	if err != nil {
		return nil, fmt.Errorf("profile %q: unique_id is not valid hex: %w", p.Name, err)
	}
	return b, nil
}

// Parse unmarshals and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and validates a YAML profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return Parse(data)
}
