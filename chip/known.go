package chip

// Built-in profiles for parts commonly attached to RP2040 boards.
// Timings are the datasheet maxima, not typicals.

// W25Q16JV is the 2 MiB Winbond part fitted to the Raspberry Pi Pico.
func W25Q16JV() Profile {
	return Profile{
		Name:        "Winbond W25Q16JV",
		JEDECID:     0xEF7015,
		SizeBytes:   2 * 1024 * 1024,
		EraseUnit:   4096,
		ProgramUnit: 256,
		// [W25Q16JV 9.6 AC Electrical Characteristics] tPP, tSE
		PageProgramMs: 3,
		SectorEraseMs: 400,
	}
}

// W25Q128JV is the 16 MiB Winbond part, the largest flash the XIP
// window can map.
func W25Q128JV() Profile {
	return Profile{
		Name:        "Winbond W25Q128JV",
		JEDECID:     0xEF7018,
		SizeBytes:   16 * 1024 * 1024,
		EraseUnit:   4096,
		ProgramUnit: 256,
		// [W25Q128JV 9.6 AC Electrical Characteristics] tPP, tSE
		PageProgramMs: 3,
		SectorEraseMs: 400,
	}
}

// Known returns the built-in profiles keyed by JEDEC ID.
func Known() map[uint32]Profile {
	return map[uint32]Profile{
		0xEF7015: W25Q16JV(),
		0xEF7018: W25Q128JV(),
	}
}
