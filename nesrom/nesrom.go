// package nesrom implements support for the NES (iNES, NES2) ROM
// format. https://www.nesdev.org/wiki/INES
package nesrom

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrBadHeader is returned when the input doesn't start with a valid
// iNES header.
var ErrBadHeader = errors.New("not an iNES ROM")

type ROM struct {
	path      string
	h         *header
	trainer   []byte // if present
	prg       []byte // 16384 * x bytes; x from header
	chr       []byte // 8192 * y bytes; y from header
	pcInstRom []byte // if present
	pcPROM    []byte // if present; often missing - see PC10 ROM-Images
}

const (
	TRAINER_SIZE   = 512
	PRG_BLOCK_SIZE = 16384
	CHR_BLOCK_SIZE = 8192
	PC_INST_SIZE   = 8192
	PC_PROM_SIZE   = 32
)

// New reads the ROM image at path.
func New(path string) (*ROM, error) {
	rf, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open ROM file %q: %w", path, err)
	}
	defer rf.Close()

	r, err := NewFromReader(rf)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	r.path = path

	return r, nil
}

// NewFromReader parses a ROM image from r.
func NewFromReader(r io.Reader) (*ROM, error) {
	hbytes := make([]byte, HEADER_SIZE)
	if _, err := io.ReadFull(r, hbytes); err != nil {
		return nil, fmt.Errorf("couldn't read header: %w", err)
	}

	rom := &ROM{h: parseHeader(hbytes)}
	if !rom.h.isINesFormat() {
		return nil, fmt.Errorf("magic %q: %w", rom.h.magic(), ErrBadHeader)
	}

	var err error
	if rom.h.hasTrainer() {
		if rom.trainer, err = readBlock(r, TRAINER_SIZE, "trainer"); err != nil {
			return nil, err
		}
	}

	if rom.prg, err = readBlock(r, PRG_BLOCK_SIZE*int(rom.h.prgSize()), "PRG ROM"); err != nil {
		return nil, err
	}

	if rom.chr, err = readBlock(r, CHR_BLOCK_SIZE*int(rom.h.chrSize()), "CHR ROM"); err != nil {
		return nil, err
	}

	if rom.h.hasPlayChoice() {
		if rom.pcInstRom, err = readBlock(r, PC_INST_SIZE, "PlayChoice INST ROM"); err != nil {
			return nil, err
		}
		// Some old ROMs don't carry the PROM, so its absence is
		// tolerated.
		if p, err := readBlock(r, PC_PROM_SIZE, "PlayChoice PROM"); err == nil {
			rom.pcPROM = p
		}
	}

	return rom, nil
}

func readBlock(r io.Reader, size int, what string) ([]byte, error) {
	b := make([]byte, size)
	if n, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("error reading %s (read %d, wanted %d): %w", what, n, size, err)
	}

	return b, nil
}

func (r *ROM) String() string {
	var sb strings.Builder

	if r.path != "" {
		fmt.Fprintf(&sb, "%s: ", r.path)
	}
	fmt.Fprintf(&sb, "%s\n", r.h)
	fmt.Fprintf(&sb, "Trainer: %d bytes, PRG: %d bytes, CHR: %d bytes", len(r.trainer), len(r.prg), len(r.chr))

	return sb.String()
}

func (r *ROM) NumPrgBlocks() uint8 {
	return r.h.prgSize()
}

func (r *ROM) NumChrBlocks() uint8 {
	return r.h.chrSize()
}

// Prg returns the PRG ROM contents.
func (r *ROM) Prg() []byte {
	return r.prg
}

// Chr returns the CHR ROM contents.
func (r *ROM) Chr() []byte {
	return r.chr
}

// Trainer returns the trainer block, or nil when there isn't one.
func (r *ROM) Trainer() []byte {
	return r.trainer
}

func (r *ROM) PrgRead(addr uint16) uint8 {
	return r.prg[addr]
}

func (r *ROM) ChrRead(addr uint16) uint8 {
	return r.chr[addr]
}

func (r *ROM) MapperNum() uint8 {
	return r.h.mapperNum()
}

func (r *ROM) MirroringMode() uint8 {
	return r.h.mirroringMode()
}

func (r *ROM) HasSaveRAM() bool {
	return r.h.hasPrgRAM()
}

func (r *ROM) PrgRAMSize() uint8 {
	return r.h.prgRAMSize()
}

func (r *ROM) TVSystem() uint8 {
	return r.h.tvSystem()
}

func (r *ROM) IsNES2() bool {
	return r.h.isNES2Format()
}
