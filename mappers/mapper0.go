package mappers

import (
	"fmt"

	"github.com/bdwalton/nescore/nesrom"
)

func init() {
	RegisterMapper(newMapper0())
}

// mapper0 is NROM: 16KB or 32KB of PRG at 0x8000 with no bank
// switching. A single 16KB bank also appears at 0xC000.
type mapper0 struct {
	*baseMapper
}

func newMapper0() *mapper0 {
	return &mapper0{baseMapper: newBaseMapper(0, "NROM")}
}

func (m *mapper0) Load(r *nesrom.ROM, t Target) error {
	prg := r.Prg()
	switch r.NumPrgBlocks() {
	case 1:
		copyTo(t, PRG_BASE, prg)
		copyTo(t, PRG_MIRROR, prg)
	case 2:
		copyTo(t, PRG_BASE, prg)
	default:
		return fmt.Errorf("%s: %d PRG blocks, want 1 or 2", m.name, r.NumPrgBlocks())
	}

	loadTrainer(r, t)
	return nil
}
