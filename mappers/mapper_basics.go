// Package mappers implements and registers mappers that are
// referenced numerically by iNES and NES2.0 ROM files. A mapper here
// copies cartridge contents into the flat CPU address space.
package mappers

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bdwalton/nescore/nesrom"
)

// ErrUnknownMapper is returned by Get for ids with no registered
// mapper.
var ErrUnknownMapper = errors.New("unknown mapper")

// A global registry of mappers, keyed by mapper id
var allMappers map[uint8]Mapper = map[uint8]Mapper{}

const (
	PRG_BASE   = 0x8000
	PRG_MIRROR = 0xC000
	TRAINER_AT = 0x7000
)

// Target is the memory a mapper loads into. *mos6502.CPU satisfies
// it.
type Target interface {
	Write(addr uint16, val uint8)
}

type Mapper interface {
	ID() uint8
	Name() string
	Load(*nesrom.ROM, Target) error
}

// RegisterMapper makes m available through Get.
func RegisterMapper(m Mapper) {
	allMappers[m.ID()] = m
}

// Get returns the mapper registered for id.
func Get(id uint8) (Mapper, error) {
	m, ok := allMappers[id]
	if !ok {
		return nil, fmt.Errorf("mapper %d: %w", id, ErrUnknownMapper)
	}
	return m, nil
}

// IDs lists the registered mapper ids in ascending order.
func IDs() []uint8 {
	ids := make([]uint8, 0, len(allMappers))
	for id := range allMappers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type baseMapper struct {
	id   uint8
	name string
}

func newBaseMapper(id uint8, name string) *baseMapper {
	return &baseMapper{id: id, name: name}
}

func (bm *baseMapper) ID() uint8 {
	return bm.id
}

func (bm *baseMapper) Name() string {
	return bm.name
}

func (bm *baseMapper) String() string {
	return fmt.Sprintf("%d (%s)", bm.id, bm.name)
}

// copyTo writes data into t starting at addr.
func copyTo(t Target, addr uint16, data []uint8) {
	for i, b := range data {
		t.Write(addr+uint16(i), b)
	}
}

// loadTrainer places the trainer, when present, where the cartridge
// would map it.
func loadTrainer(r *nesrom.ROM, t Target) {
	if tr := r.Trainer(); tr != nil {
		copyTo(t, TRAINER_AT, tr)
	}
}
