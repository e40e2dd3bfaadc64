package ingest

import "github.com/lgn-lvx3/pge-nrg-api/entity"

// Accumulator buffers validated records up to a fixed capacity. Records
// keep their arrival order within and across batches, and a yielded batch
// is never retained, so peak memory stays bounded by one batch.
type Accumulator struct {
	capacity int
	buf      []entity.EnergyEntryEntity
}

func NewAccumulator(capacity int) *Accumulator {
	return &Accumulator{
		capacity: capacity,
		buf:      make([]entity.EnergyEntryEntity, 0, capacity),
	}
}

// Add appends rec to the current batch. When the batch reaches capacity
// it is returned and a fresh empty one is started; otherwise Add returns
// nil.
func (a *Accumulator) Add(rec entity.EnergyEntryEntity) []entity.EnergyEntryEntity {
	a.buf = append(a.buf, rec)
	if len(a.buf) < a.capacity {
		return nil
	}
	full := a.buf
	a.buf = make([]entity.EnergyEntryEntity, 0, a.capacity)
	return full
}

// Flush returns whatever partial batch remains. An empty buffer yields
// nil, which callers treat as a no-op.
func (a *Accumulator) Flush() []entity.EnergyEntryEntity {
	if len(a.buf) == 0 {
		return nil
	}
	rest := a.buf
	a.buf = make([]entity.EnergyEntryEntity, 0, a.capacity)
	return rest
}

// Len reports the size of the pending partial batch.
func (a *Accumulator) Len() int {
	return len(a.buf)
}
