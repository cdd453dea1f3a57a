package analyze

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/ezrec/regvm/cpu"
)

// Snapshot is an immutable capture of the whole machine state.
type Snapshot struct {
	Code     []cpu.Instruction
	Register []int
	Pc       int
}

// Capture takes a snapshot of a CPU.
func Capture(c *cpu.Cpu) Snapshot {
	return Snapshot{
		Code:     slices.Clone(c.Program.Code),
		Register: slices.Clone(c.Register),
		Pc:       c.Pc,
	}
}

// Equal returns true if the program, registers and pc are all equal.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Pc == other.Pc &&
		slices.Equal(s.Register, other.Register) &&
		slices.Equal(s.Code, other.Code)
}

// Hash returns the xxhash of the encoded snapshot.
func (s Snapshot) Hash() uint64 {
	buf := make([]byte, 0, 8+len(s.Register)*8+len(s.Code)*cpu.INSTRUCTION_SIZE)
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(s.Pc)))
	for _, value := range s.Register {
		buf = binary.BigEndian.AppendUint64(buf, uint64(int64(value)))
	}
	for _, ins := range s.Code {
		buf = ins.Encode(buf)
	}

	return xxhash.Sum64(buf)
}

type snapshotEntry struct {
	Snapshot
	step int
}

// SnapshotSet is a set of snapshots, each tagged with the step at which it
// was first seen.
type SnapshotSet struct {
	buckets map[uint64][]snapshotEntry
	count   int
}

// NewSnapshotSet creates an empty set.
func NewSnapshotSet() *SnapshotSet {
	return &SnapshotSet{
		buckets: make(map[uint64][]snapshotEntry),
	}
}

// Len returns the number of distinct snapshots.
func (set *SnapshotSet) Len() int {
	return set.count
}

// Insert adds a snapshot. If an equal snapshot is already present, seen is
// true and first is the step it was inserted at.
func (set *SnapshotSet) Insert(s Snapshot, step int) (first int, seen bool) {
	hash := s.Hash()

	bucket := set.buckets[hash]
	for _, entry := range bucket {
		if entry.Equal(s) {
			return entry.step, true
		}
	}

	set.buckets[hash] = append(bucket, snapshotEntry{Snapshot: s, step: step})
	set.count++

	return step, false
}
