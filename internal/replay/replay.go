// Package replay records and plays back a per-tick input-log used by
// poprun (spec.md §8's "replaying a recorded input stream ... produces
// bit-identical state"); no test in this module uses it. It is a
// harness concern, not a new simulation concept: it just gives a
// stream of pop.InputSample values a stable on-disk shape.
package replay

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/flga/popcore/pop"
)

// magic identifies a replay file; version allows the record layout to
// change without silently misreading an older log.
const (
	magic   uint32 = 0x504F5052 // "POPR"
	version uint16 = 1
)

// sample is the fixed 1-byte on-disk encoding of one tick's
// InputSample: bit 0 left, bit 1 right, bit 2 up, bit 3 down, bit 4
// button.
const (
	bitLeft = 1 << iota
	bitRight
	bitUp
	bitDown
	bitButton
)

func encodeSample(in pop.InputSample) byte {
	var b byte
	if in.Left {
		b |= bitLeft
	}
	if in.Right {
		b |= bitRight
	}
	if in.Up {
		b |= bitUp
	}
	if in.Down {
		b |= bitDown
	}
	if in.Button {
		b |= bitButton
	}
	return b
}

func decodeSample(b byte) pop.InputSample {
	return *pop.SampleInput(axisOf(b&bitLeft != 0, b&bitRight != 0), axisOf(b&bitUp != 0, b&bitDown != 0), b&bitButton != 0)
}

func axisOf(neg, pos bool) int {
	switch {
	case neg:
		return -1
	case pos:
		return 1
	default:
		return 0
	}
}

// Write encodes a full tick log: a small header (magic, version,
// count) followed by one byte per tick.
func Write(w io.Writer, samples []pop.InputSample) error {
	if err := binary.Write(w, binary.LittleEndian, magic); err != nil {
		return errors.Wrap(err, "replay: write magic")
	}
	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return errors.Wrap(err, "replay: write version")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(samples))); err != nil {
		return errors.Wrap(err, "replay: write count")
	}
	for _, s := range samples {
		if err := binary.Write(w, binary.LittleEndian, encodeSample(s)); err != nil {
			return errors.Wrap(err, "replay: write sample")
		}
	}
	return nil
}

// Read decodes a tick log written by Write.
func Read(r io.Reader) ([]pop.InputSample, error) {
	var gotMagic uint32
	if err := binary.Read(r, binary.LittleEndian, &gotMagic); err != nil {
		return nil, errors.Wrap(err, "replay: read magic")
	}
	if gotMagic != magic {
		return nil, errors.Errorf("replay: bad magic %#x", gotMagic)
	}

	var gotVersion uint16
	if err := binary.Read(r, binary.LittleEndian, &gotVersion); err != nil {
		return nil, errors.Wrap(err, "replay: read version")
	}
	if gotVersion != version {
		return nil, errors.Errorf("replay: unsupported version %d", gotVersion)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err, "replay: read count")
	}

	samples := make([]pop.InputSample, count)
	for i := range samples {
		var b byte
		if err := binary.Read(r, binary.LittleEndian, &b); err != nil {
			return nil, errors.Wrap(err, "replay: read sample")
		}
		samples[i] = decodeSample(b)
	}
	return samples, nil
}

// Recorder accumulates samples as a run plays, for writing out once
// the session ends. No command in this module uses it.
type Recorder struct {
	samples []pop.InputSample
}

func (r *Recorder) Append(in pop.InputSample) { r.samples = append(r.samples, in) }

func (r *Recorder) WriteTo(w io.Writer) error { return Write(w, r.samples) }
