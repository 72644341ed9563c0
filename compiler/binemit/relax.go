// Package binemit holds the passes sitting between a fully encoded function
// and machine code bytes. Only branch relaxation lives here so far.
package binemit

import (
	"context"

	"nikand.dev/go/heap"
	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/lowlang/low/compiler/ir"
	"github.com/lowlang/low/compiler/isa"
)

type (
	CodeOffset = isa.CodeOffset

	fix struct {
		inst   ir.Inst
		offset CodeOffset
	}

	fixes struct {
		heap.Heap[fix]
	}
)

// RelaxBranches computes the code layout of f: every EBB gets its byte
// offset in f.Offsets, and branches whose destination is out of reach of
// their current encoding are re-encoded with a wider recipe. Returns the
// total code size.
//
// Offsets are published only on success, all EBBs at once.
func RelaxBranches(ctx context.Context, f *ir.Function, tisa ir.TargetIsa) (size CodeOffset, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "relax branches", "func", f.Name)
	defer tr.Finish("err", &err)

	encinfo := tisa.EncInfo()

	q := fixes{Heap: heap.Heap[fix]{Less: fixesLess}}

	offsets := make([]CodeOffset, 0, f.Dfg.NumEbbs())

	for {
		offsets, size = computeOffsets(f, encinfo, offsets)

		q.Data = q.Data[:0]

		collectOutOfRange(f, encinfo, offsets, &q)

		if len(q.Data) == 0 {
			break
		}

		// Widen the earliest branch first; later ones may come into
		// range once preceding code stops moving.
		x := q.Pop()

		enc := f.Encodings.Get(x.inst)

		wider, ok := encinfo.WiderBranch(enc)
		if !ok {
			return 0, errors.New("branch out of range: %v at %#x", x.inst, x.offset)
		}

		if tr.If("widen") {
			tr.Printw("widen branch", "inst", x.inst, "offset", x.offset, "enc", enc, "wider", wider, "from", loc.Caller(0))
		}

		f.Encodings.Set(x.inst, wider)
	}

	f.Offsets.Clear()

	for _, ebb := range f.Layout.Ebbs() {
		f.Offsets.Set(ebb, offsets[ebb])
	}

	return size, nil
}

func computeOffsets(f *ir.Function, encinfo *isa.EncInfo, offsets []CodeOffset) ([]CodeOffset, CodeOffset) {
	offsets = offsets[:0]

	for i := 0; i < f.Dfg.NumEbbs(); i++ {
		offsets = append(offsets, 0)
	}

	var off CodeOffset

	for _, ebb := range f.Layout.Ebbs() {
		offsets[ebb] = off

		it := f.Layout.EbbInsts(ebb)

		for {
			inst, ok := it.Next()
			if !ok {
				break
			}

			off += encinfo.Bytes(f.Encodings.Get(inst))
		}
	}

	return offsets, off
}

func collectOutOfRange(f *ir.Function, encinfo *isa.EncInfo, offsets []CodeOffset, q *fixes) {
	for _, ebb := range f.Layout.Ebbs() {
		off := offsets[ebb]

		it := f.Layout.EbbInsts(ebb)

		for {
			inst, ok := it.Next()
			if !ok {
				break
			}

			d := f.Dfg.InstData(inst)
			enc := f.Encodings.Get(inst)

			if d.Dest != ir.NoEbb && enc.IsLegal() {
				rng := encinfo.BranchRange[enc.Recipe()]

				if rng != 0 && !inRange(off, offsets[d.Dest], rng) {
					q.Push(fix{inst: inst, offset: off})
				}
			}

			off += encinfo.Bytes(enc)
		}
	}
}

func inRange(from, to, rng CodeOffset) bool {
	dist := int64(to) - int64(from)
	if dist < 0 {
		dist = -dist
	}

	return dist <= int64(rng)
}

func fixesLess(d []fix, i, j int) bool { return d[i].offset < d[j].offset }
