/*
   Copyright Loamwood.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/abema/go-mp4"
)

// Sample is the byte offset and size of a single Pixlet packet inside an
// ISOBMFF (MOV/MP4) file.
type Sample struct {
	Offset uint64
	Size   uint32
}

// Track describes the Pixlet video track located in a container, in
// decode order.
type Track struct {
	Samples   []Sample
	TimeScale uint32
}

var boxTypePxlt = mp4.StrToBoxType("pxlt")

// FindPixletTrack scans r for the first video track whose sample
// description identifies it as a Pixlet ('pxlt') track, and returns its
// sample table. r's position is left unspecified on return; callers should
// seek before reading samples.
func FindPixletTrack(r io.ReadSeeker) (*Track, error) {
	var (
		track   *Track
		matched bool
	)

	_, err := mp4.ReadBoxStructure(r, func(h *mp4.ReadHandle) (interface{}, error) {
		switch h.BoxInfo.Type {
		case mp4.BoxTypeMoov(), mp4.BoxTypeTrak(), mp4.BoxTypeMdia(), mp4.BoxTypeMinf(), mp4.BoxTypeStbl():
			return h.Expand()

		case mp4.BoxTypeStsd():
			matched = false

			if track != nil {
				return nil, nil //nolint:nilnil // a Pixlet track was already found; later tracks are ignored.
			}

			box, _, err := h.ReadPayload()
			if err != nil {
				return nil, fmt.Errorf("reading stsd: %w", err)
			}

			if containsPxlt(box) {
				matched = true
			}

			return h.Expand()

		case boxTypePxlt:
			matched = true

			return nil, nil //nolint:nilnil // go-mp4 handler contract: nil, nil means "don't descend further".

		case mp4.BoxTypeStsz():
			if !matched {
				return nil, nil //nolint:nilnil
			}

			box, _, err := h.ReadPayload()
			if err != nil {
				return nil, fmt.Errorf("reading stsz: %w", err)
			}

			stsz, ok := box.(*mp4.Stsz)
			if !ok {
				return nil, ErrMalformedStbl
			}

			t := ensureTrack(&track)
			t.Samples = sizesFromStsz(stsz)

			return nil, nil //nolint:nilnil

		case mp4.BoxTypeStco(), mp4.BoxTypeCo64(), mp4.BoxTypeStsc():
			if !matched || track == nil {
				return nil, nil //nolint:nilnil
			}

			return readLayoutBox(h, track)
		}

		return nil, nil //nolint:nilnil
	})
	if err != nil {
		return nil, fmt.Errorf("walking box structure: %w", err)
	}

	if track == nil || len(track.Samples) == 0 {
		return nil, ErrNoPixletTrack
	}

	return track, nil
}

func ensureTrack(track **Track) *Track {
	if *track == nil {
		*track = &Track{}
	}

	return *track
}

// containsPxlt reports whether a decoded stsd box's raw child payload
// mentions the 'pxlt' sample entry type. go-mp4 does not register a typed
// sample-entry box for Pixlet, so entries it cannot interpret are kept as
// opaque bytes; this falls back to a direct four-character-code scan of
// those bytes rather than a structured field lookup.
func containsPxlt(box mp4.IBox) bool {
	stsd, ok := box.(*mp4.Stsd)
	if !ok {
		return false
	}

	return bytes.Contains(mustMarshal(stsd), []byte("pxlt"))
}

func mustMarshal(box mp4.IBox) []byte {
	var buf bytes.Buffer

	if _, err := mp4.Marshal(&buf, box, mp4.Context{}); err != nil {
		return nil
	}

	return buf.Bytes()
}

func readLayoutBox(h *mp4.ReadHandle, track *Track) (interface{}, error) {
	box, _, err := h.ReadPayload()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", h.BoxInfo.Type, err)
	}

	switch b := box.(type) {
	case *mp4.Stsc:
		applyStsc(track, b)
	case *mp4.Stco:
		applyChunkOffsets(track, stco32(b.ChunkOffset))
	case *mp4.Co64:
		applyChunkOffsets(track, b.ChunkOffset)
	}

	return nil, nil //nolint:nilnil
}

func stco32(offsets []uint32) []uint64 {
	out := make([]uint64, len(offsets))
	for i, o := range offsets {
		out[i] = uint64(o)
	}

	return out
}

func sizesFromStsz(stsz *mp4.Stsz) []Sample {
	if stsz.SampleSize != 0 {
		samples := make([]Sample, stsz.SampleCount)
		for i := range samples {
			samples[i].Size = stsz.SampleSize
		}

		return samples
	}

	samples := make([]Sample, len(stsz.EntrySize))
	for i, size := range stsz.EntrySize {
		samples[i].Size = size
	}

	return samples
}

// applyStsc stashes the sample-to-chunk table as placeholder chunk indices
// in each sample's Offset field; applyChunkOffsets resolves those indices
// into real byte offsets once the chunk offset table is known. The two
// boxes can arrive in either order inside stbl.
func applyStsc(track *Track, stsc *mp4.Stsc) {
	sample := 0

	for i, entry := range stsc.Entries {
		samplesPerChunk := int(entry.SamplesPerChunk)

		nextFirstChunk := ^uint32(0)
		if i+1 < len(stsc.Entries) {
			nextFirstChunk = stsc.Entries[i+1].FirstChunk
		}

		for chunk := entry.FirstChunk; chunk < nextFirstChunk && sample < len(track.Samples); chunk++ {
			for range samplesPerChunk {
				if sample >= len(track.Samples) {
					break
				}

				track.Samples[sample].Offset = uint64(chunk)
				sample++
			}
		}
	}
}

func applyChunkOffsets(track *Track, chunkOffsets []uint64) {
	runStart := 0

	for sample := range track.Samples {
		chunk := track.Samples[sample].Offset

		if int(chunk)-1 >= len(chunkOffsets) {
			continue
		}

		if sample == 0 || track.Samples[sample-1].Offset != chunk {
			runStart = sample
		}

		within := uint64(0)
		for i := runStart; i < sample; i++ {
			within += uint64(track.Samples[i].Size)
		}

		track.Samples[sample].Offset = chunkOffsets[chunk-1] + within
	}
}
