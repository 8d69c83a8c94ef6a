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

//nolint:gosec // Integer conversions match Apple reference C implementation's fixed-width arithmetic.
package pixlet

import (
	"fmt"

	pixletint "github.com/loamwood/pixlet/internal/pixlet"
)

const (
	minPacketSize = 44
	streamMarker  = 1
	chromaNeutral = 0x8000
)

// alignUp rounds n up to the next multiple of to, which must be a power of two.
func alignUp(n, to int) int {
	return (n + to - 1) &^ (to - 1)
}

// Decoder decodes one Pixlet bitstream into successive Frames. Its internal
// buffers are sized from the first packet it decodes and reused for every
// packet after that, so a single Decoder is meant to be fed all the packets
// of one video track (or one still image), not packets from unrelated
// streams.
type Decoder struct {
	cfg Config

	paddedW, paddedH int
	planes           [3]*pixletint.Plane

	frame *Frame
}

// NewDecoder returns a Decoder configured per cfg. Pass NewConfig() for the
// default behaviour.
func NewDecoder(cfg Config) *Decoder {
	return &Decoder{cfg: cfg}
}

// Decode decodes one Pixlet packet and returns the resulting Frame. The
// returned Frame aliases buffers owned by the Decoder and is only valid
// until the next call to Decode.
func (d *Decoder) Decode(pkt []byte) (*Frame, error) {
	br := pixletint.NewByteReader(pkt)

	pktSize, err := br.BE32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading packet size: %w", ErrInvalidData, err)
	}

	if pktSize <= minPacketSize || int(pktSize)-4 > br.Len() {
		return nil, fmt.Errorf("%w: invalid packet size %d", ErrInvalidData, pktSize)
	}

	version, err := br.LE32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading version: %w", ErrInvalidData, err)
	}

	if version != 1 {
		if d.cfg.TreatUnknownVersionAsError {
			return nil, fmt.Errorf("%w: stream version %d", ErrUnsupported, version)
		}

		d.cfg.Logger.Warn().Uint32("version", version).Msg("pixlet: decoding unrecognised stream version as v1")
	}

	if err := br.Skip(4); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	marker, err := br.BE32()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	if marker != streamMarker {
		return nil, fmt.Errorf("%w: bad stream marker 0x%08x", ErrInvalidData, marker)
	}

	if err := br.Skip(4); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	width, err := br.BE32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading width: %w", ErrInvalidData, err)
	}

	height, err := br.BE32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading height: %w", ErrInvalidData, err)
	}

	levels, err := br.BE32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading level count: %w", ErrInvalidData, err)
	}

	if levels != pixletint.Levels {
		return nil, fmt.Errorf("%w: %d-level wavelet", ErrUnsupported, levels)
	}

	depth, err := br.BE32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading depth: %w", ErrInvalidData, err)
	}

	if depth < 8 || depth > 15 {
		return nil, fmt.Errorf("%w: sample depth %d", ErrUnsupported, depth)
	}

	if err := br.Skip(8); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	align := 1 << (pixletint.Levels + 1)
	paddedW := alignUp(int(width), align)
	paddedH := alignUp(int(height), align)

	if d.planes[0] == nil {
		d.allocate(paddedW, paddedH)
	} else if paddedW != d.paddedW || paddedH != d.paddedH {
		return nil, ErrDimensionChange
	}

	d.frame.Width = int(width)
	d.frame.Height = int(height)
	d.frame.Depth = int(depth)

	planeCount := 3
	if d.cfg.Gray {
		planeCount = 1
	}

	for p := range planeCount {
		if err := d.decodePlane(p, br); err != nil {
			return nil, fmt.Errorf("%w: plane %d: %w", ErrInvalidData, p, err)
		}
	}

	d.postprocess(planeCount, int(depth))

	return d.frame, nil
}

func (d *Decoder) allocate(paddedW, paddedH int) {
	chromaW, chromaH := chromaDims(paddedW, paddedH)

	d.paddedW, d.paddedH = paddedW, paddedH
	d.planes[0] = pixletint.NewPlane(paddedW, paddedH, paddedW)
	d.planes[1] = pixletint.NewPlane(chromaW, chromaH, chromaW)
	d.planes[2] = pixletint.NewPlane(chromaW, chromaH, chromaW)

	d.frame = &Frame{
		Y:       make([]uint16, paddedW*paddedH),
		U:       make([]uint16, chromaW*chromaH),
		V:       make([]uint16, chromaW*chromaH),
		StrideY: paddedW,
		StrideU: chromaW,
		StrideV: chromaW,
	}
}

// decodePlane decodes one colour plane starting at br's current position,
// advancing br past everything the plane consumes: the per-level scaling
// header, the DC band, and the twelve AC bands, in that order.
func (d *Decoder) decodePlane(p int, br *pixletint.ByteReader) error {
	plane := d.planes[p]

	if err := plane.DecodeHeader(br); err != nil {
		return fmt.Errorf("scaling header: %w", err)
	}

	n, err := plane.DecodeDC(br.Rest())
	if err != nil {
		return fmt.Errorf("DC band: %w", err)
	}

	if err := br.Skip(n); err != nil {
		return fmt.Errorf("DC band: %w", err)
	}

	if br.Len() <= 0 {
		return ErrInvalidData
	}

	for band := 1; band < pixletint.NumBands; band++ {
		n, err := plane.DecodeAC(band, br.Rest())
		if err != nil {
			return fmt.Errorf("AC band %d: %w", band, err)
		}

		if err := br.Skip(n); err != nil {
			return fmt.Errorf("AC band %d: %w", band, err)
		}
	}

	plane.Reconstruct()

	return nil
}

func (d *Decoder) postprocess(planeCount, depth int) {
	luma := d.planes[0]
	pixletint.PostprocessLuma(d.frame.Y, luma.Coeffs, d.paddedW, d.paddedH, luma.Stride, depth)

	chromaW, chromaH := chromaDims(d.paddedW, d.paddedH)

	if planeCount < 3 {
		for i := range d.frame.U {
			d.frame.U[i] = chromaNeutral
		}

		for i := range d.frame.V {
			d.frame.V[i] = chromaNeutral
		}

		return
	}

	cb, cr := d.planes[1], d.planes[2]
	pixletint.PostprocessChroma(d.frame.U, cb.Coeffs, chromaW, chromaH, cb.Stride, depth)
	pixletint.PostprocessChroma(d.frame.V, cr.Coeffs, chromaW, chromaH, cr.Stride, depth)
}
