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

package pixlet_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/loamwood/pixlet"
	pixletint "github.com/loamwood/pixlet/internal/pixlet"
)

// buildSyntheticPacket assembles a minimal, structurally valid Pixlet packet
// whose every plane decodes to all-zero wavelet coefficients. Every AC band
// has all four parameters zero, so each of its samples decodes to zero
// whatever its code, and its payload is the number of zero bits
// ReadHighCoeffs consumes (see acZeroPayloadBits). Each DC pass is one byte
// of zero bits per sample; that decodes to zeros only while a pass holds at
// most one sample, as it does for a 32x32 image (luma DC band 2x2, chroma
// DC band 1x1).
func buildSyntheticPacket(width, height, depth int) []byte {
	var body bytes.Buffer

	for plane := range 3 {
		shift := 0
		if plane > 0 {
			shift = 1
		}

		writePlane(&body, width>>shift, height>>shift)
	}

	var pkt bytes.Buffer

	total := uint32(44 + body.Len())

	_ = binary.Write(&pkt, binary.BigEndian, total)
	_ = binary.Write(&pkt, binary.LittleEndian, uint32(1)) // version
	_ = binary.Write(&pkt, binary.BigEndian, uint32(0))    // reserved
	_ = binary.Write(&pkt, binary.BigEndian, uint32(1))    // stream marker
	_ = binary.Write(&pkt, binary.BigEndian, uint32(0))    // reserved
	_ = binary.Write(&pkt, binary.BigEndian, uint32(width))
	_ = binary.Write(&pkt, binary.BigEndian, uint32(height))
	_ = binary.Write(&pkt, binary.BigEndian, uint32(pixletint.Levels))
	_ = binary.Write(&pkt, binary.BigEndian, uint32(depth))
	_ = binary.Write(&pkt, binary.BigEndian, uint64(0)) // reserved

	pkt.Write(body.Bytes())

	return pkt.Bytes()
}

func writePlane(w *bytes.Buffer, width, height int) {
	for range pixletint.Levels {
		_ = binary.Write(w, binary.BigEndian, int32(1_000_000)) // scaling row
		_ = binary.Write(w, binary.BigEndian, int32(1_000_000)) // scaling col
	}

	_ = binary.Write(w, binary.BigEndian, uint32(0)) // reserved
	_ = binary.Write(w, binary.BigEndian, int16(0))  // DC origin sample

	bands := pixletint.ComputeBands(width, height)

	dcWidth, dcHeight := bands[0].Width, bands[0].Height
	writeZeroBits(w, dcWidth-1)
	writeZeroBits(w, dcHeight-1)
	writeZeroBits(w, (dcWidth-1)*(dcHeight-1))

	for i := 1; i < pixletint.NumBands; i++ {
		_ = binary.Write(w, binary.BigEndian, int32(0)) // a
		_ = binary.Write(w, binary.BigEndian, int32(0)) // b
		_ = binary.Write(w, binary.BigEndian, int32(0)) // c
		_ = binary.Write(w, binary.BigEndian, int32(0)) // d
		_ = binary.Write(w, binary.BigEndian, uint32(0xDEADBEEF))

		writeZeroBits(w, acZeroPayloadBits(bands[i].Size))
	}
}

// acZeroPayloadBits returns how many zero bits ReadHighCoeffs consumes for
// an AC band of size samples when d == 0: one bit per sample, six bits for
// the run code after the first sample, eight for each later run code.
func acZeroPayloadBits(size int) int {
	if size <= 1 {
		return size
	}

	return size + 6 + 8*(size-2)
}

func writeZeroBits(w *bytes.Buffer, numBits int) {
	if numBits < 0 {
		numBits = 0
	}

	w.Write(make([]byte, (numBits+7)/8))
}

func TestDecodeSyntheticAllZeroPacket(t *testing.T) {
	const width, height, depth = 32, 32, 10

	packet := buildSyntheticPacket(width, height, depth)

	dec := pixlet.NewDecoder(pixlet.NewConfig())

	frame, err := dec.Decode(packet)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if frame.Width != width || frame.Height != height {
		t.Fatalf("frame dims = %dx%d, want %dx%d", frame.Width, frame.Height, width, height)
	}

	if frame.Depth != depth {
		t.Fatalf("frame depth = %d, want %d", frame.Depth, depth)
	}

	for i, v := range frame.Y {
		if v != 0 {
			t.Fatalf("Y[%d] = %d, want 0", i, v)
		}
	}

	wantChroma := uint16((1 << (depth - 1)) << (16 - depth))

	for i, v := range frame.U {
		if v != wantChroma {
			t.Fatalf("U[%d] = %d, want %d", i, v, wantChroma)
		}
	}

	for i, v := range frame.V {
		if v != wantChroma {
			t.Fatalf("V[%d] = %d, want %d", i, v, wantChroma)
		}
	}
}

func TestDecodeGrayModeFillsNeutralChroma(t *testing.T) {
	const width, height, depth = 32, 32, 10

	packet := buildSyntheticPacket(width, height, depth)

	cfg := pixlet.NewConfig()
	cfg.Gray = true

	dec := pixlet.NewDecoder(cfg)

	frame, err := dec.Decode(packet)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	for i, v := range frame.U {
		if v != 0x8000 {
			t.Fatalf("U[%d] = %#04x, want 0x8000 in gray mode", i, v)
		}
	}

	for i, v := range frame.V {
		if v != 0x8000 {
			t.Fatalf("V[%d] = %#04x, want 0x8000 in gray mode", i, v)
		}
	}
}

func TestDecodeRejectsShortPacket(t *testing.T) {
	dec := pixlet.NewDecoder(pixlet.NewConfig())

	if _, err := dec.Decode(make([]byte, 10)); !errors.Is(err, pixlet.ErrInvalidData) {
		t.Fatalf("Decode(10 zero bytes) = %v, want ErrInvalidData", err)
	}
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	packet := buildSyntheticPacket(32, 32, 10)
	binary.LittleEndian.PutUint32(packet[4:8], 2)

	cfg := pixlet.NewConfig()

	dec := pixlet.NewDecoder(cfg)

	if _, err := dec.Decode(packet); !errors.Is(err, pixlet.ErrUnsupported) {
		t.Fatalf("Decode with version=2 = %v, want ErrUnsupported", err)
	}
}

func TestDecodeTreatUnknownVersionAsErrorFalseDecodesAnyway(t *testing.T) {
	packet := buildSyntheticPacket(32, 32, 10)
	binary.LittleEndian.PutUint32(packet[4:8], 2)

	cfg := pixlet.NewConfig()
	cfg.TreatUnknownVersionAsError = false

	dec := pixlet.NewDecoder(cfg)

	if _, err := dec.Decode(packet); err != nil {
		t.Fatalf("Decode with lenient version handling: %v", err)
	}
}

func TestDecodeRejectsDimensionChange(t *testing.T) {
	dec := pixlet.NewDecoder(pixlet.NewConfig())

	if _, err := dec.Decode(buildSyntheticPacket(32, 32, 10)); err != nil {
		t.Fatalf("first Decode: %v", err)
	}

	if _, err := dec.Decode(buildSyntheticPacket(64, 64, 10)); !errors.Is(err, pixlet.ErrDimensionChange) {
		t.Fatalf("Decode after a dimension change = %v, want ErrDimensionChange", err)
	}
}
