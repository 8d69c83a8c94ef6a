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
	"errors"
	"testing"

	"github.com/loamwood/pixlet/internal/pixlet"
)

func TestBitReaderGetBits(t *testing.T) {
	var br pixlet.BitReader

	br.Reset([]byte{0b1010_1100, 0b1111_0000})

	v, err := br.GetBits(4)
	if err != nil || v != 0b1010 {
		t.Fatalf("GetBits(4) = %d, %v, want 0b1010, nil", v, err)
	}

	v, err = br.GetBits(8)
	if err != nil || v != 0b1100_1111 {
		t.Fatalf("GetBits(8) = %08b, %v, want 0b11001111, nil", v, err)
	}

	v, err = br.GetBits(4)
	if err != nil || v != 0b0000 {
		t.Fatalf("GetBits(4) = %04b, %v, want 0, nil", v, err)
	}
}

func TestBitReaderShowBitsDoesNotAdvance(t *testing.T) {
	var br pixlet.BitReader

	br.Reset([]byte{0xFF, 0x00})

	if _, err := br.ShowBits(6); err != nil {
		t.Fatalf("ShowBits: %v", err)
	}

	if got := br.BitsConsumed(); got != 0 {
		t.Fatalf("ShowBits advanced position to %d, want 0", got)
	}

	v, err := br.GetBits(6)
	if err != nil || v != 0b111111 {
		t.Fatalf("GetBits(6) = %06b, %v, want all-ones", v, err)
	}
}

func TestBitReaderOverrun(t *testing.T) {
	var br pixlet.BitReader

	br.Reset([]byte{0xFF})

	if _, err := br.GetBits(8); err != nil {
		t.Fatalf("GetBits(8) on a full byte: %v", err)
	}

	if _, err := br.GetBit(); !errors.Is(err, pixlet.ErrBitstreamOverrun) {
		t.Fatalf("GetBit past end = %v, want ErrBitstreamOverrun", err)
	}
}

func TestBitReaderGetUnary(t *testing.T) {
	var br pixlet.BitReader

	// 0b1110_0000: three leading ones, then a zero.
	br.Reset([]byte{0b1110_0000})

	n, err := br.GetUnary(8)
	if err != nil {
		t.Fatalf("GetUnary: %v", err)
	}

	if n != 3 {
		t.Fatalf("GetUnary = %d, want 3", n)
	}

	if got := br.BitsConsumed(); got != 4 {
		t.Fatalf("BitsConsumed = %d, want 4 (3 ones + terminating zero)", got)
	}
}

func TestBitReaderGetUnaryEscapesAtLimit(t *testing.T) {
	var br pixlet.BitReader

	br.Reset([]byte{0xFF, 0xFF})

	n, err := br.GetUnary(8)
	if err != nil {
		t.Fatalf("GetUnary: %v", err)
	}

	if n != 8 {
		t.Fatalf("GetUnary = %d, want 8 (escape, no terminator found)", n)
	}
}

func TestBitReaderAlign(t *testing.T) {
	var br pixlet.BitReader

	br.Reset([]byte{0xFF, 0xFF})

	if _, err := br.GetBits(3); err != nil {
		t.Fatalf("GetBits: %v", err)
	}

	br.Align()

	if got := br.BitsConsumed(); got != 8 {
		t.Fatalf("BitsConsumed after Align = %d, want 8", got)
	}

	if got := br.BytesConsumed(); got != 1 {
		t.Fatalf("BytesConsumed after Align = %d, want 1", got)
	}
}
