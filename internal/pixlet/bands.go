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

package pixlet

// Levels is the number of wavelet decomposition levels a Pixlet stream must
// declare; any other value is invalid.
const Levels = 4

// NumBands is the number of subbands per plane: one DC (lowpass) band plus
// three AC (highpass) bands per level.
const NumBands = Levels*3 + 1

// Band describes the position and extent of one subband within a plane's
// coefficient buffer.
type Band struct {
	Width, Height int
	X, Y          int
	Size          int
}

// ComputeBands fills the 13-entry band table for a plane of the given
// (already plane-shifted) width and height, per the dyadic decomposition in
// the data model: band 0 is the DC band; bands 1..12 are the three AC bands
// (HL, LH, HH) of each level, from the coarsest level outward.
func ComputeBands(width, height int) [NumBands]Band {
	var bands [NumBands]Band

	bands[0] = Band{
		Width:  width >> Levels,
		Height: height >> Levels,
		Size:   (width >> Levels) * (height >> Levels),
	}

	for i := range Levels * 3 {
		scale := Levels - i/3

		w := width >> scale
		h := height >> scale

		x := 0
		if (i+1)%3 != 2 {
			x = w
		}

		y := 0
		if (i+1)%3 != 1 {
			y = h
		}

		bands[i+1] = Band{
			Width:  w,
			Height: h,
			X:      x,
			Y:      y,
			Size:   w * h,
		}
	}

	return bands
}
