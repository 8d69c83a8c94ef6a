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

// Biorthogonal 5/7-tap inverse wavelet filter, applied one dimension at a
// time across four decomposition levels to reconstruct a plane from its DC
// and AC subbands.

const (
	lowEven0 = -0.07576144003329376
	lowEven1 = 0.8586296626673486
	highEven = 0.3535533905932737

	lowOdd0  = -0.01515228715813062
	lowOdd1  = 0.3687056777514043
	highOdd0 = 0.07071067811865475
	highOdd1 = -0.8485281374238569
)

func clipInt16(v float64) int16 {
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int16(v)
	}
}

// filterScratchLen reports the minimum scratch slice length filter requires
// for a given input size.
func filterScratchLen(maxDim int) int {
	return maxDim + 16
}

// filter merges one level's low half (dest[0:hsize]) and high half
// (dest[hsize:size]) into an interleaved, reconstructed sequence of size
// samples, written back into dest. scratch must have length >=
// filterScratchLen(size) and is clobbered on every call.
func filter(dest []int16, scratch []int16, size int, scale float32) {
	hsize := size / 2

	low := scratch[:hsize+8]
	high := scratch[hsize+8 : 2*hsize+16]

	copy(low[4:4+hsize], dest[:hsize])
	copy(high[4:4+hsize], dest[hsize:size])

	for k := range 4 {
		low[4-(k+1)] = low[4+1+k]
		low[4+hsize+k] = low[4+hsize-1-k]

		high[4-(k+1)] = high[4+k]
		high[4+hsize+k] = high[4+hsize-2-k]
	}

	lowAt := func(i int) float64 { return float64(low[i+4]) }
	highAt := func(i int) float64 { return float64(high[i+4]) }

	for i := range hsize {
		value := lowAt(i+1)*lowEven0 +
			lowAt(i)*lowEven1 +
			lowAt(i-1)*lowEven0 +
			highAt(i)*highEven +
			highAt(i-1)*highEven

		dest[i*2] = clipInt16(value * float64(scale))
	}

	for i := range hsize {
		value := lowAt(i+2)*lowOdd0 +
			lowAt(i+1)*lowOdd1 +
			lowAt(i)*lowOdd1 +
			lowAt(i-1)*lowOdd0 +
			highAt(i+1)*highOdd0 +
			highAt(i)*highOdd1 +
			highAt(i-1)*highOdd0

		dest[i*2+1] = clipInt16(value * float64(scale))
	}
}

// Reconstruct applies nlevels of inverse wavelet synthesis to a plane, in
// place. scaleRow and scaleCol hold the per-level scaling values in header
// order (H-axis, then V-axis) and must each have at least nlevels entries,
// coarsest level first; scratch must have length >=
// filterScratchLen(max(width, height)) and col must have length >= height.
//
// The row pass filters across columns (the H axis) but is scaled by the
// V-axis value, and the column pass is scaled by the H-axis value: this
// cross-wiring matches the reference decoder's reconstruction() and is not
// a naming mistake.
func Reconstruct(dest []int16, width, height, stride, nlevels int, scaleRow, scaleCol []float32, scratch, col []int16) {
	scaledW := width >> nlevels
	scaledH := height >> nlevels

	for lvl := range nlevels {
		scaledW <<= 1
		scaledH <<= 1

		rowScale := scaleCol[lvl]
		colScale := scaleRow[lvl]

		for row := range scaledH {
			off := row * stride
			filter(dest[off:off+scaledW], scratch, scaledW, rowScale)
		}

		for c := range scaledW {
			for k := range scaledH {
				col[k] = dest[k*stride+c]
			}

			filter(col[:scaledH], scratch, scaledH, colScale)

			for k := range scaledH {
				dest[k*stride+c] = col[k]
			}
		}
	}
}
