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

// PostprocessLuma converts a reconstructed luma plane from signed
// fixed-point wavelet output to full-range unsigned 16-bit samples: negative
// values clamp to zero and values above the depth's maximum clamp to it, then
// the normalised value is gamma-squared and rescaled to [0, 65535].
func PostprocessLuma(dst []uint16, src []int16, width, height, stride int, depth int) {
	factor := 1.0 / float64((int64(1)<<uint(depth))-1)

	pos := 0

	for range height {
		for i := range width {
			v := src[pos+i]
			if v < 0 {
				v = 0
			}

			norm := float64(v) * factor
			if norm > 1 {
				norm = 1
			}

			dst[pos+i] = uint16(norm * norm * 65535)
		}

		pos += stride
	}
}

// PostprocessChroma converts a reconstructed chroma plane from signed
// fixed-point wavelet output to unsigned 16-bit samples: a bias of
// 1<<(depth-1) recenters the signed samples, then the result is left-shifted
// to occupy the full 16-bit range.
func PostprocessChroma(dst []uint16, src []int16, width, height, stride int, depth int) {
	add := int32(1) << uint(depth-1)
	shift := uint(16 - depth)

	pos := 0

	for range height {
		for i := range width {
			dst[pos+i] = uint16((add + int32(src[pos+i])) << shift)
		}

		pos += stride
	}
}
