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

// UnpcBand undoes the two-dimensional running-sum prediction applied to a
// plane's DC (lowpass) band before entropy coding: each row is a prefix sum
// of the decoded residuals, and each column is in turn a prefix sum across
// rows of that row-summed value. pred is scratch space of at least width
// int16s and is reused (and overwritten) across calls; callers that decode
// multiple planes should keep one pred buffer per plane width.
func UnpcBand(dst []int16, pred []int16, width, height, stride int) {
	for i := range width {
		pred[i] = 0
	}

	pos := 0

	for range height {
		val := pred[0] + dst[pos]
		dst[pos] = val
		pred[0] = val

		for j := 1; j < width; j++ {
			val = pred[j] + dst[pos+j]
			dst[pos+j] = val
			pred[j] = val
			dst[pos+j] += dst[pos+j-1]
		}

		pos += stride
	}
}
