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

// Frame is one decoded Pixlet image in planar YUV420P16 (JPEG/full range),
// matching the format the reference decoder always produces: one luma
// plane at full resolution, two chroma planes subsampled by two in each
// dimension.
type Frame struct {
	Width, Height int // Display dimensions, before level-alignment padding.
	Depth         int // Source sample depth in [8, 15], before expansion to 16 bits.

	Y, U, V []uint16
	StrideY int
	StrideU int
	StrideV int
}

// chromaDims returns the padded chroma plane dimensions for a padded luma
// plane of paddedW x paddedH.
func chromaDims(paddedW, paddedH int) (int, int) {
	return paddedW >> 1, paddedH >> 1
}
