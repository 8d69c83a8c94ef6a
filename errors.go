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

import "errors"

// Public sentinel errors for consumer error matching.
var (
	// ErrInvalidData indicates a malformed or truncated Pixlet packet
	// (bad sizes, bad magic numbers, bitstream overrun).
	ErrInvalidData = errors.New("invalid packet data")

	// ErrUnsupported indicates a structurally valid packet this decoder does
	// not support (a version other than 1, or an unsupported sample depth
	// or level count).
	ErrUnsupported = errors.New("unsupported stream parameters")

	// ErrNoTrack indicates no usable Pixlet track was found in a container.
	ErrNoTrack = errors.New("no track found")

	// ErrDimensionChange indicates a packet whose dimensions differ from a
	// Decoder's first packet; a Decoder is sized once and is not resizable.
	ErrDimensionChange = errors.New("frame dimensions changed mid-stream")
)
