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

import "github.com/rs/zerolog"

// Config controls optional Decoder behaviour. Unlike ALAC or AAC, a Pixlet
// packet is fully self-describing: width, height, level count and sample
// depth all live in the packet header, so there is no out-of-band magic
// cookie to parse here.
type Config struct {
	// Gray decodes only the luma plane, filling chroma with the neutral
	// midpoint value (0x8000) instead of decoding it. Skips one third of
	// the entropy-decode and reconstruction work.
	Gray bool

	// TreatUnknownVersionAsError rejects any packet whose version field is
	// not 1 with ErrUnsupported. When false, an unknown version is logged
	// and decoding proceeds anyway, on the assumption the wire format did
	// not change. NewConfig sets it to true; a zero-value Config leaves it
	// false.
	TreatUnknownVersionAsError bool

	// Logger receives structured decode diagnostics. The zero value
	// (zerolog.Nop()) discards all log output.
	Logger zerolog.Logger
}

// NewConfig returns the default Decoder configuration: chroma enabled,
// unknown stream versions rejected, logging disabled.
func NewConfig() Config {
	return Config{
		TreatUnknownVersionAsError: true,
		Logger:                     zerolog.Nop(),
	}
}
