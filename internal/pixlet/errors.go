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

// Core decode error sentinels.
//
//revive:disable:exported
var (
	ErrBitstreamOverrun = errors.New("pixlet: bitstream overrun")
	ErrSampleOverrun    = errors.New("pixlet: run length exceeds band budget")
	ErrBadMagic         = errors.New("pixlet: bad highpass band magic")
	ErrBadLevels        = errors.New("pixlet: unsupported wavelet level count")
	ErrBadDepth         = errors.New("pixlet: sample depth out of range")
	ErrBadPrefix        = errors.New("pixlet: highpass prefix bit count out of range")
	ErrBadParam         = errors.New("pixlet: highpass band parameter out of range")
)
