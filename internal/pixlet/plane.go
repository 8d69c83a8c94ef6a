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

// Plane holds the decode-time state for one colour plane: its dimensions,
// subband geometry, and the scratch buffers shared across the DC band,
// every AC band, the lowpass predictor and the wavelet reconstruction.
type Plane struct {
	Width, Height int
	Stride        int
	Bands         [NumBands]Band

	Coeffs []int16 // Stride*Height samples, row stride = Stride.

	scaleRow [Levels]float32
	scaleCol [Levels]float32

	pred    []int16
	scratch []int16
	col     []int16
	bitr    BitReader
}

// NewPlane allocates a Plane sized for a width x height image component.
// stride must be >= width and is normally the plane's row pitch in samples.
func NewPlane(width, height, stride int) *Plane {
	p := &Plane{
		Width:  width,
		Height: height,
		Stride: stride,
		Bands:  ComputeBands(width, height),
		Coeffs: make([]int16, stride*height),
	}

	maxDim := width
	if height > maxDim {
		maxDim = height
	}

	p.pred = make([]int16, width>>Levels)
	p.scratch = make([]int16, filterScratchLen(maxDim))
	p.col = make([]int16, height)

	return p
}

// DecodeHeader reads the per-plane scaling table and the DC band's origin
// sample, per the layout emitted ahead of the DC band's entropy-coded body.
func (p *Plane) DecodeHeader(br *ByteReader) error {
	for i := Levels - 1; i >= 0; i-- {
		row, err := br.SBE32()
		if err != nil {
			return err
		}

		col, err := br.SBE32()
		if err != nil {
			return err
		}

		if row == 0 || col == 0 {
			return ErrBadParam
		}

		p.scaleRow[i] = 1000000.0 / float32(row)
		p.scaleCol[i] = 1000000.0 / float32(col)
	}

	if err := br.Skip(4); err != nil {
		return err
	}

	origin, err := br.SBE16()
	if err != nil {
		return err
	}

	p.Coeffs[0] = origin

	return nil
}

// DecodeDC decodes the DC (lowpass) band body from buf, which starts with
// the DC band's entropy-coded payload. It leaves the prediction residuals in
// place; Reconstruct applies the lowpass predictor. It returns the number of
// bytes of buf consumed.
func (p *Plane) DecodeDC(buf []byte) (int, error) {
	band := p.Bands[0]
	stride := p.Stride

	p.bitr.Reset(buf)

	if _, err := ReadLowCoeffs(&p.bitr, p.Coeffs[1:], band.Width-1, band.Width-1, 0); err != nil {
		return 0, err
	}

	if _, err := ReadLowCoeffs(&p.bitr, p.Coeffs[stride:], band.Height-1, 1, stride); err != nil {
		return 0, err
	}

	n, err := ReadLowCoeffs(&p.bitr, p.Coeffs[stride+1:], (band.Width-1)*(band.Height-1), band.Width-1, stride)
	if err != nil {
		return 0, err
	}

	return n, nil
}

// DecodeAC decodes one AC (highpass) band, band index 1..NumBands-1, from
// buf, which holds that band's four int32 parameters, its 0xDEADBEEF magic
// and its entropy-coded payload. It returns the number of bytes of buf
// consumed, including the 20-byte header.
func (p *Plane) DecodeAC(bandIndex int, buf []byte) (int, error) {
	br := NewByteReader(buf)

	a, err := br.SBE32()
	if err != nil {
		return 0, err
	}

	b, err := br.SBE32()
	if err != nil {
		return 0, err
	}

	c, err := br.SBE32()
	if err != nil {
		return 0, err
	}

	d, err := br.SBE32()
	if err != nil {
		return 0, err
	}

	magic, err := br.BE32()
	if err != nil {
		return 0, err
	}

	if magic != 0xDEADBEEF {
		return 0, ErrBadMagic
	}

	param := a
	if b >= abs32(a) {
		param = b
	}

	band := p.Bands[bandIndex]
	origin := band.Y*p.Stride + band.X

	p.bitr.Reset(br.Rest())

	n, err := ReadHighCoeffs(&p.bitr, p.Coeffs[origin:], band.Size, band.Width, p.Stride, param, c, d)
	if err != nil {
		return 0, err
	}

	return br.Tell() + n, nil
}

// Reconstruct runs the lowpass predictor over the DC band and then performs
// the full four-level inverse wavelet synthesis, leaving the plane's final
// reconstructed samples in Coeffs.
func (p *Plane) Reconstruct() {
	UnpcBand(p.Coeffs, p.pred, p.Bands[0].Width, p.Bands[0].Height, p.Stride)

	Reconstruct(p.Coeffs, p.Width, p.Height, p.Stride, Levels, p.scaleRow[:], p.scaleCol[:], p.scratch, p.col)
}
