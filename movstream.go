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

import (
	"fmt"
	"io"

	"github.com/loamwood/pixlet/internal/container"
)

// StreamDecoder streams decoded Frames from a Pixlet track inside a
// QuickTime/MP4 (MOV) container. The container's sample table is parsed
// once, up front; each call to Next reads and decodes one sample on demand.
type StreamDecoder struct {
	reader    io.ReadSeeker
	dec       *Decoder
	track     *container.Track
	sampleIdx int
	packetBuf []byte
}

// NewStreamDecoder opens an MOV/MP4 stream containing a Pixlet video track.
// The container structure is parsed immediately; frame data is decoded
// sample-by-sample on demand via Next.
func NewStreamDecoder(r io.ReadSeeker, cfg Config) (*StreamDecoder, error) {
	track, err := container.FindPixletTrack(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTrack, err)
	}

	return &StreamDecoder{
		reader: r,
		dec:    NewDecoder(cfg),
		track:  track,
	}, nil
}

// NumSamples returns the total number of Pixlet packets in the track.
func (s *StreamDecoder) NumSamples() int {
	return len(s.track.Samples)
}

// Next decodes the next packet in the stream. It returns io.EOF once every
// sample has been consumed. The returned Frame aliases buffers owned by the
// underlying Decoder and is only valid until the next call to Next.
func (s *StreamDecoder) Next() (*Frame, error) {
	if s.sampleIdx >= len(s.track.Samples) {
		return nil, io.EOF
	}

	sample := s.track.Samples[s.sampleIdx]

	if int(sample.Size) > cap(s.packetBuf) {
		s.packetBuf = make([]byte, sample.Size)
	}

	packet := s.packetBuf[:sample.Size]

	if _, err := s.reader.Seek(int64(sample.Offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to sample %d at offset %d: %w", s.sampleIdx, sample.Offset, err)
	}

	if _, err := io.ReadFull(s.reader, packet); err != nil {
		return nil, fmt.Errorf("reading sample %d: %w", s.sampleIdx, err)
	}

	frame, err := s.dec.Decode(packet)
	if err != nil {
		return nil, fmt.Errorf("decoding sample %d: %w", s.sampleIdx, err)
	}

	s.sampleIdx++

	return frame, nil
}

// Reset rewinds the stream to its first sample.
func (s *StreamDecoder) Reset() {
	s.sampleIdx = 0
}
