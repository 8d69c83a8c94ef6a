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
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DecodeAll decodes a batch of independent Pixlet packets concurrently,
// using workers goroutines, and returns one Frame per packet in the same
// order as packets. Each worker owns its own Decoder, since a Decoder's
// scratch buffers are not safe for concurrent use; packets that do not
// share dimensions are therefore fine to mix in one call.
//
// If workers <= 0, runtime.GOMAXPROCS(0) workers are used. DecodeAll stops
// launching new work and returns the first error encountered once the
// packets already in flight finish.
func DecodeAll(ctx context.Context, packets [][]byte, cfg Config, workers int) ([]*Frame, error) {
	frames := make([]*Frame, len(packets))

	group, ctx := errgroup.WithContext(ctx)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	group.SetLimit(workers)

	for i, packet := range packets {
		i, packet := i, packet

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			dec := NewDecoder(cfg)

			frame, err := dec.Decode(packet)
			if err != nil {
				return fmt.Errorf("packet %d: %w", i, err)
			}

			// Decode returns a Frame backed by dec's own buffers; since dec
			// is local to this goroutine and decodes exactly one packet,
			// it is safe to hand the caller a direct reference.
			frames[i] = frame

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return frames, nil
}
