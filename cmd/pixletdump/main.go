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

// Command pixletdump inspects and decodes Pixlet video tracks from MOV/MP4
// files.
package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/loamwood/pixlet"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "pixletdump",
		Short: "Inspect and decode Apple Pixlet video tracks",
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newInfoCmd(&verbose), newExtractCmd(&verbose))

	return root
}

func loggerFor(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return pixlet.NewLogger(os.Stderr, level)
}

func newInfoCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.mov>",
		Short: "Print per-frame dimensions and depth for a Pixlet track",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			cfg := pixlet.NewConfig()
			cfg.Logger = loggerFor(*verbose)

			sd, err := pixlet.NewStreamDecoder(f, cfg)
			if err != nil {
				return fmt.Errorf("opening track: %w", err)
			}

			fmt.Printf("samples: %d\n", sd.NumSamples())

			for i := 0; ; i++ {
				frame, err := sd.Next()
				if err != nil {
					break
				}

				fmt.Printf("frame %d: %dx%d depth=%d\n", i, frame.Width, frame.Height, frame.Depth)
			}

			return nil
		},
	}
}

func newExtractCmd(verbose *bool) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract <file.mov>",
		Short: "Decode a Pixlet track to raw planar YUV420P16LE",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExtract(args[0], output, *verbose)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runExtract(path, output string, verbose bool) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	out := os.Stdout

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()

		out = f
	}

	cfg := pixlet.NewConfig()
	cfg.Logger = loggerFor(verbose)

	sd, err := pixlet.NewStreamDecoder(in, cfg)
	if err != nil {
		return fmt.Errorf("opening track: %w", err)
	}

	for {
		frame, err := sd.Next()
		if err != nil {
			break
		}

		if err := writeFrame(out, frame); err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
	}

	return nil
}

func writeFrame(w *os.File, frame *pixlet.Frame) error {
	for _, plane := range []struct {
		data   []uint16
		width  int
		height int
		stride int
	}{
		{frame.Y, frame.Width, frame.Height, frame.StrideY},
		{frame.U, frame.Width / 2, frame.Height / 2, frame.StrideU},
		{frame.V, frame.Width / 2, frame.Height / 2, frame.StrideV},
	} {
		row := make([]byte, plane.width*2)

		for y := range plane.height {
			base := y * plane.stride

			for x := range plane.width {
				binary.LittleEndian.PutUint16(row[x*2:], plane.data[base+x])
			}

			if _, err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}
