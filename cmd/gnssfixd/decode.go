package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gnssfix/internal/nmea"
)

func decodeCmd() *cobra.Command {
	var final bool

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode NMEA sentences from a file or stdin",
		Long: `decode runs a log of NMEA sentences through the fix tracker and
prints the merged fix as JSON after each accepted sentence. With
--final only the last fix is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return decode(in, cmd.OutOrStdout(), final)
		},
	}

	cmd.Flags().BoolVar(&final, "final", false, "print only the final fix")
	return cmd
}

func decode(in io.Reader, out io.Writer, final bool) error {
	tracker := nmea.NewTracker()
	enc := json.NewEncoder(out)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		snap, ok := tracker.Decode(scanner.Text())
		if !ok {
			continue
		}
		if !final {
			if err := enc.Encode(snap); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if final {
		return enc.Encode(tracker.Current())
	}
	return nil
}
