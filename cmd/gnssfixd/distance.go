package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gnssfix/internal/nmea"
)

func distanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance <lat1> <lon1> <lat2> <lon2>",
		Short: "Great-circle distance between two points in meters",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]float64, 4)
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				vals[i] = v
			}

			m, err := nmea.Distance(
				nmea.Point{Lat: vals[0], Lon: vals[1]},
				nmea.Point{Lat: vals[2], Lon: vals[3]},
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f\n", m)
			return nil
		},
	}
}
