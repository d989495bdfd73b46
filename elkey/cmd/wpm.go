package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/elkey/sim"
	"github.com/sarchlab/elkey/speed"
)

var wpmCmd = &cobra.Command{
	Use:   "wpm",
	Short: "Convert between speed readings, tick intervals and WPM.",
	Long: "`wpm --reading 128` shows the tick interval and speed of a " +
		"reading of the speed control. `wpm --wpm 20` shows the interval " +
		"and the closest reading of a speed.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		settings := cfg.SpeedSettings()
		freq := cfg.Freq()

		switch {
		case cmd.Flags().Changed("reading"):
			reading, _ := cmd.Flags().GetUint8("reading")
			interval := speed.Map(reading, settings.Scale, settings.MinInterval)

			fmt.Fprintf(out, "reading %d: interval %d (%.1f ms), %.1f WPM\n",
				reading, interval, 1000*freq.Seconds(interval),
				speed.IntervalToWPM(interval, freq))
		case cmd.Flags().Changed("wpm"):
			wpm, _ := cmd.Flags().GetFloat64("wpm")

			interval, err := speed.WPMToInterval(wpm, freq)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%.1f WPM: interval %d (%.1f ms), reading %d\n",
				wpm, interval, 1000*freq.Seconds(interval),
				closestReading(interval, settings.Scale))
		default:
			return errors.New("either --reading or --wpm is required")
		}

		return nil
	},
}

func closestReading(interval, scale sim.VTimeInCycle) uint64 {
	r := (interval + scale/2) / scale
	if r > 255 {
		r = 255
	}

	return uint64(r)
}

func init() {
	rootCmd.AddCommand(wpmCmd)

	wpmCmd.Flags().Uint8("reading", 0, "reading of the speed control")
	wpmCmd.Flags().Float64("wpm", 0, "speed in words per minute")
}
