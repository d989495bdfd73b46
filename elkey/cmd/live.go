package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/elkey/device"
	"github.com/sarchlab/elkey/monitoring"
	"github.com/sarchlab/elkey/sim"
	"github.com/sarchlab/elkey/stimulus"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Run the keyer against the wall clock with a web monitor.",
	Long: "`live` runs a keyer with simulated pins in real time. The " +
		"paddles and the speed control are operated from the monitor page.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetInt("port")
		open, _ := cmd.Flags().GetBool("open")
		reading, _ := cmd.Flags().GetUint8("speed")

		sim.UseXIDGenerator()
		engine := sim.NewRealTimeEngine(cfg.Freq())
		pins := device.NewSimPins(engine, reading)

		k := device.MakeBuilder().
			WithEngine(engine).
			WithConfig(cfg).
			WithPins(pins.Pins()).
			Build("Keyer")

		m := monitoring.NewMonitor().WithPortNumber(port)
		m.RegisterEngine(engine)
		m.RegisterKeyer(k)
		m.RegisterStimulus(
			stimulus.NewDriver("Stimulus", engine, pins.Dit, pins.Dah))
		m.RegisterSpeedInput(pins.Speed)
		url := m.StartServer()

		if open {
			if err := browser.OpenURL(url); err != nil {
				fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
			}
		}

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		go func() {
			<-interrupt
			engine.Stop()
		}()

		k.Start()

		return engine.Run()
	},
}

func init() {
	rootCmd.AddCommand(liveCmd)

	liveCmd.Flags().Int("port", 0, "monitor port, 0 picks a free one")
	liveCmd.Flags().Bool("open", false, "open the monitor in a browser")
	liveCmd.Flags().Uint8("speed", 40, "initial reading of the speed control")
}
