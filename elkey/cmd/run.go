package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/elkey/config"
	"github.com/sarchlab/elkey/datarecording"
	"github.com/sarchlab/elkey/device"
	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/sim"
	"github.com/sarchlab/elkey/speed"
	"github.com/sarchlab/elkey/stimulus"
	"github.com/sarchlab/elkey/tracing"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a paddle script in virtual time.",
	Long: "`run --script dit:0-2000,dah:3000-9000~3` presses the paddles at " +
		"the given times (in time units of the base timer, ~N adds contact " +
		"bounce) and prints the resulting key transitions.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts, err := readRunOptions(cmd)
		if err != nil {
			return err
		}

		return simulate(cmd.OutOrStdout(), cfg, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("script", "", "paddle script")
	runCmd.Flags().Uint8("speed", 40, "reading of the speed control")
	runCmd.Flags().Uint64("until", 0,
		"stop at this time, 0 runs until the keyer sleeps")
	runCmd.Flags().String("csv", "", "write the trace to this CSV file")
	runCmd.Flags().String("record", "",
		"record the trace into this SQLite database")
	runCmd.Flags().Bool("trace", false, "print every tick")
	runCmd.Flags().Bool("verbose", false, "print every event")

	_ = runCmd.MarkFlagRequired("script")
}

type runOptions struct {
	script  stimulus.Script
	reading uint8
	until   sim.VTimeInCycle
	csv     string
	record  string
	trace   bool
	verbose bool
}

func readRunOptions(cmd *cobra.Command) (runOptions, error) {
	opts := runOptions{}

	text, _ := cmd.Flags().GetString("script")
	script, err := stimulus.Parse(text)
	if err != nil {
		return opts, err
	}

	until, _ := cmd.Flags().GetUint64("until")

	opts.script = script
	opts.until = sim.VTimeInCycle(until)
	opts.reading, _ = cmd.Flags().GetUint8("speed")
	opts.csv, _ = cmd.Flags().GetString("csv")
	opts.record, _ = cmd.Flags().GetString("record")
	opts.trace, _ = cmd.Flags().GetBool("trace")
	opts.verbose, _ = cmd.Flags().GetBool("verbose")

	return opts, nil
}

// simulate runs a keyer on the serial engine and prints its key line.
func simulate(out io.Writer, cfg config.Config, opts runOptions) error {
	engine := sim.NewSerialEngine()
	pins := device.NewSimPins(engine, opts.reading)

	k := device.MakeBuilder().
		WithEngine(engine).
		WithConfig(cfg).
		WithPins(pins.Pins()).
		Build("Keyer")

	if opts.verbose {
		engine.AcceptHook(sim.NewEventLogger(log.New(os.Stderr, "", 0)).
			WithFreq(cfg.Freq()))
	}

	backends := attachBackends(k, opts)

	driver := stimulus.NewDriver("Stimulus", engine, pins.Dit, pins.Dah)
	if err := driver.Load(opts.script); err != nil {
		return err
	}

	k.Start()

	until := opts.until
	if until == 0 && !cfg.PowerDownEnabled {
		until = opts.script.End() +
			10*sim.VTimeInCycle(cfg.DefaultInterval)
	}

	var err error
	if until == 0 {
		err = engine.Run()
	} else {
		err = engine.RunUntil(until)
	}

	for _, b := range backends {
		b.Flush()
	}

	if err != nil {
		return err
	}

	printKeyTrace(out, cfg.Freq(), pins.Key.Transitions())
	fmt.Fprintf(out, "ticks %d, sleeps %d, wakes %d, speed %.1f WPM\n",
		k.Ticks(), k.Power().Sleeps(), k.Power().Wakes(),
		speed.IntervalToWPM(k.Speed().Last(), cfg.Freq()))

	return nil
}

func attachBackends(k *device.Keyer, opts runOptions) []tracing.Backend {
	var backends []tracing.Backend

	if opts.trace {
		backends = append(backends,
			tracing.NewLogBackend(log.New(os.Stderr, "", 0)))
	}

	if opts.csv != "" {
		backend := tracing.NewCSVBackend(opts.csv)
		backend.Init()
		backends = append(backends, backend)
	}

	if opts.record != "" {
		recorder := datarecording.New(opts.record)
		backends = append(backends,
			tracing.NewRecorderBackend(recorder, "keyer_trace"))
	}

	for _, b := range backends {
		tracing.CollectTrace(k, b)
	}

	return backends
}

func printKeyTrace(out io.Writer, freq sim.Freq, trace []hw.Transition) {
	fmt.Fprintf(out, "%10s %10s %5s %10s\n", "time", "ms", "key", "held ms")

	for i, t := range trace {
		level := "up"
		if t.Level {
			level = "DOWN"
		}

		held := "-"
		if i+1 < len(trace) {
			held = fmt.Sprintf("%.1f",
				1000*freq.Seconds(trace[i+1].Time-t.Time))
		}

		fmt.Fprintf(out, "%10d %10.1f %5s %10s\n",
			t.Time, 1000*freq.Seconds(t.Time), level, held)
	}
}
