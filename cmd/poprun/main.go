// Command poprun is a headless replay/fixture harness for pop.Scheduler:
// the direct analogue of the teacher's nestest golden-log runner,
// generalized into a standalone binary since the simulation core has
// no video output of its own to eyeball.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"

	"github.com/flga/popcore/cmd/internal/meter"
	"github.com/flga/popcore/internal/replay"
	"github.com/flga/popcore/pop"
)

func loadLevel(path string) (*pop.Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open level: %s", err)
	}
	defer f.Close()
	return pop.LoadLevel(f)
}

func loadInput(path string) ([]pop.InputSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open input log: %s", err)
	}
	defer f.Close()
	return replay.Read(f)
}

func run(levelPath, inputPath string, levelNum int, ticks int, trace bool, traceOut string, cpuprof string) error {
	lvl, err := loadLevel(levelPath)
	if err != nil {
		return err
	}
	// The on-disk level format (spec §6.1) carries no level-number
	// field of its own; the host assigns it from whatever catalog it
	// loaded the file out of (spec SPEC_FULL §3).
	lvl.Number = levelNum

	var samples []pop.InputSample
	if inputPath != "" {
		samples, err = loadInput(inputPath)
		if err != nil {
			return err
		}
	}
	if ticks <= 0 {
		ticks = len(samples)
	}

	if cpuprof != "" {
		f, err := os.Create(cpuprof)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %s", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %s", err)
		}
		defer pprof.StopCPUProfile()
	}

	sched := pop.NewScheduler(lvl, pop.DefaultProgram, pop.DefaultStartSeq(lvl.Number))

	var traceWriter io.Writer
	if trace {
		traceWriter = os.Stdout
	}
	if traceOut != "" {
		f, err := os.Create(traceOut)
		if err != nil {
			return fmt.Errorf("could not create trace file: %s", err)
		}
		defer f.Close()
		traceWriter = f
	}
	sched.Trace = traceWriter

	m := meter.New(meter.DefaultBufferLen)
	for i := 0; i < ticks; i++ {
		var in *pop.InputSample
		if i < len(samples) {
			in = &samples[i]
		}

		start := time.Now()
		if errs := sched.Tick(in); len(errs) > 0 {
			fmt.Fprintf(os.Stderr, "tick %d: %s\n", i, errs.Error())
		}
		m.Record(time.Since(start))
	}

	fmt.Printf("ran %d ticks, avg %.2fms/tick (%d tps)\n", ticks, m.Ms(), m.Tps())
	return nil
}

func newRootCmd() *cobra.Command {
	var (
		levelPath string
		inputPath string
		levelNum  int
		ticks     int
		trace     bool
		traceOut  string
		cpuprof   string
	)

	cmd := &cobra.Command{
		Use:   "poprun",
		Short: "Run a Prince of Persia level fixture headlessly through pop.Scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(levelPath, inputPath, levelNum, ticks, trace, traceOut, cpuprof)
		},
	}

	cmd.Flags().StringVar(&levelPath, "level", "", "path to a level binary (spec §6.1 format)")
	cmd.Flags().StringVar(&inputPath, "input", "", "path to a recorded input log")
	cmd.Flags().IntVar(&levelNum, "level-num", 1, "1-based level number, selects the kid's start sequence (spec §4.4)")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks to run (default: length of --input)")
	cmd.Flags().BoolVar(&trace, "trace", false, "print a per-tick trace line to stdout")
	cmd.Flags().StringVar(&traceOut, "trace-out", "", "write the per-tick trace to this file instead of stdout")
	cmd.Flags().StringVar(&cpuprof, "cpuprofile", "", "write cpu profile to file")
	cmd.MarkFlagRequired("level")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
