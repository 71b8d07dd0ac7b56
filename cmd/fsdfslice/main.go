// Command fsdfslice evaluates a field script and plots its cross section on
// a horizontal plane.
//
//	fsdfslice -script part.lisp -z 0.5 -o part.png
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/soypat/fsdf"
	"github.com/soypat/fsdf/helpers/sliceplot"
	"github.com/soypat/fsdf/script"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/vg"
)

func main() {
	var (
		scriptFile = flag.String("script", "", "lisp script defining the field (required)")
		output     = flag.String("o", "slice.png", "output image, format by extension")
		z          = flag.Float64("z", 0, "height of the cutting plane")
		extent     = flag.Float64("extent", 2, "half width of the square plot domain")
		res        = flag.Int("res", 200, "samples per axis")
		timeout    = flag.Duration("timeout", script.DefaultTimeout, "script evaluation timeout")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fsdf.SetLogger(logger)

	if *scriptFile == "" {
		flag.Usage()
		os.Exit(2)
	}
	err := run(*scriptFile, *output, *z, *extent, *res, *timeout)
	if err != nil {
		logger.Error("fsdfslice failed", "err", err)
		os.Exit(1)
	}
}

func run(scriptFile, output string, z, extent float64, res int, timeout time.Duration) error {
	src, err := os.ReadFile(scriptFile)
	if err != nil {
		return err
	}
	eng := &script.Engine{Timeout: timeout}
	shape, err := eng.Eval(context.Background(), string(src))
	if err != nil {
		return err
	}

	var section fsdf.Field2
	switch s := shape.(type) {
	case fsdf.Field:
		// Move the cutting plane to z = 0.
		section = s.Translate(fsdf.Vec(0, 0, -z)).Slice()
	case fsdf.Field2:
		section = s
	default:
		return fmt.Errorf("unexpected shape %T", shape)
	}

	start := time.Now()
	box := r2.Box{Min: r2.Vec{X: -extent, Y: -extent}, Max: r2.Vec{X: extent, Y: extent}}
	grid, err := sliceplot.Sample(context.Background(), section, box, res, res)
	if err != nil {
		return err
	}
	fsdf.Logger().Info("sampled cross section", "samples", res*res, "inside", grid.Inside(), "elapsed", time.Since(start))

	title := fmt.Sprintf("%s at z=%g", scriptFile, z)
	err = sliceplot.Save(grid, title, output, 12*vg.Centimeter)
	if err != nil {
		return err
	}
	fsdf.Logger().Info("wrote plot", "file", output)
	return nil
}
