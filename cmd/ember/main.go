// Package main provides the Ember ML Framework CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ember-ml/ember/backend/cpu"
	"github.com/ember-ml/ember/layer"
	"github.com/ember-ml/ember/model"
	"github.com/ember-ml/ember/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "ember:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	switch args[0] {
	case "version":
		_, _ = fmt.Fprintf(stdout, "Ember ML Framework %s\n", version)
		return nil
	case "specs":
		return specsCmd(args[1:], stdout, stderr)
	case "run":
		return runCmd(args[1:], stdout, stderr)
	default:
		usage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Ember ML Framework - embedded neural network layers for Go")
	_, _ = fmt.Fprintf(w, "Version: %s\n\n", version)
	_, _ = fmt.Fprintln(w, "Commands:")
	_, _ = fmt.Fprintln(w, "  version    Show version")
	_, _ = fmt.Fprintln(w, "  specs      Print the layer specs of the demo network")
	_, _ = fmt.Fprintln(w, "  run        Run a forward and backward pass of the demo network")
}

// demo is input [1, n] -> leaky relu -> sigmoid.
type demo struct {
	in    layer.Input
	leaky layer.LeakyReLU
	sig   layer.Sigmoid
	model *model.Model
}

func newDemo(n int, alpha float32, logger *slog.Logger) (*demo, error) {
	d := &demo{in: layer.Input{DType: tensor.F32, Shape: tensor.MustShape(1, n)}}
	x := d.in.Init()
	x = cpu.LeakyReLUF32(&d.leaky, alpha, x)
	x = cpu.SigmoidF32(&d.sig, x)

	cfg := model.DefaultConfig()
	cfg.Logger = logger
	m, err := model.New(&d.in, x, cfg)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	d.model = m
	return d, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func specsCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("specs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	alpha := fs.Float64("alpha", 0.01, "leak coefficient")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !layer.Debug {
		_, _ = fmt.Fprintln(stdout, "layer introspection not compiled in; rebuild with -tags emberdebug")
		return nil
	}
	d, err := newDemo(4, float32(*alpha), newLogger(stderr, false))
	if err != nil {
		return err
	}
	d.model.PrintSpecs(func(format string, a ...any) (int, error) {
		return fmt.Fprintf(stdout, format, a...)
	})
	return nil
}

func runCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	alpha := fs.Float64("alpha", 0.1, "leak coefficient")
	input := fs.String("input", "-2,-0.5,0,3", "comma separated input values")
	verbose := fs.Bool("v", false, "log memory planning")
	if err := fs.Parse(args); err != nil {
		return err
	}

	values, err := parseValues(*input)
	if err != nil {
		return err
	}
	d, err := newDemo(len(values), float32(*alpha), newLogger(stderr, *verbose))
	if err != nil {
		return err
	}
	m := d.model

	if err := m.ScheduleInferenceMemory(tensor.AlignedBytes(m.SizeofInferenceMemory())); err != nil {
		return err
	}
	if err := m.ScheduleTrainingMemory(tensor.AlignedBytes(m.SizeofTrainingMemory())); err != nil {
		return err
	}

	x, err := tensor.FromFloat32(values, 1, len(values))
	if err != nil {
		return err
	}
	ones := make([]float32, len(values))
	for i := range ones {
		ones[i] = 1
	}
	grad, err := tensor.FromFloat32(ones, 1, len(values))
	if err != nil {
		return err
	}

	y := m.Forward(x)
	m.Backward(grad)

	_, _ = fmt.Fprintf(stdout, "input:      %v\n", values)
	_, _ = fmt.Fprintf(stdout, "leaky relu: %v\n", d.leaky.Base().Result.AsFloat32())
	_, _ = fmt.Fprintf(stdout, "output:     %v\n", y.AsFloat32())
	_, _ = fmt.Fprintf(stdout, "gradient:   %v\n", d.leaky.Base().Deltas.AsFloat32())
	return nil
}

func parseValues(s string) ([]float32, error) {
	fields := strings.Split(s, ",")
	values := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, fmt.Errorf("parse input %q: %w", f, err)
		}
		values = append(values, float32(v))
	}
	return values, nil
}
