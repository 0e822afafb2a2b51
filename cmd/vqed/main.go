package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/qsimlab/vqe-core/internal/service"
	"github.com/qsimlab/vqe-core/internal/vqe"
	"github.com/qsimlab/vqe-core/pkg/config"
	"github.com/qsimlab/vqe-core/pkg/logger"
)

func main() {
	var (
		configPath string
		logLevel   string
		mode       string
		mol        string
		optimizer  string
		iterations int
		start      float64
		end        float64
		steps      int
		export     bool
		stream     bool
	)

	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.StringVar(&mode, "mode", "run", "operation: molecules, hamiltonian, run, compare, scan")
	flag.StringVar(&mol, "molecule", "H2", "molecule name from the catalog")
	flag.StringVar(&optimizer, "optimizer", "", "optimizer override: bfgs, nelder-mead, spsa")
	flag.IntVar(&iterations, "iterations", 0, "optimization budget (0 uses the default)")
	flag.Float64Var(&start, "start", 0.5, "scan start bond length, angstroms")
	flag.Float64Var(&end, "end", 2.5, "scan end bond length, angstroms")
	flag.IntVar(&steps, "steps", 10, "scan point count")
	flag.BoolVar(&export, "export", false, "write the result to the export directory")
	flag.BoolVar(&stream, "stream", false, "print per-iteration progress")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger.SetDefault(logger.NewText(cfg.LogLevel, os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := service.New(cfg)
	if err != nil {
		logger.Error("failed to initialize service", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, svc, mode, runOptions{
		molecule:   mol,
		optimizer:  optimizer,
		iterations: iterations,
		start:      start,
		end:        end,
		steps:      steps,
		export:     export,
		stream:     stream,
	}); err != nil {
		logger.Error("command failed", "mode", mode, "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	molecule   string
	optimizer  string
	iterations int
	start      float64
	end        float64
	steps      int
	export     bool
	stream     bool
}

func run(ctx context.Context, svc *service.Service, mode string, opts runOptions) error {
	switch mode {
	case "molecules":
		return printJSON(svc.ListMolecules())

	case "hamiltonian":
		h, err := svc.BuildHamiltonian(opts.molecule)
		if err != nil {
			return err
		}
		return printJSON(struct {
			NumQubits        int     `json:"num_qubits"`
			NumTerms         int     `json:"num_terms"`
			ClassicalEnergy  float64 `json:"classical_energy"`
			NuclearRepulsion float64 `json:"nuclear_repulsion"`
			Mapper           string  `json:"mapper"`
			Summary          any     `json:"terms"`
		}{h.NumQubits, h.Operator.NumTerms(), h.ClassicalEnergy, h.NuclearRepulsion, h.MapperName, h.Summary})

	case "run":
		req := service.RunRequest{
			Molecule:      opts.molecule,
			Optimizer:     opts.optimizer,
			MaxIterations: opts.iterations,
			Export:        opts.export,
		}
		var rec *service.RunRecord
		var err error
		if opts.stream {
			rec, err = svc.StreamVQE(ctx, req, func(ev vqe.ProgressEvent) {
				if ev.Sample != nil {
					fmt.Fprintf(os.Stderr, "\r[%3.0f%%] iteration %d  E = %.6f Ha", ev.Percent, ev.Sample.Index, ev.Sample.Energy)
					return
				}
				fmt.Fprintf(os.Stderr, "\n[%3.0f%%] %s\n", ev.Percent, ev.Message)
			})
			fmt.Fprintln(os.Stderr)
		} else {
			rec, err = svc.RunVQE(ctx, req)
		}
		if err != nil {
			return err
		}
		return printJSON(rec)

	case "compare":
		rec, err := svc.CompareOptimizers(ctx, service.RunRequest{
			Molecule:      opts.molecule,
			MaxIterations: opts.iterations,
		})
		if err != nil {
			return err
		}
		return printJSON(rec)

	case "scan":
		rec, err := svc.ScanBondLength(ctx, service.ScanRequest{
			Molecule: opts.molecule,
			Start:    opts.start,
			End:      opts.end,
			Steps:    opts.steps,
		})
		if err != nil {
			return err
		}
		return printJSON(rec)
	}
	return fmt.Errorf("unknown mode: %s", mode)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
