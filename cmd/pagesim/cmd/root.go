// Package cmd provides the command-line interface for pagesim.
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/mem/vm/addressing"
	"github.com/sarchlab/pagesim/mem/vm/replacement"
	"github.com/sarchlab/pagesim/simulation"
	"github.com/sarchlab/pagesim/stream"
)

const defaultEnvFile = ".env"

// envFlags maps environment variables to the flags they provide defaults for.
var envFlags = []struct {
	env  string
	flag string
}{
	{"PAGESIM_PAGE_SIZE", "page-size"},
	{"PAGESIM_SEQUENCE_LENGTH", "length"},
	{"PAGESIM_OPEN_PAGES", "frames"},
	{"PAGESIM_SEED", "seed"},
	{"PAGESIM_TIE_BREAK", "tie-break"},
}

type simOptions struct {
	pageSize   int
	length     int
	frames     int
	seed       int64
	tieBreak   string
	streamFile string
	envFile    string
	trace      bool
}

// NewRootCmd creates the pagesim command with all its subcommands.
func NewRootCmd() *cobra.Command {
	opts := &simOptions{}

	rootCmd := &cobra.Command{
		Use:   "pagesim",
		Short: "pagesim replays virtual addresses through page replacement policies.",
		Long: `pagesim replays a stream of virtual addresses through the FIFO, ` +
			`LFU and Belady's optimal page replacement policies and reports ` +
			`the number of page faults each of them experiences.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyEnv(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&opts.pageSize, "page-size", 4096, "Page size in bytes.")
	flags.IntVarP(&opts.length, "length", "n", 100,
		"Number of virtual addresses in the stream.")
	flags.IntVarP(&opts.frames, "frames", "k", 3,
		"Number of physical frames (open pages).")
	flags.Int64Var(&opts.seed, "seed", 0,
		"Seed of the random number generator. A time based seed is used "+
			"when not set.")
	flags.StringVar(&opts.tieBreak, "tie-break", "uniform",
		"How LFU breaks ties between equally used pages: uniform or coinflip.")
	flags.StringVar(&opts.streamFile, "stream-file", "",
		"Read the addresses from a file, one per line, instead of "+
			"generating them.")
	flags.StringVar(&opts.envFile, "env-file", defaultEnvFile,
		"Dotenv file providing PAGESIM_* defaults.")
	flags.BoolVar(&opts.trace, "trace", false,
		"Print every decoded address and every reference to stderr.")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// applyEnv loads the dotenv file and uses PAGESIM_* variables for the flags
// that are not set on the command line.
func applyEnv(cmd *cobra.Command, opts *simOptions) error {
	err := godotenv.Load(opts.envFile)
	if err != nil {
		missingDefault := !cmd.Flags().Changed("env-file") &&
			errors.Is(err, os.ErrNotExist)
		if !missingDefault {
			return fmt.Errorf("loading %s: %w", opts.envFile, err)
		}
	}

	for _, ef := range envFlags {
		value, ok := os.LookupEnv(ef.env)
		if !ok || value == "" || cmd.Flags().Changed(ef.flag) {
			continue
		}

		err := cmd.Flags().Set(ef.flag, value)
		if err != nil {
			return fmt.Errorf("%s: %w", ef.env, err)
		}
	}

	return nil
}

func buildSimulator(
	cmd *cobra.Command,
	opts *simOptions,
) (*simulation.Simulator, error) {
	tieBreak, err := replacement.ParseTieBreak(opts.tieBreak)
	if err != nil {
		return nil, err
	}

	b := simulation.MakeBuilder().
		WithPageSize(opts.pageSize).
		WithOpenPages(opts.frames).
		WithTieBreak(tieBreak)

	if cmd.Flags().Changed("seed") {
		b = b.WithSeed(opts.seed)
	}

	length := opts.length
	if opts.streamFile != "" {
		gen := stream.NewFileGenerator(opts.streamFile)

		if !cmd.Flags().Changed("length") {
			length, err = gen.Count()
			if err != nil {
				return nil, err
			}
		}

		b = b.WithStreamGenerator(gen)
	}

	b = b.WithSequenceLength(length)

	if opts.trace {
		logger := log.New(cmd.ErrOrStderr(), "", 0)
		b = b.
			WithDecodeHook(addressing.NewTraceHook(logger)).
			WithHook(simulation.NewReferenceTraceHook(logger))
	}

	return b.Build()
}
