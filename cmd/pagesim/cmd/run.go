package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/simulation"
)

type runOptions struct {
	policies         string
	recordPath       string
	recordReferences bool
}

func newRunCmd(opts *simOptions) *cobra.Command {
	ro := &runOptions{}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the policies once and print the fault counts.",
		Long: "`run` prints the address stream and then one line per policy " +
			"with the number of faults it experienced.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPolicies(cmd, opts, ro)
		},
	}

	names := make([]string, 0, len(simulation.AllPolicies))
	for _, p := range simulation.AllPolicies {
		names = append(names, string(p))
	}

	runCmd.Flags().StringVarP(&ro.policies, "policies", "p",
		strings.Join(names, ","),
		"Comma separated policies to run, in order.")
	runCmd.Flags().StringVar(&ro.recordPath, "record", "",
		"Record the results into <record>.sqlite3.")
	runCmd.Flags().BoolVar(&ro.recordReferences, "record-references", false,
		"Also record every reference. Requires --record.")

	return runCmd
}

var errReferencesWithoutRecord = errors.New(
	"--record-references requires --record")

func runPolicies(
	cmd *cobra.Command,
	opts *simOptions,
	ro *runOptions,
) (err error) {
	if ro.recordReferences && ro.recordPath == "" {
		return errReferencesWithoutRecord
	}

	selected, err := simulation.ParsePolicies(ro.policies)
	if err != nil {
		return err
	}

	s, err := buildSimulator(cmd, opts)
	if err != nil {
		return err
	}

	if ro.recordPath != "" {
		recorder, recErr := datarecording.New(ro.recordPath)
		if recErr != nil {
			return recErr
		}
		defer closeKeepingFirstErr(recorder, &err)

		s.AcceptHook(
			simulation.NewResultRecorder(recorder, ro.recordReferences))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, simulation.FormatStream(s.ReferenceStream()))

	for _, p := range selected {
		fmt.Fprintln(out, simulation.FormatResult(s.Run(p)))
	}

	return nil
}

// closeKeepingFirstErr closes c and stores the close error in errp unless
// errp already holds one.
func closeKeepingFirstErr(c io.Closer, errp *error) {
	closeErr := c.Close()
	if closeErr != nil && *errp == nil {
		*errp = fmt.Errorf("closing recorder: %w", closeErr)
	}
}
