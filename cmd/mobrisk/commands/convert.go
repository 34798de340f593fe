package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geoprivacy/mobrisk/internal/ingest"
	"github.com/geoprivacy/mobrisk/pkg/models"
)

type ConvertOptions struct {
	InputFile  string
	Kind       string
	From       string
	OutputFile string
}

func NewConvertCmd() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a dataset to the canonical line format",
		Long: `Read a dataset in any supported input representation and rewrite it in
the one-individual-per-line format the risk engine tooling expects.`,
		Example: `  # Row format to line format
  mobrisk convert --input visits.csv --from row --output trajectories.csv

  # Split date and time columns to decimal timestamps
  mobrisk convert --input raw.csv --from datetime --output trajectories.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input dataset file (required)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "trajectory", "Record kind (trajectory, frequency, probability)")
	cmd.Flags().StringVar(&opts.From, "from", "row", "Input representation (line, row, datetime)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runConvert(opts *ConvertOptions) error {
	var dataset *models.Dataset
	var err error

	if opts.From == "datetime" {
		f, openErr := os.Open(opts.InputFile)
		if openErr != nil {
			return openErr
		}
		defer f.Close()
		dataset, err = ingest.ReadTrajectoriesDateTime(f)
	} else {
		dataset, err = loadDataset(opts.InputFile, opts.Kind, opts.From)
	}
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(opts.OutputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := ingest.WriteDataset(out, dataset); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Converted %d records\n", dataset.Len())
	return nil
}
