package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type InspectOptions struct {
	InputFile string
	Kind      string
	Format    string
}

func NewInspectCmd() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a mobility dataset",
		Long: `Read a mobility dataset and print a summary of its records and visit
counts, useful for sizing an attack before running it.`,
		Example: `  # Summarize a trajectory dataset
  mobrisk inspect --input trajectories.csv

  # Summarize a row-format frequency vector dataset
  mobrisk inspect --input visits.csv --kind frequency --format row`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input dataset file (required)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "trajectory", "Record kind (trajectory, frequency, probability)")
	cmd.Flags().StringVar(&opts.Format, "format", "line", "Dataset file format (line, row)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runInspect(opts *InspectOptions) error {
	dataset, err := loadDataset(opts.InputFile, opts.Kind, opts.Format)
	if err != nil {
		return err
	}

	total := 0
	min, max := -1, 0
	for _, record := range dataset.Records() {
		n := record.Len()
		total += n
		if min < 0 || n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}

	fmt.Printf("Dataset: %s\n", opts.InputFile)
	fmt.Printf("Kind: %s\n", opts.Kind)
	fmt.Printf("Records: %d\n", dataset.Len())
	fmt.Printf("Visits: %d\n", total)
	fmt.Printf("Visits per record: min %d, max %d, mean %.2f\n",
		min, max, float64(total)/float64(dataset.Len()))

	return nil
}
