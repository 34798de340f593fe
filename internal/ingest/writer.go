package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/geoprivacy/mobrisk/pkg/errors"
	"github.com/geoprivacy/mobrisk/pkg/models"
)

// WriteDataset writes a dataset in the line format, one individual per line,
// visits in stored order. Reading the output back yields an equivalent
// dataset.
func WriteDataset(w io.Writer, dataset *models.Dataset) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	for _, record := range dataset.Records() {
		row := make([]string, 0, 1+3*record.Len())
		row = append(row, record.ID)
		for _, v := range record.Visits() {
			row = append(row,
				strconv.FormatFloat(v.Location.X, 'g', -1, 64),
				strconv.FormatFloat(v.Location.Y, 'g', -1, 64),
				record.FormatPayload(v))
		}
		if err := cw.Write(row); err != nil {
			return errors.WrapError(err, errors.ErrorTypeIngestion,
				errors.CodeWriteFailed, "cannot write dataset row").
				WithContext("individual_id", record.ID)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.WrapError(err, errors.ErrorTypeIngestion,
			errors.CodeWriteFailed, "cannot flush dataset")
	}
	return nil
}

// WriteDatasetFile writes a dataset to a file in the line format.
func WriteDatasetFile(path string, dataset *models.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeIngestion,
			errors.CodeWriteFailed, "cannot create dataset file").WithDetails(path)
	}
	defer f.Close()
	if err := WriteDataset(f, dataset); err != nil {
		return err
	}
	return f.Close()
}
