package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/geoprivacy/mobrisk/internal/ingest"
	"github.com/geoprivacy/mobrisk/pkg/errors"
	"github.com/geoprivacy/mobrisk/pkg/models"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

func loadDataset(path, kind, format string) (*models.Dataset, error) {
	recordKind, ok := models.ParseRecordKind(kind)
	if !ok {
		return nil, errors.WrapError(errors.ErrUnknownKind,
			errors.ErrorTypeIngestion, errors.CodeUnknownKind,
			fmt.Sprintf("unknown record kind %q (trajectory, frequency, probability)", kind))
	}
	fileFormat, ok := ingest.ParseFormat(format)
	if !ok {
		return nil, errors.WrapError(errors.ErrUnknownFormat,
			errors.ErrorTypeIngestion, errors.CodeUnknownFormat,
			fmt.Sprintf("unknown dataset format %q (line, row)", format))
	}
	return ingest.ReadDatasetFile(path, recordKind, fileFormat)
}

// openOutput resolves an output target, "-" meaning stdout. The returned
// closer is a no-op for stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
