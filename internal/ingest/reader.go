package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/geoprivacy/mobrisk/pkg/errors"
	"github.com/geoprivacy/mobrisk/pkg/models"
)

// Format selects the external text representation of a dataset.
type Format string

const (
	// FormatLine holds one individual per line: id,x1,y1,payload1,x2,y2,payload2,...
	FormatLine Format = "line"
	// FormatRow holds one visit per row: id,x,y,payload. Rows of one
	// individual need not be contiguous.
	FormatRow Format = "row"
)

// ParseFormat parses a format name as accepted on the CLI.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(s)) {
	case FormatLine:
		return FormatLine, true
	case FormatRow:
		return FormatRow, true
	default:
		return "", false
	}
}

// ReadDataset reads a dataset of the given record kind and format.
func ReadDataset(r io.Reader, kind models.RecordKind, format Format) (*models.Dataset, error) {
	switch format {
	case FormatLine:
		return readLines(r, kind)
	case FormatRow:
		return readRows(r, kind)
	default:
		return nil, errors.WrapError(errors.ErrUnknownFormat,
			errors.ErrorTypeIngestion, errors.CodeUnknownFormat,
			"unknown dataset format").WithDetails(string(format))
	}
}

// ReadDatasetFile reads a dataset from a file.
func ReadDatasetFile(path string, kind models.RecordKind, format Format) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngestion,
			errors.CodeReadFailed, "cannot open dataset file").WithDetails(path)
	}
	defer f.Close()
	return ReadDataset(f, kind, format)
}

// ReadTrajectories reads a line-format trajectory dataset.
func ReadTrajectories(r io.Reader) (*models.Dataset, error) {
	return readLines(r, models.KindTrajectory)
}

// ReadFrequencyVectors reads a line-format frequency vector dataset.
func ReadFrequencyVectors(r io.Reader) (*models.Dataset, error) {
	return readLines(r, models.KindFrequencyVector)
}

// ReadProbabilityVectors reads a line-format probability vector dataset.
func ReadProbabilityVectors(r io.Reader) (*models.Dataset, error) {
	return readLines(r, models.KindProbabilityVector)
}

// ReadTrajectoryRows reads a row-format trajectory dataset.
func ReadTrajectoryRows(r io.Reader) (*models.Dataset, error) {
	return readRows(r, models.KindTrajectory)
}

// ReadFrequencyVectorRows reads a row-format frequency vector dataset.
func ReadFrequencyVectorRows(r io.Reader) (*models.Dataset, error) {
	return readRows(r, models.KindFrequencyVector)
}

// ReadProbabilityVectorRows reads a row-format probability vector dataset.
func ReadProbabilityVectorRows(r io.Reader) (*models.Dataset, error) {
	return readRows(r, models.KindProbabilityVector)
}

// ReadTrajectoriesDateTime reads a line-format trajectory dataset whose
// timestamps are split into separate date and time columns:
// id,x1,y1,date1,time1,x2,y2,date2,time2,... The two columns are concatenated
// into one decimal timestamp.
func ReadTrajectoriesDateTime(r io.Reader) (*models.Dataset, error) {
	dataset := models.NewDataset()
	cr := newCSVReader(r)
	line := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, malformedRow(line, err.Error())
		}
		if len(fields) < 1 || (len(fields)-1)%4 != 0 {
			return nil, malformedRow(line, "expected id followed by x,y,date,time groups")
		}
		record := models.NewTrajectory(strings.TrimSpace(fields[0]))
		for i := 1; i < len(fields); i += 4 {
			visit, err := parseVisit(models.KindTrajectory,
				fields[i], fields[i+1], strings.TrimSpace(fields[i+2])+strings.TrimSpace(fields[i+3]))
			if err != nil {
				return nil, malformedRow(line, err.Error())
			}
			record.AddVisit(visit)
		}
		dataset.Add(record)
	}
	return finish(dataset)
}

// readLines parses the one-individual-per-line representation.
func readLines(r io.Reader, kind models.RecordKind) (*models.Dataset, error) {
	dataset := models.NewDataset()
	cr := newCSVReader(r)
	line := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, malformedRow(line, err.Error())
		}
		if len(fields) < 1 || (len(fields)-1)%3 != 0 {
			return nil, malformedRow(line, "expected id followed by x,y,payload groups")
		}
		record := newRecord(kind, strings.TrimSpace(fields[0]))
		for i := 1; i < len(fields); i += 3 {
			visit, err := parseVisit(kind, fields[i], fields[i+1], fields[i+2])
			if err != nil {
				return nil, malformedRow(line, err.Error())
			}
			record.AddVisit(visit)
		}
		dataset.Add(record)
	}
	return finish(dataset)
}

// readRows parses the one-visit-per-row representation, grouping rows by id.
// A row with an unseen id starts a new record; later rows with the same id
// extend it wherever they appear in the file.
func readRows(r io.Reader, kind models.RecordKind) (*models.Dataset, error) {
	dataset := models.NewDataset()
	cr := newCSVReader(r)
	line := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, malformedRow(line, err.Error())
		}
		if len(fields) != 4 {
			return nil, malformedRow(line, fmt.Sprintf("expected 4 fields, got %d", len(fields)))
		}
		id := strings.TrimSpace(fields[0])
		record, ok := dataset.Get(id)
		if !ok {
			record = newRecord(kind, id)
			dataset.Add(record)
		}
		visit, err := parseVisit(kind, fields[1], fields[2], fields[3])
		if err != nil {
			return nil, malformedRow(line, err.Error())
		}
		record.AddVisit(visit)
	}
	return finish(dataset)
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

func newRecord(kind models.RecordKind, id string) *models.Record {
	switch kind {
	case models.KindFrequencyVector:
		return models.NewFrequencyVector(id)
	case models.KindProbabilityVector:
		return models.NewProbabilityVector(id)
	default:
		return models.NewTrajectory(id)
	}
}

func parseVisit(kind models.RecordKind, xs, ys, payload string) (models.Visit, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return models.Visit{}, fmt.Errorf("bad x coordinate %q", xs)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return models.Visit{}, fmt.Errorf("bad y coordinate %q", ys)
	}
	payload = strings.TrimSpace(payload)
	switch kind {
	case models.KindFrequencyVector:
		freq, err := strconv.ParseInt(payload, 10, 64)
		if err != nil || freq < 0 {
			return models.Visit{}, fmt.Errorf("bad frequency %q", payload)
		}
		return models.FrequencyVisit(x, y, freq), nil
	case models.KindProbabilityVector:
		prob, err := strconv.ParseFloat(payload, 64)
		if err != nil || prob < 0 || prob > 1 {
			return models.Visit{}, fmt.Errorf("bad probability %q", payload)
		}
		return models.ProbabilityVisit(x, y, prob), nil
	default:
		t, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return models.Visit{}, fmt.Errorf("bad timestamp %q", payload)
		}
		return models.TrajectoryVisit(x, y, t), nil
	}
}

func malformedRow(line int, detail string) error {
	return errors.WrapError(errors.ErrMalformedRow,
		errors.ErrorTypeIngestion, errors.CodeMalformedRow,
		"malformed dataset row").
		WithDetails(detail).
		WithContext("line", line)
}

func finish(dataset *models.Dataset) (*models.Dataset, error) {
	if dataset.Len() == 0 {
		return nil, errors.WrapError(errors.ErrEmptyDataset,
			errors.ErrorTypeIngestion, errors.CodeEmptyDataset,
			"dataset contains no records")
	}
	return dataset, nil
}
