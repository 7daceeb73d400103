//Package dexcom reads the CSV export format of the Dexcom Clarity service
package dexcom

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

//Column headers as written by the Dexcom export. All other columns are ignored.
const (
	TimestampColumn = "Timestamp (YYYY-MM-DDThh:mm:ss)"
	GlucoseColumn   = "Glucose Value (mg/dL)"
)

//timestampLayout matches the export's timestamp column name
const timestampLayout = "2006-01-02T15:04:05"

//lowReading replaces the sentinel "Low" the sensor emits below its measurement range
const lowReading = 30

//Reading is one cleaned glucose measurement from the export
type Reading struct {
	Timestamp time.Time
	//Value is the glucose level in mg/dL
	Value int
}

//ReadExport parses a Dexcom CSV export from r. It returns the cleaned readings
//together with the count of data rows that were skipped because their timestamp
//or glucose value was blank, unparseable or negative. Device/user metadata rows,
//which the export emits with an empty glucose column, count as skipped too.
//An error is only returned if the file itself is unreadable or its header lacks
//the timestamp or glucose column.
func ReadExport(r io.Reader) ([]Reading, int, error) {
	csvReader := csv.NewReader(r)
	//the export pads metadata rows, so row lengths vary
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read csv header : %v", err)
	}

	timeIDX, valueIDX := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case TimestampColumn:
			timeIDX = i
		case GlucoseColumn:
			valueIDX = i
		}
	}
	if timeIDX == -1 || valueIDX == -1 {
		return nil, 0, fmt.Errorf("header is missing the %q or %q column", TimestampColumn, GlucoseColumn)
	}

	readings := make([]Reading, 0)
	skipped := 0
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read csv row : %v", err)
		}
		reading, ok := cleanRow(row, timeIDX, valueIDX)
		if !ok {
			skipped++
			continue
		}
		readings = append(readings, reading)
	}

	return readings, skipped, nil
}

//cleanRow extracts the timestamp and glucose columns from row, applying the
//same cleaning rules as the original export tooling: "Low" becomes 30 and
//rows with blank, unparseable or negative values are rejected
func cleanRow(row []string, timeIDX, valueIDX int) (Reading, bool) {
	if timeIDX >= len(row) || valueIDX >= len(row) {
		return Reading{}, false
	}

	rawValue := strings.TrimSpace(row[valueIDX])
	if rawValue == "Low" {
		rawValue = strconv.Itoa(lowReading)
	}
	value, err := strconv.Atoi(rawValue)
	if err != nil || value < 0 {
		return Reading{}, false
	}

	timestamp, err := time.Parse(timestampLayout, strings.TrimSpace(row[timeIDX]))
	if err != nil {
		return Reading{}, false
	}

	return Reading{Timestamp: timestamp, Value: value}, true
}
