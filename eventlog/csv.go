package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVConfig names the columns a CSV source uses for the required
// case/activity/timestamp fields and the optional resource/lifecycle
// fields. Every other column is carried through as an Event.Attribute.
type CSVConfig struct {
	CaseIDColumn     string
	ActivityColumn   string
	TimestampColumn  string
	ResourceColumn   string
	LifecycleColumn  string
	TimestampFormats []string
	Delimiter        rune
	SkipRows         int
}

// DefaultCSVConfig returns the column names and timestamp formats most
// process-mining exports use out of the box.
func DefaultCSVConfig() CSVConfig {
	return CSVConfig{
		CaseIDColumn:    "case_id",
		ActivityColumn:  "activity",
		TimestampColumn: "timestamp",
		ResourceColumn:  "resource",
		LifecycleColumn: "lifecycle",
		TimestampFormats: []string{
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05.000",
			"2006-01-02T15:04:05.000",
			"2006-01-02",
			"01/02/2006 15:04:05",
			"01/02/2006",
		},
		Delimiter: ',',
	}
}

// ParseCSV opens filename and parses it as a CSV event log.
func ParseCSV(filename string, cfg CSVConfig) (*EventLog, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("eventlog: opening %s: %w", filename, err)
	}
	defer f.Close()

	return ParseCSVReader(f, cfg)
}

// columnLayout resolves CSVConfig column names to indices within one
// concrete header row.
type columnLayout struct {
	caseIdx, activityIdx, timestampIdx int
	resourceIdx, lifecycleIdx          int
	header                             []string
}

func resolveColumns(header []string, cfg CSVConfig) (columnLayout, error) {
	byName := make(map[string]int, len(header))
	for i, col := range header {
		byName[strings.ToLower(strings.TrimSpace(col))] = i
	}

	find := func(name string, required bool) (int, error) {
		if name == "" {
			if required {
				return -1, ErrMissingColumn
			}
			return -1, nil
		}
		idx, ok := byName[strings.ToLower(name)]
		if !ok {
			if required {
				return -1, fmt.Errorf("%w: %q (have %v)", ErrColumnNotFound, name, header)
			}
			return -1, nil
		}
		return idx, nil
	}

	var layout columnLayout
	layout.header = header

	var err error
	if layout.caseIdx, err = find(cfg.CaseIDColumn, true); err != nil {
		return columnLayout{}, err
	}
	if layout.activityIdx, err = find(cfg.ActivityColumn, true); err != nil {
		return columnLayout{}, err
	}
	if layout.timestampIdx, err = find(cfg.TimestampColumn, true); err != nil {
		return columnLayout{}, err
	}
	if layout.resourceIdx, err = find(cfg.ResourceColumn, false); err != nil {
		return columnLayout{}, err
	}
	if layout.lifecycleIdx, err = find(cfg.LifecycleColumn, false); err != nil {
		return columnLayout{}, err
	}
	return layout, nil
}

// eventFromRecord turns one CSV row into an Event per layout, carrying
// every unclaimed column through as an attribute.
func eventFromRecord(record []string, layout columnLayout, formats []string) (Event, error) {
	if len(record) <= layout.caseIdx || len(record) <= layout.activityIdx || len(record) <= layout.timestampIdx {
		return Event{}, ErrShortRecord
	}

	caseID := strings.TrimSpace(record[layout.caseIdx])
	activity := strings.TrimSpace(record[layout.activityIdx])
	if caseID == "" || activity == "" {
		return Event{}, ErrEmptyField
	}

	timestamp, err := parseTimestamp(strings.TrimSpace(record[layout.timestampIdx]), formats)
	if err != nil {
		return Event{}, err
	}

	event := Event{
		CaseID:     caseID,
		Activity:   activity,
		Timestamp:  timestamp,
		Attributes: make(map[string]interface{}),
	}
	if layout.resourceIdx >= 0 && layout.resourceIdx < len(record) {
		event.Resource = strings.TrimSpace(record[layout.resourceIdx])
	}
	if layout.lifecycleIdx >= 0 && layout.lifecycleIdx < len(record) {
		event.Lifecycle = strings.TrimSpace(record[layout.lifecycleIdx])
	}

	claimed := map[int]bool{layout.caseIdx: true, layout.activityIdx: true, layout.timestampIdx: true}
	if layout.resourceIdx >= 0 {
		claimed[layout.resourceIdx] = true
	}
	if layout.lifecycleIdx >= 0 {
		claimed[layout.lifecycleIdx] = true
	}
	for i, value := range record {
		if claimed[i] || i >= len(layout.header) || layout.header[i] == "" {
			continue
		}
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if num, err := strconv.ParseFloat(trimmed, 64); err == nil {
			event.Attributes[layout.header[i]] = num
		} else {
			event.Attributes[layout.header[i]] = trimmed
		}
	}
	return event, nil
}

// ParseCSVReader parses an event log from r using cfg's column layout.
func ParseCSVReader(r io.Reader, cfg CSVConfig) (*EventLog, error) {
	reader := csv.NewReader(r)
	// Rows may differ in length; eventFromRecord reports rows too short
	// for the required columns as ErrShortRecord.
	reader.FieldsPerRecord = -1
	if cfg.Delimiter != 0 {
		reader.Comma = cfg.Delimiter
	}

	for i := 0; i < cfg.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("eventlog: skipping row %d: %w", i, err)
		}
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("eventlog: reading header: %w", err)
	}
	layout, err := resolveColumns(header, cfg)
	if err != nil {
		return nil, err
	}

	formats := cfg.TimestampFormats
	if len(formats) == 0 {
		formats = DefaultCSVConfig().TimestampFormats
	}

	log := NewEventLog()
	lineNum := cfg.SkipRows + 2

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("eventlog: reading line %d: %w", lineNum, err)
		}

		event, err := eventFromRecord(record, layout, formats)
		if err != nil {
			return nil, fmt.Errorf("eventlog: line %d: %w", lineNum, err)
		}
		log.AddEvent(event)
		lineNum++
	}

	log.SortTraces()
	slog.Debug("eventlog: parsed CSV", "cases", log.NumCases(), "events", log.NumEvents())
	return log, nil
}

// parseTimestamp tries each configured layout in order, returning the
// first successful parse.
func parseTimestamp(s string, formats []string) (time.Time, error) {
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}
