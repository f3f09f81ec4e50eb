package eventlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// JSONLConfig names the JSON fields a JSONL source uses for the
// required case/activity/timestamp fields and the optional
// resource/lifecycle fields. Every other key is carried through as an
// Event.Attribute.
type JSONLConfig struct {
	CaseIDField      string
	ActivityField    string
	TimestampField   string
	ResourceField    string
	LifecycleField   string
	TimestampFormats []string
}

// DefaultJSONLConfig returns the field names and timestamp formats
// most process-mining exports use out of the box.
func DefaultJSONLConfig() JSONLConfig {
	return JSONLConfig{
		CaseIDField:    "case_id",
		ActivityField:  "activity",
		TimestampField: "timestamp",
		ResourceField:  "resource",
		LifecycleField: "lifecycle",
		TimestampFormats: []string{
			time.RFC3339,
			time.RFC3339Nano,
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05.000",
			"2006-01-02T15:04:05.000",
			"2006-01-02T15:04:05Z",
			"2006-01-02",
		},
	}
}

// ParseJSONL opens filename and parses it as a JSONL event log.
func ParseJSONL(filename string, cfg JSONLConfig) (*EventLog, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("eventlog: opening %s: %w", filename, err)
	}
	defer f.Close()

	return ParseJSONLReader(f, cfg)
}

func validateJSONLConfig(cfg JSONLConfig) error {
	switch {
	case cfg.CaseIDField == "":
		return fmt.Errorf("%w: CaseIDField", ErrMissingField)
	case cfg.ActivityField == "":
		return fmt.Errorf("%w: ActivityField", ErrMissingField)
	case cfg.TimestampField == "":
		return fmt.Errorf("%w: TimestampField", ErrMissingField)
	}
	return nil
}

// ParseJSONLReader parses an event log from r, one JSON object per
// line, using cfg's field layout.
func ParseJSONLReader(r io.Reader, cfg JSONLConfig) (*EventLog, error) {
	if err := validateJSONLConfig(cfg); err != nil {
		return nil, err
	}
	formats := cfg.TimestampFormats
	if len(formats) == 0 {
		formats = DefaultJSONLConfig().TimestampFormats
	}

	log := NewEventLog()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		event, err := eventFromJSONLine(line, cfg, formats)
		if err != nil {
			return nil, fmt.Errorf("eventlog: line %d: %w", lineNum, err)
		}
		log.AddEvent(event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("eventlog: reading JSONL: %w", err)
	}

	log.SortTraces()
	slog.Debug("eventlog: parsed JSONL", "cases", log.NumCases(), "events", log.NumEvents())
	return log, nil
}

func eventFromJSONLine(line string, cfg JSONLConfig, formats []string) (Event, error) {
	var record map[string]interface{}
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrBadJSONLine, err)
	}

	caseID, err := stringField(record, cfg.CaseIDField)
	if err != nil {
		return Event{}, err
	}
	activity, err := stringField(record, cfg.ActivityField)
	if err != nil {
		return Event{}, err
	}
	timestamp, err := timestampField(record, cfg.TimestampField, formats)
	if err != nil {
		return Event{}, err
	}

	event := Event{
		CaseID:     caseID,
		Activity:   activity,
		Timestamp:  timestamp,
		Attributes: make(map[string]interface{}),
	}
	if cfg.ResourceField != "" {
		if v, err := stringField(record, cfg.ResourceField); err == nil {
			event.Resource = v
		}
	}
	if cfg.LifecycleField != "" {
		if v, err := stringField(record, cfg.LifecycleField); err == nil {
			event.Lifecycle = v
		}
	}

	for key, value := range record {
		switch key {
		case cfg.CaseIDField, cfg.ActivityField, cfg.TimestampField, cfg.ResourceField, cfg.LifecycleField:
			continue
		}
		event.Attributes[key] = value
	}
	return event, nil
}

func stringField(record map[string]interface{}, field string) (string, error) {
	value, ok := record[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingJSONKey, field)
	}
	switch v := value.(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("%w: %q", ErrEmptyField, field)
		}
		return v, nil
	case float64:
		return fmt.Sprintf("%.0f", v), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func timestampField(record map[string]interface{}, field string, formats []string) (time.Time, error) {
	value, ok := record[field]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMissingJSONKey, field)
	}
	switch v := value.(type) {
	case string:
		return parseTimestamp(v, formats)
	case float64:
		return unixTime(int64(v)), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q is %T", ErrBadTimestampType, field, value)
	}
}

// unixTime interprets v as Unix seconds, or milliseconds if it's large
// enough that seconds-since-epoch would overflow a sane recent date.
func unixTime(v int64) time.Time {
	const millisecondFloor = 1e12
	if v > millisecondFloor {
		return time.Unix(v/1000, (v%1000)*int64(time.Millisecond))
	}
	return time.Unix(v, 0)
}

// ParseJSONLBytes parses an event log from in-memory JSONL data.
func ParseJSONLBytes(data []byte, cfg JSONLConfig) (*EventLog, error) {
	return ParseJSONLReader(bytes.NewReader(data), cfg)
}
