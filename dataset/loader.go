// Package dataset loads the static collection of recorded accident points.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"accident-map/logger"
	"accident-map/model"

	"github.com/go-playground/validator/v10"
)

// rawRecord keeps the coordinates undecoded so numbers and numeric strings
// can both be accepted.
type rawRecord struct {
	Latitude  json.RawMessage `json:"Latitude"`
	Longitude json.RawMessage `json:"Longitude"`
}

type record struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

// Loader reads and validates the accident dataset.
type Loader struct {
	client   *http.Client
	validate *validator.Validate
	log      *logger.Logger
}

// NewLoader creates a loader. client is used for http(s) sources.
func NewLoader(client *http.Client, log *logger.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		client:   client,
		validate: validator.New(),
		log:      log,
	}
}

// Load reads the dataset from source, a file path or an http(s) URL.
// Malformed records are logged and skipped.
func (l *Loader) Load(ctx context.Context, source string) ([]model.AccidentPoint, error) {
	body, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}
	return l.Parse(body)
}

// Parse decodes a JSON array of {Latitude, Longitude} records.
func (l *Loader) Parse(body []byte) ([]model.AccidentPoint, error) {
	var raw []rawRecord
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode accident dataset: %w", err)
	}

	points := make([]model.AccidentPoint, 0, len(raw))
	skipped := 0
	for i, r := range raw {
		point, err := l.parseRecord(r)
		if err != nil {
			skipped++
			l.log.Warn("invalid coordinates for data point", "index", i, "error", err)
			continue
		}
		points = append(points, point)
	}

	if skipped > 0 {
		l.log.Info("accident dataset loaded with invalid records", "valid", len(points), "skipped", skipped)
	}
	return points, nil
}

func (l *Loader) parseRecord(r rawRecord) (model.AccidentPoint, error) {
	lat, err := parseCoordinate(r.Latitude)
	if err != nil {
		return model.AccidentPoint{}, fmt.Errorf("latitude: %w", err)
	}
	lng, err := parseCoordinate(r.Longitude)
	if err != nil {
		return model.AccidentPoint{}, fmt.Errorf("longitude: %w", err)
	}

	rec := record{Latitude: lat, Longitude: lng}
	if err := l.validate.Struct(rec); err != nil {
		return model.AccidentPoint{}, err
	}
	return model.AccidentPoint{Latitude: lat, Longitude: lng}, nil
}

// parseCoordinate accepts a JSON number or a string holding a number.
func parseCoordinate(raw json.RawMessage) (float64, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, fmt.Errorf("missing value")
	}

	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		text = strings.TrimSpace(s)
		if text == "" {
			return 0, fmt.Errorf("empty value")
		}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	return v, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		body, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read accident dataset: %w", err)
		}
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch accident dataset: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch accident dataset: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
