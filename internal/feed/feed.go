// Package feed decodes the ordered work item and worker collections handed
// to the engine. The host platform owns the records; this package only maps
// its JSON export onto the core model, preserving order.
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ouestbat/chantier/core/model"
)

type itemRecord struct {
	ID        string `json:"id"`
	Task      string `json:"task"`
	Operation string `json:"operation"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	Quantity  string `json:"quantity"`
	Duration  int    `json:"duration_min"`
	DependsOn string `json:"depends_on"`
	Zone      string `json:"zone"`
	Coords    string `json:"coords"`
	Params    string `json:"params"`
	Crew      string `json:"crew"`
}

type workerRecord struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Level  float64 `json:"level"`
	Role   string  `json:"role"`
	Grade  string  `json:"grade"`
	Busy   string  `json:"busy"`
	Coords string  `json:"coords"`
}

// DecodeItems reads the work item collection from r.
func DecodeItems(r io.Reader) ([]model.WorkItem, error) {
	var recs []itemRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode work items: %w", err)
	}
	items := make([]model.WorkItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, model.WorkItem{
			ID:        rec.ID,
			Task:      rec.Task,
			Operation: rec.Operation,
			Status:    rec.Status,
			StartDate: parseDate(rec.StartDate),
			Quantity:  rec.Quantity,
			Duration:  rec.Duration,
			DependsOn: rec.DependsOn,
			Zone:      rec.Zone,
			Coords:    rec.Coords,
			Params:    rec.Params,
			Crew:      rec.Crew,
		})
	}
	return items, nil
}

// DecodeWorkers reads the worker collection from r.
func DecodeWorkers(r io.Reader) ([]model.Worker, error) {
	var recs []workerRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode workers: %w", err)
	}
	workers := make([]model.Worker, 0, len(recs))
	for _, rec := range recs {
		workers = append(workers, model.Worker{
			ID:     rec.ID,
			Name:   rec.Name,
			Level:  rec.Level,
			Role:   rec.Role,
			Grade:  rec.Grade,
			Busy:   rec.Busy,
			Coords: rec.Coords,
		})
	}
	return workers, nil
}

// LoadItems reads the work item collection from a file.
func LoadItems(path string) ([]model.WorkItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeItems(f)
}

// LoadWorkers reads the worker collection from a file.
func LoadWorkers(path string) ([]model.Worker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeWorkers(f)
}

// parseDate accepts a date or full timestamp; malformed values count as empty.
func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
