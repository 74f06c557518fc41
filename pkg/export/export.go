package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ouestbat/chantier/core/plan"
)

// WriteJSON writes the schedule to w in JSON format.
func WriteJSON(w io.Writer, items []plan.ScheduledItem) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// WriteCSV writes the schedule to w in CSV format.
func WriteCSV(w io.Writer, items []plan.ScheduledItem) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "name", "kind", "zone", "start", "end", "duration_min", "source", "required", "workers"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, si := range items {
		rec := []string{
			si.ID,
			si.Name,
			string(si.Kind),
			si.Zone,
			si.Start.Format(time.RFC3339),
			si.End.Format(time.RFC3339),
			strconv.Itoa(si.Duration),
			string(si.Source),
			strconv.Itoa(si.Crew),
			strings.Join(si.Workers, " "),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
