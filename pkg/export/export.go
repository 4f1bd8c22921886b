package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
)

// WriteJSON writes rows to w in JSON format.
func WriteJSON(w io.Writer, rows any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}

// WriteCSV writes a header row followed by the data rows as RFC4180 CSV.
// Fields containing commas, quotes or newlines are quoted with internal
// quotes doubled, so the output round-trips through any standard CSV reader.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
