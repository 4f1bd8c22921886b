package reports

import (
	"sort"
	"strconv"

	"github.com/uyildiz/vehicle-maintenance/internal/maintenance"
	"github.com/uyildiz/vehicle-maintenance/internal/models"
)

// SpendFilter narrows a record set to one vehicle and/or an inclusive date
// range. Empty fields leave that dimension open.
type SpendFilter struct {
	VehicleID string
	From      string // YYYY-MM-DD
	To        string // YYYY-MM-DD
}

// SpendSummary holds the headline spend figures for a record set.
type SpendSummary struct {
	TotalCents int64 `json:"total_cents"`
	Count      int   `json:"count"`
	AvgCents   int64 `json:"avg_cents"`
}

// TypeSpend is the total spend for one service type.
type TypeSpend struct {
	Type       models.ServiceType `json:"type"`
	Label      string             `json:"label"`
	TotalCents int64              `json:"total_cents"`
}

// MonthSpend is the total spend for one calendar month.
type MonthSpend struct {
	Month      string `json:"month"` // YYYY-MM
	TotalCents int64  `json:"total_cents"`
}

// FilterRecords applies a spend filter. Filter dates are validated; record
// dates are compared as YYYY-MM-DD strings, which orders chronologically.
func FilterRecords(records []models.ServiceRecord, filter SpendFilter) ([]models.ServiceRecord, error) {
	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := maintenance.ParseDate(d); err != nil {
			return nil, err
		}
	}
	var out []models.ServiceRecord
	for _, r := range records {
		if filter.VehicleID != "" && r.VehicleID != filter.VehicleID {
			continue
		}
		if filter.From != "" && r.ServiceDate < filter.From {
			continue
		}
		if filter.To != "" && r.ServiceDate > filter.To {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Summarize computes total, count and average cost. The average rounds to
// the nearest cent.
func Summarize(records []models.ServiceRecord) SpendSummary {
	var total int64
	for _, r := range records {
		total += r.CostCents
	}
	summary := SpendSummary{TotalCents: total, Count: len(records)}
	if summary.Count > 0 {
		summary.AvgCents = (total + int64(summary.Count)/2) / int64(summary.Count)
	}
	return summary
}

// SpendByType totals cost per service type, largest spend first.
func SpendByType(records []models.ServiceRecord) []TypeSpend {
	totals := make(map[models.ServiceType]int64)
	for _, r := range records {
		totals[r.Type] += r.CostCents
	}
	out := make([]TypeSpend, 0, len(totals))
	for typ, cents := range totals {
		out = append(out, TypeSpend{Type: typ, Label: typ.Label(), TotalCents: cents})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalCents != out[j].TotalCents {
			return out[i].TotalCents > out[j].TotalCents
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// SpendByMonth totals cost per YYYY-MM month, oldest first.
func SpendByMonth(records []models.ServiceRecord) []MonthSpend {
	totals := make(map[string]int64)
	for _, r := range records {
		if len(r.ServiceDate) < 7 {
			continue
		}
		totals[r.ServiceDate[:7]] += r.CostCents
	}
	out := make([]MonthSpend, 0, len(totals))
	for month, cents := range totals {
		out = append(out, MonthSpend{Month: month, TotalCents: cents})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CSVHeader is the column order for record exports.
var CSVHeader = []string{"Vehicle", "Type", "Date", "Mileage", "CostUSD", "Shop", "Notes"}

// CSVRows renders records as export rows in CSVHeader order. Records whose
// vehicle is missing from the collection keep the raw id as the label.
func CSVRows(vehicles []models.Vehicle, records []models.ServiceRecord) [][]string {
	labels := make(map[string]string, len(vehicles))
	for _, v := range vehicles {
		labels[v.ID.Hex()] = v.Display()
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		label, ok := labels[r.VehicleID]
		if !ok {
			label = r.VehicleID
		}
		rows = append(rows, []string{
			label,
			r.Type.Label(),
			r.ServiceDate,
			strconv.Itoa(r.Mileage),
			models.FormatMoneyCents(r.CostCents),
			r.ShopName,
			r.Notes,
		})
	}
	return rows
}
