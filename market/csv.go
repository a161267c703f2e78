package market

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Column layout shared with whatever produced the file. Enrichment columns
// (indicator values etc.) may follow volume and are ignored on load.
var csvHeader = []string{"timestamp", "open", "high", "low", "close", "volume"}

// LoadCSV reads a bar series from a CSV file with the columnar layout
// timestamp,open,high,low,close,volume[,extra...]. A header row is optional.
func LoadCSV(path, pair string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("market: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // enrichment columns vary

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("market: read %s: %w", path, err)
	}

	bars := make([]Bar, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == csvHeader[0] {
			continue
		}
		if len(row) < len(csvHeader) {
			return nil, fmt.Errorf("market: %s line %d: want at least %d columns, got %d",
				path, i+1, len(csvHeader), len(row))
		}
		bar, err := parseBar(row)
		if err != nil {
			return nil, fmt.Errorf("market: %s line %d: %w", path, i+1, err)
		}
		bars = append(bars, bar)
	}

	return NewSeries(pair, bars)
}

// SaveCSV writes the series back out in the same columnar layout.
func SaveCSV(s *Series, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("market: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, b := range s.Bars() {
		row := []string{
			strconv.FormatInt(b.Timestamp, 10),
			ff(b.Open), ff(b.High), ff(b.Low), ff(b.Close), ff(b.Volume),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func parseBar(row []string) (Bar, error) {
	ts, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return Bar{}, fmt.Errorf("bad timestamp %q", row[0])
	}
	vals := make([]float64, 5)
	for i := 1; i < 6; i++ {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad %s %q", csvHeader[i], row[i])
		}
		vals[i-1] = v
	}
	return Bar{
		Timestamp: ts,
		Open:      vals[0],
		High:      vals[1],
		Low:       vals[2],
		Close:     vals[3],
		Volume:    vals[4],
	}, nil
}

func ff(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
