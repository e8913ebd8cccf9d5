package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tdhoang/weather-insight/internal/series"
)

// FileCache persists series snapshots as CSV files, one per location
// key, so a restart does not cost a refetch. The format is one row per
// day with a fixed metric column order; an empty cell is a missing
// value, never zero.
type FileCache struct {
	dir string
}

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// Save writes the series snapshot for a key, replacing any previous one.
func (c *FileCache) Save(key string, s *series.Series) error {
	f, err := os.Create(c.path(key))
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	metrics := series.Metrics()
	header := make([]string, 0, len(metrics)+1)
	header = append(header, "date")
	for _, m := range metrics {
		header = append(header, string(m))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range s.Records {
		row := make([]string, 0, len(metrics)+1)
		row = append(row, r.Date.Format("2006-01-02"))
		for _, m := range metrics {
			if v, ok := r.Value(m); ok {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Load reads the snapshot for a key. The second return is false when
// no snapshot exists.
func (c *FileCache) Load(key string) (*series.Series, bool, error) {
	f, err := os.Open(c.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("open cache file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("read cache file: %w", err)
	}
	if len(rows) == 0 {
		return series.New(), true, nil
	}

	header := rows[0]
	records := make([]series.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || len(row) != len(header) {
			continue
		}
		date, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil, false, fmt.Errorf("parse cached date %q: %w", row[0], err)
		}
		r := series.NewRecord(date.UTC())
		for i := 1; i < len(header); i++ {
			if row[i] == "" {
				continue
			}
			m, err := series.ParseMetric(header[i])
			if err != nil {
				continue
			}
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, false, fmt.Errorf("parse cached value %q: %w", row[i], err)
			}
			r.Values[m] = v
		}
		records = append(records, r)
	}

	return series.New(records...), true, nil
}

// path sanitizes the key into a safe filename.
func (c *FileCache) path(key string) string {
	safe := strings.Map(func(ch rune) rune {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_', ch == '.':
			return ch
		default:
			return '_'
		}
	}, key)
	return filepath.Join(c.dir, safe+".csv")
}
