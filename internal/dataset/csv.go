package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Fixed identity columns of the dataset file; every other column is treated
// as a stat id. Empty stat cells mean null.
var identityColumns = map[string]bool{
	"player":    true,
	"player_id": true,
	"season":    true,
	"team":      true,
	"position":  true,
}

// LoadCSV reads the flat dataset file produced by `statpad build`.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return New(rows), nil
}

// ReadCSV parses dataset rows from CSV content.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, required := range []string{"player", "season", "team", "position"} {
		if !contains(cols, required) {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		row := Row{Stats: make(map[string]float64)}
		for i, cell := range rec {
			if i >= len(cols) {
				break
			}
			cell = strings.TrimSpace(cell)
			switch cols[i] {
			case "player":
				row.Player = cell
			case "player_id":
				row.PlayerID = cell
			case "team":
				row.Team = cell
			case "position":
				row.Position = strings.ToUpper(cell)
			case "season":
				row.Season, err = strconv.Atoi(cell)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad season %q", line, cell)
				}
			default:
				if cell == "" {
					continue // null stat
				}
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad value %q for %s", line, cell, cols[i])
				}
				row.Stats[cols[i]] = v
			}
		}
		if row.Player == "" || row.Season == 0 {
			continue // skip blank filler lines
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes dataset rows with the given stat columns, identity columns
// first. Null stats become empty cells.
func WriteCSV(w io.Writer, rows []Row, statCols []string) error {
	cw := csv.NewWriter(w)

	header := append([]string{"player", "player_id", "season", "team", "position"}, statCols...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, len(header))
	for _, row := range rows {
		rec[0] = row.Player
		rec[1] = row.PlayerID
		rec[2] = strconv.Itoa(row.Season)
		rec[3] = row.Team
		rec[4] = row.Position
		for i, stat := range statCols {
			if v, ok := row.Stats[stat]; ok {
				rec[5+i] = strconv.FormatFloat(v, 'f', -1, 64)
			} else {
				rec[5+i] = ""
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
