package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"

	"github.com/turtacn/FragSAR/pkg/errors"
	moltypes "github.com/turtacn/FragSAR/pkg/types/molecule"
)

// Output formats accepted by --output.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
)

func isValidFormat(f string) bool {
	switch f {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV:
		return true
	}
	return false
}

var rowHeaders = []string{"SMILES", "MW", "cLogP", "HBD", "HBA", "QED", "Ro5"}

func rowFields(r moltypes.DescriptorRow) []string {
	return []string{
		r.SMILES,
		strconv.FormatFloat(r.MW, 'f', 3, 64),
		strconv.FormatFloat(r.CLogP, 'f', 3, 64),
		strconv.Itoa(r.HBD),
		strconv.Itoa(r.HBA),
		strconv.FormatFloat(r.QED, 'f', 3, 64),
		strconv.Itoa(r.RO5),
	}
}

// ro5Cell colours the violation count: green for none, yellow for one, red
// beyond that.
func ro5Cell(n int, noColor bool) string {
	var c *color.Color
	switch {
	case n == 0:
		c = color.New(color.FgGreen)
	case n == 1:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgRed, color.Bold)
	}
	if noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.Sprint(n)
}

// writeRows renders descriptor rows in the requested format.
func writeRows(w io.Writer, rows []moltypes.DescriptorRow, format string, noColor bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatYAML:
		return writeYAML(w, rows)
	case FormatCSV:
		records := make([][]string, 0, len(rows))
		for _, r := range rows {
			records = append(records, rowFields(r))
		}
		return writeCSV(w, rowHeaders, records)
	}

	table := tablewriter.NewWriter(w)
	table.Header(append([]string{"#"}, rowHeaders...))
	for i, r := range rows {
		fields := rowFields(r)
		fields[len(fields)-1] = ro5Cell(r.RO5, noColor)
		if err := table.Append(append([]string{strconv.Itoa(i + 1)}, fields...)); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d product(s)\n", len(rows))
	return err
}

// writeGroups renders the fragment table.
func writeGroups(w io.Writer, groups []moltypes.Group, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, groups)
	case FormatYAML:
		return writeYAML(w, groups)
	}

	records := make([][]string, 0, len(groups))
	for i, g := range groups {
		records = append(records, []string{strconv.Itoa(i + 1), g.Tag, g.SMILES})
	}
	if format == FormatCSV {
		return writeCSV(w, []string{"#", "Tag", "SMILES"}, records)
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Tag", "SMILES")
	for _, rec := range records {
		if err := table.Append(rec); err != nil {
			return err
		}
	}
	return table.Render()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "json encoding failed")
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "yaml encoding failed")
	}
	_, err = w.Write(data)
	return err
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

//Personal.AI order the ending
