package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	domainbackup "hungrylist/internal/domain/backup"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want table, json or yaml)", s)
	}
}

// listedBackup mirrors the HTTP representation of a backup.
type listedBackup struct {
	ID        string    `json:"id" yaml:"id"`
	Filename  string    `json:"filename" yaml:"filename"`
	Reason    string    `json:"reason" yaml:"reason"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Render writes records to w in the given format.
func Render(w io.Writer, format Format, records []*domainbackup.Record) error {
	rows := make([]listedBackup, len(records))
	for i, r := range records {
		rows[i] = listedBackup{
			ID:        r.ID,
			Filename:  r.Filename,
			Reason:    string(r.Reason),
			CreatedAt: r.CreatedAt.UTC(),
		}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tREASON\tCREATED AT\tFILENAME")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Reason, r.CreatedAt.Format(time.RFC3339), r.Filename)
		}
		return tw.Flush()
	}
}
