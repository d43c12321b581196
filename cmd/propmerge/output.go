package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"golang.org/x/term"

	"github.com/redhatinsights/propmerge/internal/l10n"
	"github.com/redhatinsights/propmerge/internal/merge"
	"github.com/redhatinsights/propmerge/internal/properties"
	"github.com/redhatinsights/propmerge/internal/watch"
)

const (
	formatProperties = "properties"
	formatJSON       = "json"
	formatTOML       = "toml"
	formatTable      = "table"
)

// defaultFormat is a table for people and properties for pipes.
func defaultFormat(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return formatTable
	}
	return formatProperties
}

func write(w io.Writer, format string, props properties.Map, enc properties.Encoding) error {
	switch format {
	case formatProperties:
		return properties.Encode(w, props, enc)
	case formatJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(map[string]string(props))
	case formatTOML:
		return toml.NewEncoder(w).Encode(map[string]string(props))
	case formatTable:
		return writeTable(w, props, nil)
	default:
		return fmt.Errorf(l10n.T("unknown output format %q"), format)
	}
}

// writeTable prints aligned KEY VALUE columns, plus ORIGIN when origins is
// not nil.
func writeTable(w io.Writer, props properties.Map, origins map[string]merge.Origin) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if origins != nil {
		fmt.Fprintln(tw, l10n.T("KEY\tVALUE\tORIGIN"))
	} else {
		fmt.Fprintln(tw, l10n.T("KEY\tVALUE"))
	}
	for _, k := range props.Keys() {
		if origins != nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", k, props[k], origins[k])
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", k, props[k])
		}
	}
	return tw.Flush()
}

// writeChanges prints one line per changed key: "+" added, "~" changed and
// "-" removed.
func writeChanges(w io.Writer, before, after properties.Map) {
	changes := watch.Diff(before, after)
	for _, k := range changes.Added {
		fmt.Fprintf(w, "+ %s = %s\n", k, after[k])
	}
	for _, k := range changes.Changed {
		fmt.Fprintf(w, "~ %s = %s\n", k, after[k])
	}
	for _, k := range changes.Removed {
		fmt.Fprintf(w, "- %s\n", k)
	}
}
