// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return oops.Code("CLI_INVALID_OUTPUT").With("output", format).
			Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// render writes v in the requested format. table draws the table form onto
// a tabwriter; its rows are tab-separated.
func render(w io.Writer, format string, v any, table func(w io.Writer)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return oops.Wrapf(err, "encode json")
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return oops.Wrapf(err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return oops.Wrapf(err, "encode yaml")
		}
		return nil
	case formatTable:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		table(tw)
		if err := tw.Flush(); err != nil {
			return oops.Wrapf(err, "write table")
		}
		return nil
	default:
		return validateOutput(format)
	}
}

// writeMetrics prints everything gathered by reg in the text exposition
// format.
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return oops.Wrapf(err, "gather metrics")
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return oops.Wrapf(err, "encode metric family %s", mf.GetName())
		}
	}
	return nil
}

func row(w io.Writer, cols ...any) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}
