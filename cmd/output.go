// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"fuseki-manager/pkg/fuseki"
)

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) jsonOutput() bool { return a.flags.output == "json" }

// printTable renders header and rows as a pterm table.
func printTable(w io.Writer, header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// printDocument renders a server document: JSON as is, or top-level keys as a table.
func (a *app) printDocument(doc fuseki.Document) error {
	if a.jsonOutput() {
		return printJSON(a.out, doc)
	}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, cell(doc[k])})
	}
	return printTable(a.out, []string{"KEY", "VALUE"}, rows)
}

// printDatasets renders the "datasets" array of a server or datasets document.
func (a *app) printDatasets(doc fuseki.Document) error {
	if a.jsonOutput() {
		return printJSON(a.out, doc)
	}
	var rows [][]string
	for _, ds := range doc.Datasets() {
		state := "offline"
		if active, _ := ds["ds.state"].(bool); active {
			state = "active"
		}
		rows = append(rows, []string{ds.DatasetName(), state, strings.Join(serviceNames(ds), ", ")})
	}
	return printTable(a.out, []string{"NAME", "STATE", "SERVICES"}, rows)
}

func serviceNames(ds fuseki.Document) []string {
	services, _ := ds["ds.services"].([]any)
	var names []string
	for _, s := range services {
		m, ok := s.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := m["srv.type"].(string); ok {
			names = append(names, t)
		}
	}
	return names
}

// printTasks renders a task list.
func (a *app) printTasks(tasks []fuseki.Document) error {
	if a.jsonOutput() {
		return printJSON(a.out, tasks)
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		status := "running"
		if t.Finished() {
			status = "failed"
			if t.Succeeded() {
				status = "done"
			}
		}
		rows = append(rows, []string{t.TaskID(), t.String("task"), t.String("started"), t.String("finished"), status})
	}
	return printTable(a.out, []string{"ID", "TASK", "STARTED", "FINISHED", "STATUS"}, rows)
}

// printRows renders SELECT results with one column per variable.
func (a *app) printRows(rows []fuseki.Row) error {
	if a.jsonOutput() {
		return printJSON(a.out, rows)
	}
	seen := map[string]bool{}
	var vars []string
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				vars = append(vars, k)
			}
		}
	}
	sort.Strings(vars)
	if len(vars) == 0 {
		_, err := fmt.Fprintln(a.out, "No results.")
		return err
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := make([]string, len(vars))
		for i, v := range vars {
			line[i] = r.Value(v)
		}
		out = append(out, line)
	}
	return printTable(a.out, vars, out)
}

// printTriples renders subject/predicate/object records.
func (a *app) printTriples(triples []fuseki.Triple) error {
	if a.jsonOutput() {
		return printJSON(a.out, triples)
	}
	rows := make([][]string, 0, len(triples))
	for _, t := range triples {
		rows = append(rows, []string{t.Subject, t.Predicate, t.Object})
	}
	return printTable(a.out, []string{"SUBJECT", "PREDICATE", "OBJECT"}, rows)
}

// printValue renders a single scalar result.
func (a *app) printValue(key string, v any) error {
	if a.jsonOutput() {
		return printJSON(a.out, map[string]any{key: v})
	}
	_, err := fmt.Fprintln(a.out, v)
	return err
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
