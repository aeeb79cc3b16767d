// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	clierrors "fuseki-manager/internal/errors"
	"fuseki-manager/pkg/fuseki"
)

// queryFlags are shared by the query, update and ask commands.
type queryFlags struct {
	file     string
	prefixes []string
	binds    []string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read the query from a file ('-' for stdin)")
	cmd.Flags().StringArrayVar(&f.prefixes, "prefix", nil, "Extra PREFIX as name=uri (repeatable)")
	cmd.Flags().StringArrayVar(&f.binds, "bind", nil, "VALUES binding as var=value (repeatable)")
}

// text returns the query from the argument or the --file flag.
func (f *queryFlags) text(args []string, stdin io.Reader) (string, error) {
	switch {
	case len(args) == 1 && f.file == "":
		return args[0], nil
	case len(args) == 0 && f.file == stdinPath:
		b, err := io.ReadAll(stdin)
		return string(b), err
	case len(args) == 0 && f.file != "":
		b, err := os.ReadFile(f.file)
		return string(b), err
	default:
		return "", clierrors.New(clierrors.BadInput, "pass the query as an argument or with --file")
	}
}

// options converts --prefix and --bind into query options.
func (f *queryFlags) options() ([]fuseki.QueryOption, error) {
	var ns fuseki.Namespaces
	for _, p := range f.prefixes {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, clierrors.New(clierrors.BadInput, fmt.Sprintf("invalid --prefix %q, expected name=uri", p))
		}
		ns = ns.With(k, v)
	}
	var b fuseki.Bindings
	for _, kv := range f.binds {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimPrefix(k, "?") == "" {
			return nil, clierrors.New(clierrors.BadInput, fmt.Sprintf("invalid --bind %q, expected var=value", kv))
		}
		b = b.BindAuto(k, v)
	}
	var opts []fuseki.QueryOption
	if len(ns) > 0 {
		opts = append(opts, fuseki.WithPrefixes(ns))
	}
	if len(b) > 0 {
		opts = append(opts, fuseki.WithBindings(b))
	}
	return opts, nil
}

// prepare resolves the SPARQL client, the query text and its options.
func (a *app) prepare(f *queryFlags, args []string) (*fuseki.SPARQLClient, string, []fuseki.QueryOption, error) {
	c, err := a.sparql()
	if err != nil {
		return nil, "", nil, err
	}
	q, err := f.text(args, a.deps.stdin)
	if err != nil {
		return nil, "", nil, err
	}
	opts, err := f.options()
	if err != nil {
		return nil, "", nil, err
	}
	return c, q, opts, nil
}

func newQueryCmd(a *app) *cobra.Command {
	var (
		f       queryFlags
		raw     bool
		one     bool
		nonZero bool
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "query [SPARQL]",
		Short: "Run a SELECT query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, q, opts, err := a.prepare(&f, args)
			if err != nil {
				return err
			}
			if dryRun {
				prepared, err := c.Prepare(q, opts...)
				if err != nil {
					return a.fail(err, "preparing query")
				}
				return a.printValue("query", prepared)
			}
			if raw {
				doc, err := c.RawQuery(cmd.Context(), q, opts...)
				if err != nil {
					return a.fail(err, "running query")
				}
				return printJSON(a.out, doc)
			}
			opts = append(opts, fuseki.RaiseIfEmpty(nonZero), fuseki.RaiseIfMany(one))
			rows, err := c.Query(cmd.Context(), q, opts...)
			if err != nil {
				return a.fail(err, "running query")
			}
			return a.printRows(rows)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the server's JSON response unchanged")
	cmd.Flags().BoolVar(&one, "unique", false, "Fail when more than one row matches")
	cmd.Flags().BoolVar(&nonZero, "non-empty", false, "Fail when no row matches")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the prepared query without sending it")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "update [SPARQL]",
		Short: "Run a SPARQL update",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, q, opts, err := a.prepare(&f, args)
			if err != nil {
				return err
			}
			resp, err := c.UpdateQuery(cmd.Context(), q, opts...)
			if err != nil {
				return a.fail(err, "running update")
			}
			if a.jsonOutput() {
				return printJSON(a.out, map[string]any{"status": resp.StatusCode, "message": resp.Text()})
			}
			fmt.Fprintf(a.out, "✅ Update applied to %s (%d %s)\n", c.Dataset(), resp.StatusCode, resp.Reason)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newAskCmd(a *app) *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "ask [SPARQL]",
		Short: "Run an ASK query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, q, opts, err := a.prepare(&f, args)
			if err != nil {
				return err
			}
			ok, err := c.Ask(cmd.Context(), q, opts...)
			if err != nil {
				return a.fail(err, "running ask query")
			}
			return a.printValue("boolean", ok)
		},
	}
	f.register(cmd)
	return cmd
}

// patternArg turns a positional argument into a pattern position. "_" and
// "?" leave the position unbound.
func patternArg(s string) fuseki.Value {
	switch s {
	case "", "_", "?":
		return nil
	default:
		return fuseki.Auto(s)
	}
}

func parsePattern(args []string) fuseki.TriplePattern {
	var p fuseki.TriplePattern
	if len(args) > 0 {
		p.Subject = patternArg(args[0])
	}
	if len(args) > 1 {
		p.Predicate = patternArg(args[1])
	}
	if len(args) > 2 {
		p.Object = patternArg(args[2])
	}
	return p
}

func newTriplesCmd(a *app) *cobra.Command {
	var prefixes []string
	cmd := &cobra.Command{
		Use:   "triples [SUBJECT [PREDICATE [OBJECT]]]",
		Short: "List triples matching a pattern",
		Long: `List triples matching a pattern. URIs are bound as IRIs, anything else is
sent verbatim, so literals must carry their quotes: '"Alice"@en'. Use "_" to
leave a position unbound.`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.patternClient(prefixes)
			if err != nil {
				return err
			}
			triples, err := c.Triples(cmd.Context(), parsePattern(args))
			if err != nil {
				return a.fail(err, "listing triples")
			}
			return a.printTriples(triples)
		},
	}
	cmd.Flags().StringArrayVar(&prefixes, "prefix", nil, "Extra PREFIX as name=uri (repeatable)")
	return cmd
}

func newValueCmd(a *app) *cobra.Command {
	var (
		prefixes   []string
		allowEmpty bool
	)
	cmd := &cobra.Command{
		Use:   "value SUBJECT PREDICATE OBJECT",
		Short: "Resolve the one unbound position of a triple pattern",
		Long: `Resolve the one unbound position of a triple pattern. Exactly one of the three
arguments must be "_". The match must be unique, and a pattern that matches
nothing fails unless --allow-empty is given, in which case an empty value is
printed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.patternClient(prefixes)
			if err != nil {
				return err
			}
			v, err := c.Value(cmd.Context(), parsePattern(args), !allowEmpty)
			if err != nil {
				return a.fail(err, "resolving value")
			}
			return a.printValue("value", v)
		},
	}
	cmd.Flags().StringArrayVar(&prefixes, "prefix", nil, "Extra PREFIX as name=uri (repeatable)")
	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "Print an empty value instead of failing when nothing matches")
	return cmd
}

// patternClient returns a SPARQL client whose default prefixes include the
// extra name=uri pairs.
func (a *app) patternClient(prefixes []string) (*fuseki.SPARQLClient, error) {
	ns := make(map[string]string, len(a.profile.Namespaces)+len(prefixes))
	for k, v := range a.profile.Namespaces {
		ns[k] = v
	}
	for _, p := range prefixes {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, clierrors.New(clierrors.BadInput, fmt.Sprintf("invalid --prefix %q, expected name=uri", p))
		}
		ns[k] = v
	}
	a.profile.Namespaces = ns
	return a.sparql()
}
