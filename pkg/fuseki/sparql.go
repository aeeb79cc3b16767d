// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Default SPARQL service names of a Fuseki dataset.
const (
	DefaultQueryService  = "sparql"
	DefaultUpdateService = "update"
)

const sparqlResultsJSON = "application/sparql-results+json, application/json;q=0.9"

// triplesQuery is the pattern used by Triples and Value.
const triplesQuery = "SELECT ?s ?p ?o WHERE { ?s ?p ?o }"

// SPARQLClient runs queries against one dataset.
type SPARQLClient struct {
	t             *Transport
	data          *DataClient
	dataset       string
	namespaces    Namespaces
	queryService  string
	updateService string
}

// SPARQLOption configures a SPARQLClient.
type SPARQLOption func(*SPARQLClient)

// WithNamespaces sets the default prefixes of every query.
func WithNamespaces(ns Namespaces) SPARQLOption {
	return func(c *SPARQLClient) { c.namespaces = Namespaces{}.Merge(ns) }
}

// WithQueryService sets the dataset's query endpoint name.
func WithQueryService(name string) SPARQLOption {
	return func(c *SPARQLClient) {
		if name != "" {
			c.queryService = name
		}
	}
}

// WithUpdateService sets the dataset's update endpoint name.
func WithUpdateService(name string) SPARQLOption {
	return func(c *SPARQLClient) {
		if name != "" {
			c.updateService = name
		}
	}
}

// WithDataClient sets the data client used by UploadData.
func WithDataClient(d *DataClient) SPARQLOption {
	return func(c *SPARQLClient) {
		if d != nil {
			c.data = d
		}
	}
}

// NewSPARQLClient builds a client bound to dataset.
func NewSPARQLClient(t *Transport, dataset string, opts ...SPARQLOption) *SPARQLClient {
	c := &SPARQLClient{
		t:             t,
		dataset:       dataset,
		queryService:  DefaultQueryService,
		updateService: DefaultUpdateService,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.data == nil {
		c.data = NewDataClient(t)
	}
	return c
}

// Dataset returns the dataset the client is bound to.
func (c *SPARQLClient) Dataset() string { return c.dataset }

// Namespaces returns a copy of the default prefixes.
func (c *SPARQLClient) Namespaces() Namespaces { return Namespaces{}.Merge(c.namespaces) }

func (c *SPARQLClient) uri(service string) string {
	return c.t.BaseURI() + url.PathEscape(c.dataset) + "/" + service
}

// QueryOption tunes a single query call.
type QueryOption func(*queryOptions)

type queryOptions struct {
	namespaces   Namespaces
	bindings     Bindings
	raiseIfEmpty bool
	raiseIfMany  bool
}

// WithPrefixes adds or overrides prefixes for one call.
func WithPrefixes(ns Namespaces) QueryOption {
	return func(o *queryOptions) { o.namespaces = o.namespaces.Merge(ns) }
}

// WithBindings appends a VALUES clause binding the given variables.
func WithBindings(b Bindings) QueryOption {
	return func(o *queryOptions) {
		for _, bind := range b {
			o.bindings = o.bindings.Bind(bind.Var, bind.Value)
		}
	}
}

// RaiseIfEmpty makes Query fail with KindEmptyResult when no row matches.
func RaiseIfEmpty(on bool) QueryOption {
	return func(o *queryOptions) { o.raiseIfEmpty = on }
}

// RaiseIfMany makes Query fail with KindNotUnique when more than one row matches.
func RaiseIfMany(on bool) QueryOption {
	return func(o *queryOptions) { o.raiseIfMany = on }
}

func buildQueryOptions(opts []QueryOption) queryOptions {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Prepare renders query with the client's prefixes merged with the call's
// prefixes, followed by the call's bindings.
func (c *SPARQLClient) Prepare(query string, opts ...QueryOption) (string, error) {
	o := buildQueryOptions(opts)
	return c.prepare(query, o)
}

func (c *SPARQLClient) prepare(query string, o queryOptions) (string, error) {
	return PrepareQuery(query, c.namespaces.Merge(o.namespaces), o.bindings)
}

// UpdateQuery posts an update (INSERT, DELETE, DROP...) to the update service
// and returns the raw response.
func (c *SPARQLClient) UpdateQuery(ctx context.Context, query string, opts ...QueryOption) (*Response, error) {
	prepared, err := c.Prepare(query, opts...)
	if err != nil {
		return nil, err
	}
	return c.t.Post(ctx, c.uri(c.updateService), Request{
		Form:   url.Values{"update": {prepared}},
		Expect: []int{http.StatusOK, http.StatusNoContent},
	})
}

func (c *SPARQLClient) exec(ctx context.Context, prepared string) (*Response, error) {
	return c.t.Get(ctx, c.uri(c.queryService), Request{
		Query:  url.Values{"query": {prepared}},
		Accept: sparqlResultsJSON,
	})
}

// RawQuery runs a query and returns the decoded JSON response unchanged.
func (c *SPARQLClient) RawQuery(ctx context.Context, query string, opts ...QueryOption) (Document, error) {
	prepared, err := c.Prepare(query, opts...)
	if err != nil {
		return nil, err
	}
	resp, err := c.exec(ctx, prepared)
	if err != nil {
		return nil, err
	}
	return resp.Document()
}

func (c *SPARQLClient) results(ctx context.Context, query string, o queryOptions) (*resultSet, error) {
	prepared, err := c.prepare(query, o)
	if err != nil {
		return nil, err
	}
	resp, err := c.exec(ctx, prepared)
	if err != nil {
		return nil, err
	}
	var rs resultSet
	if err := resp.JSON(&rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Query runs a SELECT query and returns its result rows.
// With RaiseIfEmpty an empty result fails; with RaiseIfMany more than one row fails.
func (c *SPARQLClient) Query(ctx context.Context, query string, opts ...QueryOption) ([]Row, error) {
	o := buildQueryOptions(opts)
	rs, err := c.results(ctx, query, o)
	if err != nil {
		return nil, err
	}
	if rs.Results == nil {
		return nil, newError(KindResponse, "response has no results.bindings")
	}
	rows := rs.Results.Bindings
	switch {
	case len(rows) == 0:
		if o.raiseIfEmpty {
			return nil, newError(KindEmptyResult, "query returned no results")
		}
		return []Row{}, nil
	case len(rows) > 1 && o.raiseIfMany:
		return nil, newError(KindNotUnique, "query returned %d results, expected one", len(rows))
	default:
		return rows, nil
	}
}

// Ask runs an ASK query.
func (c *SPARQLClient) Ask(ctx context.Context, query string, opts ...QueryOption) (bool, error) {
	rs, err := c.results(ctx, query, buildQueryOptions(opts))
	if err != nil {
		return false, err
	}
	if rs.Boolean == nil {
		return false, newError(KindResponse, "response has no boolean result")
	}
	return *rs.Boolean, nil
}

// Triples returns the triples matching pattern.
func (c *SPARQLClient) Triples(ctx context.Context, pattern TriplePattern, opts ...QueryOption) ([]Triple, error) {
	var b Bindings
	if pattern.Subject != nil {
		b = b.Bind("s", pattern.Subject)
	}
	if pattern.Predicate != nil {
		b = b.Bind("p", pattern.Predicate)
	}
	if pattern.Object != nil {
		b = b.Bind("o", pattern.Object)
	}
	opts = append(opts[:len(opts):len(opts)], WithBindings(b))

	rows, err := c.Query(ctx, triplesQuery, opts...)
	if err != nil {
		return nil, err
	}
	triples := make([]Triple, 0, len(rows))
	for _, r := range rows {
		triples = append(triples, Triple{Subject: r.Value("s"), Predicate: r.Value("p"), Object: r.Value("o")})
	}
	return triples, nil
}

// Value resolves the one position of pattern that is left nil. Exactly two
// positions must be set. The match must be unique; when nothing matches and
// raiseIfEmpty is false, Value returns "".
func (c *SPARQLClient) Value(ctx context.Context, pattern TriplePattern, raiseIfEmpty bool) (string, error) {
	if pattern.bound() != 2 {
		return "", newError(KindArgument, "invalid arguments (%s, %s, %s)",
			describeValue(pattern.Subject), describeValue(pattern.Predicate), describeValue(pattern.Object))
	}
	triples, err := c.Triples(ctx, pattern, RaiseIfEmpty(raiseIfEmpty), RaiseIfMany(true))
	if err != nil {
		return "", err
	}
	if len(triples) == 0 {
		return "", nil
	}
	t := triples[0]
	switch {
	case pattern.Subject == nil:
		return t.Subject, nil
	case pattern.Predicate == nil:
		return t.Predicate, nil
	default:
		return t.Object, nil
	}
}

// UploadData sends files to the client's dataset through the data service.
func (c *SPARQLClient) UploadData(ctx context.Context, sources []FileSource, mimeType string) (Document, error) {
	return c.data.UploadFiles(ctx, c.dataset, sources, mimeType)
}

func describeValue(v Value) string {
	if v == nil {
		return "None"
	}
	s, err := v.SPARQL()
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}
