// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package fuseki is a client for the HTTP services of an Apache Jena Fuseki
// server.
//
// A Transport holds the connection settings and is shared by three clients:
//
//   - AdminClient drives the "$/" administration protocol: ping, server
//     info, dataset lifecycle, statistics, backups and tasks.
//   - DataClient uploads RDF files to a dataset and drops its content.
//   - SPARQLClient runs queries and updates against one dataset, with
//     default prefixes and a VALUES clause built from typed bindings.
//
// Every failure is an *Error whose Kind can be tested with errors.Is against
// the Err* sentinels:
//
//	t := fuseki.NewTransport(fuseki.DefaultConfig())
//	admin := fuseki.NewAdminClient(t, nil)
//	if _, err := admin.GetDataset(ctx, "books"); errors.Is(err, fuseki.ErrDatasetNotFound) {
//		...
//	}
package fuseki
