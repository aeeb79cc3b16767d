// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/geoknoesis/rdf-go/rdf"
	"github.com/spf13/cobra"

	clierrors "fuseki-manager/internal/errors"
	"fuseki-manager/pkg/fuseki"
)

// stdinPath selects standard input as an upload source.
const stdinPath = "-"

func newUploadCmd(a *app) *cobra.Command {
	var (
		mimeType string
		check    bool
		name     string
	)
	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload RDF files into the dataset",
		Long: `Upload RDF files into the selected dataset through its data service. Use "-"
to read from stdin. The media type defaults to RDF/XML; --mime auto infers it
from each file extension.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataset()
			if err != nil {
				return err
			}
			if check {
				for _, path := range args {
					if path == stdinPath {
						continue
					}
					n, err := checkRDF(cmd.Context(), path, mimeType)
					if err != nil {
						return clierrors.Wrap(clierrors.BadInput, "check "+path, err)
					}
					a.logger.Info("file parsed", "path", path, "quads", n)
				}
			}

			sources := make([]fuseki.FileSource, 0, len(args))
			for _, path := range args {
				if path == stdinPath {
					sources = append(sources, fuseki.ReaderSource{Name: name, Reader: a.deps.stdin})
					continue
				}
				sources = append(sources, fuseki.PathSource{Path: path})
			}

			data, err := a.data()
			if err != nil {
				return err
			}
			doc, err := data.UploadFiles(cmd.Context(), ds, sources, mimeType)
			if err != nil {
				return a.fail(err, "uploading to "+ds)
			}
			if a.jsonOutput() {
				return printJSON(a.out, doc)
			}
			fmt.Fprintf(a.out, "✅ Uploaded %d file(s) to %s\n", len(sources), ds)
			if len(doc) > 0 {
				return a.printDocument(doc)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&mimeType, "mime", "m", "", "Media type of the files, or 'auto' (default application/rdf+xml)")
	cmd.Flags().BoolVar(&check, "check", false, "Parse every file locally before uploading")
	cmd.Flags().StringVar(&name, "name", "", "File name reported for stdin")
	return cmd
}

// checkRDF parses path with the format the upload would declare for it and
// returns the number of quads read.
func checkRDF(ctx context.Context, path, mimeType string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	contentType := mimeType
	switch mimeType {
	case fuseki.MIMETypeAuto:
		contentType = fuseki.MIMETypeForPath(path)
		if contentType == "" {
			contentType = fuseki.MIMETypeRDFXML
		}
	case "":
		contentType = fuseki.MIMETypeRDFXML
	}
	quads, err := rdf.ParseAnyAuto(ctx, f, "", contentType, rdf.AnyFormatOptions{})
	if err != nil {
		return 0, err
	}
	return len(quads), nil
}
