package main

import (
	"fmt"
	"os"

	"github.com/coolbeans/mediaont/pkg/cli"
	"github.com/coolbeans/mediaont/pkg/convert"
	"github.com/coolbeans/mediaont/pkg/kvmeta"
	"github.com/coolbeans/mediaont/pkg/mapping"
)

func main() {
	cmd := cli.NewCommand(cli.Config{
		Use:            "mediaont [flags] file...",
		Short:          "Convert key/value sidecar media metadata to Media Ontology RDF",
		FormatID:       kvmeta.FormatID,
		DefaultMapping: kvmeta.DefaultMapping(),
		NewExtractor: func(opts convert.Options, table *mapping.FormatMapping) convert.Extractor {
			return kvmeta.NewExtractorWithMapping(opts, table)
		},
	})

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
