// Package cli builds the command-line front end shared by format converters.
// A converter's main function is a few lines: describe the converter, hand it
// to NewCommand, execute.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coolbeans/mediaont/pkg/convert"
	"github.com/coolbeans/mediaont/pkg/mapping"
)

// longHelp is the descriptive documentation printed by -H/--long-help, over
// and above the flag usage text.
const longHelp = `Converts legacy media metadata into RDF using the Media Ontology for Media
Resources (http://www.w3.org/TR/mediaont-10/).

RDF can be generated according to the following profiles:
  * "default" generates ma: properties for exact matches, and properties in
    a dedicated namespace with subProperty axioms for related matches.
  * "ma-only" generates only ma: properties.
  * "original" always generates dedicated properties (even for exact
    matches) with subProperty axioms to the corresponding ma: property.

Furthermore, extended metadata (not specified by the ontology) can be
generated:
  * a URI identifying the language (if any)
  * foaf:name instead of rdfs:label for instances of ma:Person

The accumulated graph is written to standard output in the selected format
(turtle, ntriples, or jsonld).`

// Config describes one format converter to the shared command front end.
type Config struct {
	// Use is the cobra use line, e.g. "ma-kvmeta [flags] file...".
	Use string

	// Short is the one-line command description.
	Short string

	// FormatID selects the converter's mapping in a registry loaded via
	// --mappings.
	FormatID string

	// DefaultMapping is the converter's built-in field table.
	DefaultMapping *mapping.FormatMapping

	// NewExtractor constructs the converter for one run.
	NewExtractor func(opts convert.Options, table *mapping.FormatMapping) convert.Extractor
}

// NewCommand builds the cobra command for a converter: flag parsing, profile
// and format validation, long help, mapping resolution, and the conversion
// run itself.
func NewCommand(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   cfg.Use,
		Short: cfg.Short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showLongHelp, _ := cmd.Flags().GetBool("long-help")
			if showLongHelp {
				fmt.Fprintln(cmd.OutOrStdout(), longHelp)
				fmt.Fprintln(cmd.OutOrStdout())
				return cmd.Usage()
			}

			profile, _ := cmd.Flags().GetString("profile")
			extended, _ := cmd.Flags().GetBool("extended")
			languageTag, _ := cmd.Flags().GetString("language")
			owlImport, _ := cmd.Flags().GetBool("owl-import")
			format, _ := cmd.Flags().GetString("format")
			mappingsDir, _ := cmd.Flags().GetString("mappings")

			opts, err := convert.ResolveOptions(profile, extended, languageTag, owlImport, format)
			if err != nil {
				return err
			}

			table, err := resolveMapping(cfg, mappingsDir)
			if err != nil {
				return err
			}

			extractor := cfg.NewExtractor(opts, table)
			return convert.Run(opts, args, extractor, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolP("long-help", "H", false, "display long help")
	cmd.Flags().BoolP("owl-import", "o", false, "include OWL import statement")
	cmd.Flags().StringP("profile", "p", "default", "conversion profile (ma-only, default, original)")
	cmd.Flags().BoolP("extended", "x", false, "generate extended metadata")
	cmd.Flags().StringP("language", "l", "", "language tag for metadata")
	cmd.Flags().StringP("format", "f", "turtle", "output format (turtle, ntriples, jsonld)")
	cmd.Flags().String("mappings", "", "directory of YAML field-mapping files")

	return cmd
}

// resolveMapping returns the field table for the run: the registry mapping
// for the converter's format ID when --mappings is given and contains one,
// otherwise the built-in default.
func resolveMapping(cfg Config, mappingsDir string) (*mapping.FormatMapping, error) {
	if mappingsDir == "" {
		return cfg.DefaultMapping, nil
	}

	registry, err := mapping.NewRegistryWithDirectory(mappingsDir)
	if err != nil {
		return nil, fmt.Errorf("loading mappings from %s: %w", mappingsDir, err)
	}

	if table, ok := registry.Get(cfg.FormatID); ok {
		return table, nil
	}
	return cfg.DefaultMapping, nil
}
