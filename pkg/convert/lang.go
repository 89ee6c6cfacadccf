package convert

import (
	"fmt"

	"golang.org/x/text/language"
)

// ISO3 normalizes a language tag to its three-letter ISO 639-3 code, so that
// two-letter legacy codes ("en") still produce canonical lexvo URIs in
// extended mode. The LanguageIRI factory itself stays validation-free; this
// helper is for converters that want normalization before calling it.
func ISO3(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("parsing language code %q: %w", code, err)
	}

	base, _ := tag.Base()
	iso3 := base.ISO3()
	if iso3 == "" {
		return "", fmt.Errorf("no ISO 639-3 code for language %q", code)
	}
	return iso3, nil
}
