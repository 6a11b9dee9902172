package types

import "fmt"

// TaxonomyField names one of the three taxonomy columns shared by assets and
// intake items. Repos only accept column names produced by Column(), which
// keeps user input out of SQL identifiers.
type TaxonomyField string

const (
	TaxonomyFieldCategory    TaxonomyField = "category"
	TaxonomyFieldProperty    TaxonomyField = "property"
	TaxonomyFieldSubProperty TaxonomyField = "sub_property"
)

func ParseTaxonomyField(raw string) (TaxonomyField, error) {
	switch TaxonomyField(raw) {
	case TaxonomyFieldCategory, TaxonomyFieldProperty, TaxonomyFieldSubProperty:
		return TaxonomyField(raw), nil
	default:
		return "", fmt.Errorf("unknown taxonomy field %q", raw)
	}
}

func (f TaxonomyField) Column() string { return string(f) }
