package handlers

import (
	"github.com/yungbote/assetvault-backend/internal/services"
)

// fieldChoiceRequest is the wire form of the dropdown-or-add-new union for
// one taxonomy field. Exactly one of the members is expected; add_new wins
// when both are present, matching the UI where typing free text overrides
// the dropdown.
type fieldChoiceRequest struct {
	Selected *string `json:"selected,omitempty"`
	AddNew   *string `json:"add_new,omitempty"`
}

func (r *fieldChoiceRequest) toChoice() services.FieldChoice {
	if r == nil {
		return services.NoChoice()
	}
	if r.AddNew != nil {
		return services.AddNewChoice(*r.AddNew)
	}
	if r.Selected != nil {
		return services.SelectedChoice(*r.Selected)
	}
	return services.NoChoice()
}

type taxonomySelectionRequest struct {
	Category    *fieldChoiceRequest `json:"category,omitempty"`
	Property    *fieldChoiceRequest `json:"property,omitempty"`
	SubProperty *fieldChoiceRequest `json:"sub_property,omitempty"`
}

// resolve runs the one-directional narrowing rules over the submitted
// choices and returns the effective values.
func (r *taxonomySelectionRequest) resolve() (category, property, subProperty string) {
	var sel services.TaxonomySelection
	sel.SetCategory(r.Category.toChoice())
	sel.SetProperty(r.Property.toChoice())
	sel.SetSubProperty(r.SubProperty.toChoice())
	return sel.EffectiveCategory(), sel.EffectiveProperty(), sel.EffectiveSubProperty()
}
