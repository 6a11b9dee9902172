package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/assetvault-backend/internal/types"
)

func TestFieldChoiceEffective(t *testing.T) {
	cases := []struct {
		name   string
		choice FieldChoice
		want   string
	}{
		{name: "unset", choice: NoChoice(), want: ""},
		{name: "selected", choice: SelectedChoice("Hardware"), want: "Hardware"},
		{name: "add_new", choice: AddNewChoice("Armor"), want: "Armor"},
		{name: "add_new_trims", choice: AddNewChoice("  Armor  "), want: "Armor"},
		{name: "add_new_blank", choice: AddNewChoice("   "), want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.choice.Effective()
			if got != tc.want {
				t.Fatalf("Effective()=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestTaxonomySelectionNarrowing(t *testing.T) {
	var sel TaxonomySelection
	sel.SetCategory(SelectedChoice("Hardware"))
	sel.SetProperty(SelectedChoice("Hinges"))
	sel.SetSubProperty(SelectedChoice("Brass"))

	// Re-picking the category must drop both children.
	sel.SetCategory(SelectedChoice("Textiles"))
	if got := sel.EffectiveProperty(); got != "" {
		t.Fatalf("property after category change: want empty, got %q", got)
	}
	if got := sel.EffectiveSubProperty(); got != "" {
		t.Fatalf("sub-property after category change: want empty, got %q", got)
	}
	if got := sel.EffectiveCategory(); got != "Textiles" {
		t.Fatalf("category: want %q, got %q", "Textiles", got)
	}

	// Re-picking the property drops only the sub-property.
	sel.SetProperty(SelectedChoice("Curtains"))
	sel.SetSubProperty(SelectedChoice("Velvet"))
	sel.SetProperty(SelectedChoice("Rugs"))
	if got := sel.EffectiveSubProperty(); got != "" {
		t.Fatalf("sub-property after property change: want empty, got %q", got)
	}
	if got := sel.EffectiveCategory(); got != "Textiles" {
		t.Fatalf("category must survive property change, got %q", got)
	}

	// Sub-property edits never touch parents.
	sel.SetSubProperty(AddNewChoice("Wool"))
	if got := sel.EffectiveProperty(); got != "Rugs" {
		t.Fatalf("property must survive sub-property change, got %q", got)
	}
}

func seedTaxonomyAssets(repo *fakeAssetRepo) {
	rows := []struct{ cat, prop, sub string }{
		{"Hardware", "Hinges", "Brass"},
		{"Hardware", "Hinges", "Steel"},
		{"Hardware", "Handles", ""},
		{"Textiles", "Curtains", "Velvet"},
		{"Textiles", "Rugs", "Wool"},
		{"", "Orphaned", "Ignored"},
	}
	for _, row := range rows {
		repo.assets = append(repo.assets, &types.Asset{
			ID:          uuid.New(),
			Name:        "x",
			Category:    row.cat,
			Property:    row.prop,
			SubProperty: row.sub,
		})
	}
}

func TestFacetsDerivation(t *testing.T) {
	repo := &fakeAssetRepo{}
	seedTaxonomyAssets(repo)
	svc := NewTaxonomyService(nil, testLogger(t), repo, nil)

	lists, err := svc.Facets(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Facets: %v", err)
	}
	if want := []string{"Hardware", "Textiles"}; !reflect.DeepEqual(lists.Categories, want) {
		t.Fatalf("categories: want %v, got %v", want, lists.Categories)
	}
	// No category picked: every non-blank property is a candidate.
	if want := []string{"Curtains", "Handles", "Hinges", "Orphaned", "Rugs"}; !reflect.DeepEqual(lists.Properties, want) {
		t.Fatalf("properties: want %v, got %v", want, lists.Properties)
	}
}

func TestFacetsNarrowByCategoryAndProperty(t *testing.T) {
	repo := &fakeAssetRepo{}
	seedTaxonomyAssets(repo)
	svc := NewTaxonomyService(nil, testLogger(t), repo, nil)

	lists, err := svc.Facets(context.Background(), "Hardware", "Hinges")
	if err != nil {
		t.Fatalf("Facets: %v", err)
	}
	if want := []string{"Handles", "Hinges"}; !reflect.DeepEqual(lists.Properties, want) {
		t.Fatalf("properties: want %v, got %v", want, lists.Properties)
	}
	if want := []string{"Brass", "Steel"}; !reflect.DeepEqual(lists.SubProperties, want) {
		t.Fatalf("sub-properties: want %v, got %v", want, lists.SubProperties)
	}
	// Category list is never narrowed; the operator can always re-pick.
	if want := []string{"Hardware", "Textiles"}; !reflect.DeepEqual(lists.Categories, want) {
		t.Fatalf("categories: want %v, got %v", want, lists.Categories)
	}
}

func TestFacetsUsesCache(t *testing.T) {
	repo := &fakeAssetRepo{}
	seedTaxonomyAssets(repo)
	cache := newFakeFacetCache()
	svc := NewTaxonomyService(nil, testLogger(t), repo, cache)

	first, err := svc.Facets(context.Background(), "Hardware", "")
	if err != nil {
		t.Fatalf("first Facets: %v", err)
	}
	if cache.setCalls != 1 {
		t.Fatalf("set calls after miss: want=1 got=%d", cache.setCalls)
	}

	// Second read must come from the cache even if the sample now errors.
	repo.sampleErr = context.DeadlineExceeded
	second, err := svc.Facets(context.Background(), "Hardware", "")
	if err != nil {
		t.Fatalf("second Facets: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached lists differ: first=%v second=%v", first, second)
	}

	svc.InvalidateFacets(context.Background())
	if cache.invalidateCalls != 1 {
		t.Fatalf("invalidate calls: want=1 got=%d", cache.invalidateCalls)
	}
}
