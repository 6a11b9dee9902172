package services

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/repos"
)

// facetSampleLimit caps how many catalog rows facet derivation reads. The
// lists drive dropdowns, so a bounded most-recent sample is enough; a value
// added moments ago may not show up until the next refresh.
const facetSampleLimit = 5000

type choiceKind int

const (
	choiceNone choiceKind = iota
	choiceSelected
	choiceAddNew
)

// FieldChoice is the dropdown-or-free-text union for one taxonomy field:
// either an existing value was picked or "add new" was chosen with free text.
// Modeling it as a variant keeps sentinel strings out of the value space.
type FieldChoice struct {
	kind choiceKind
	text string
}

func NoChoice() FieldChoice { return FieldChoice{} }

func SelectedChoice(value string) FieldChoice {
	return FieldChoice{kind: choiceSelected, text: value}
}

func AddNewChoice(text string) FieldChoice {
	return FieldChoice{kind: choiceAddNew, text: text}
}

func (c FieldChoice) IsSet() bool { return c.kind != choiceNone }

// Effective resolves the choice to its final string: the trimmed free text
// when adding new, else the trimmed selection.
func (c FieldChoice) Effective() string {
	return strings.TrimSpace(c.text)
}

// TaxonomySelection holds the three linked choices. Narrowing is
// one-directional: picking a category invalidates property and sub-property,
// picking a property invalidates sub-property. Child edits never touch
// parents.
type TaxonomySelection struct {
	category    FieldChoice
	property    FieldChoice
	subProperty FieldChoice
}

func (s *TaxonomySelection) SetCategory(c FieldChoice) {
	s.category = c
	s.property = NoChoice()
	s.subProperty = NoChoice()
}

func (s *TaxonomySelection) SetProperty(c FieldChoice) {
	s.property = c
	s.subProperty = NoChoice()
}

func (s *TaxonomySelection) SetSubProperty(c FieldChoice) {
	s.subProperty = c
}

func (s TaxonomySelection) EffectiveCategory() string    { return s.category.Effective() }
func (s TaxonomySelection) EffectiveProperty() string    { return s.property.Effective() }
func (s TaxonomySelection) EffectiveSubProperty() string { return s.subProperty.Effective() }

// FacetLists are the distinct taxonomy values observed in the catalog
// sample, scoped to the current parent choices.
type FacetLists struct {
	Categories    []string `json:"categories"`
	Properties    []string `json:"properties"`
	SubProperties []string `json:"sub_properties"`
}

type TaxonomyService interface {
	// Facets derives selection lists from a capped sample of catalog rows.
	// Property candidates are restricted to rows matching the effective
	// category (when set); sub-property candidates additionally by property.
	Facets(ctx context.Context, effectiveCategory, effectiveProperty string) (FacetLists, error)
	// InvalidateFacets drops any cached lists so the next read re-derives.
	InvalidateFacets(ctx context.Context)
}

type taxonomyService struct {
	db        *gorm.DB
	log       *logger.Logger
	assetRepo repos.AssetRepo
	cache     FacetCache
}

func NewTaxonomyService(db *gorm.DB, baseLog *logger.Logger, assetRepo repos.AssetRepo, cache FacetCache) TaxonomyService {
	return &taxonomyService{
		db:        db,
		log:       baseLog.With("service", "TaxonomyService"),
		assetRepo: assetRepo,
		cache:     cache,
	}
}

func (ts *taxonomyService) Facets(ctx context.Context, effectiveCategory, effectiveProperty string) (FacetLists, error) {
	cacheKey := effectiveCategory + "|" + effectiveProperty
	if ts.cache != nil {
		if lists, ok := ts.cache.Get(ctx, cacheKey); ok {
			return *lists, nil
		}
	}

	sample, err := ts.assetRepo.SampleTaxonomy(ctx, nil, facetSampleLimit)
	if err != nil {
		return FacetLists{}, err
	}

	categories := map[string]struct{}{}
	properties := map[string]struct{}{}
	subProperties := map[string]struct{}{}
	for _, row := range sample {
		if v := strings.TrimSpace(row.Category); v != "" {
			categories[v] = struct{}{}
		}
		if effectiveCategory != "" && row.Category != effectiveCategory {
			continue
		}
		if v := strings.TrimSpace(row.Property); v != "" {
			properties[v] = struct{}{}
		}
		if effectiveProperty != "" && row.Property != effectiveProperty {
			continue
		}
		if v := strings.TrimSpace(row.SubProperty); v != "" {
			subProperties[v] = struct{}{}
		}
	}

	lists := FacetLists{
		Categories:    sortedKeys(categories),
		Properties:    sortedKeys(properties),
		SubProperties: sortedKeys(subProperties),
	}
	if ts.cache != nil {
		ts.cache.Set(ctx, cacheKey, lists)
	}
	return lists, nil
}

func (ts *taxonomyService) InvalidateFacets(ctx context.Context) {
	if ts.cache != nil {
		ts.cache.Invalidate(ctx)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
