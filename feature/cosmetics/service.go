package cosmetics

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"pak-index/core/archive"
	"pak-index/core/category"
	"pak-index/core/engine"
	"pak-index/core/materialize"
	"pak-index/core/resolve"
	"pak-index/core/texture"
	"pak-index/core/utils"
	"pak-index/feature/cosmetics/models"

	"go.uber.org/zap"
)

var setTag = regexp.MustCompile(`^Cosmetics\.Set\.`)

// Service composes item views out of the engine's buckets.
type Service struct {
	engine *engine.Engine
	types  map[string]ItemType
	order  []string
	logger *zap.Logger
}

// NewService creates the service. The type table is validated against the engine's categories.
func NewService(e *engine.Engine, types []ItemType, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	table, err := validateTypes(types, e.Classifier())
	if err != nil {
		return nil, fmt.Errorf("invalid item types: %w", err)
	}
	order := make([]string, 0, len(types))
	for _, t := range types {
		order = append(order, t.Name)
	}
	return &Service{engine: e, types: table, order: order, logger: logger}, nil
}

func (s *Service) itemType(name string) (ItemType, error) {
	t, ok := s.types[strings.ToLower(name)]
	if !ok {
		return ItemType{}, fmt.Errorf("%w: %s", ErrUnknownItemType, name)
	}
	return t, nil
}

// Types summarizes every item type in table order.
func (s *Service) Types() []models.TypeSummary {
	out := make([]models.TypeSummary, 0, len(s.order))
	for _, name := range s.order {
		t := s.types[name]
		b, _ := s.engine.Bucket(t.Category)
		out = append(out, models.TypeSummary{Type: name, Category: t.Category, Items: b.Len()})
	}
	return out
}

// List returns the item ids of a type in bucket order.
func (s *Service) List(itemType string) ([]string, error) {
	t, err := s.itemType(itemType)
	if err != nil {
		return nil, err
	}
	b, err := s.engine.Bucket(t.Category)
	if err != nil {
		return nil, err
	}
	return b.Keys(), nil
}

// Item composes the view of one item. A fresh texture pattern cache is used per call.
func (s *Service) Item(ctx context.Context, itemType, id string) (*models.ItemView, error) {
	t, err := s.itemType(itemType)
	if err != nil {
		return nil, err
	}
	b, err := s.engine.Bucket(t.Category)
	if err != nil {
		return nil, err
	}
	record := b.Get(id)
	if record == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrItemNotFound, t.Name, id)
	}

	main := record.Main()
	view := &models.ItemView{
		ID:          id,
		Type:        t.Name,
		Path:        record.Path,
		Class:       mainType(main),
		Name:        text(main.Field("DisplayName")),
		Description: text(main.Field("Description")),
		Rarity:      rarity(main.Field("Rarity")),
		Tags:        resolve.Tags(main.Field("GameplayTags")),
		Icon:        s.existing(main.Field("LargePreviewImage"), main.Field("SmallPreviewImage")),
		Series:      s.series(ctx, main.Field("Series")),
		Set:         s.set(resolve.Tags(main.Field("GameplayTags"))),
	}
	if view.Tags == nil {
		view.Tags = []string{}
	}
	if t.Compose != nil {
		t.Compose(ctx, s, record, view)
	}
	return view, nil
}

// bucket returns a category bucket or nil.
func (s *Service) bucket(name string) *category.Bucket {
	b, err := s.engine.Bucket(name)
	if err != nil {
		return nil
	}
	return b
}

// reference resolves a field that is either an export index into b or an asset path.
// Asset paths are looked up in b by short name before being materialized directly.
func (s *Service) reference(ctx context.Context, b *category.Bucket, value any) *archive.Record {
	if k, ok := utils.ToInt(value); ok {
		return resolve.ByIndex(b, k)
	}
	ref := resolve.Soft(value)
	if ref == "" {
		return nil
	}
	r := s.engine.Resolver()
	if record := b.Get(materialize.ShortName(r.NormalizePath(ref))); record != nil {
		return record
	}
	return r.ByPath(ctx, ref)
}

func (s *Service) existing(values ...any) string {
	r := s.engine.Resolver()
	for _, v := range values {
		p := r.NormalizePath(resolve.Soft(v))
		if p != "" && s.engine.Index().Exists(p) {
			return p
		}
	}
	return ""
}

func (s *Service) series(ctx context.Context, value any) *models.SeriesView {
	if value == nil {
		return nil
	}
	record := s.reference(ctx, s.bucket(category.Series), value)
	if record == nil {
		return nil
	}
	main := record.Main()
	return &models.SeriesView{
		ID:     record.Name,
		Name:   text(main.Field("DisplayName")),
		Colors: utils.ToMap(main.Field("Colors")),
	}
}

func (s *Service) set(tags []string) *models.SetView {
	sets := s.bucket(category.Sets)
	if sets.Len() == 0 {
		return nil
	}
	tag, row := resolve.ByTag(tags, setTag, sets.Records()[0])
	if row == nil {
		return nil
	}
	return &models.SetView{Tag: tag, Name: text(row["DisplayName"])}
}

// composeCharacter adds the hero, its specializations, parts, materials and textures.
func composeCharacter(ctx context.Context, s *Service, record *archive.Record, view *models.ItemView) {
	hero := s.reference(ctx, s.bucket(category.Heroes), record.Main().Field("HeroDefinition"))
	if hero == nil {
		return
	}
	cache := texture.NewPatternCache()
	view.Hero = &models.HeroView{
		ID:              hero.Name,
		Path:            hero.Path,
		Specializations: []models.SpecializationView{},
	}
	for _, spec := range s.specializations(ctx, hero) {
		sv := models.SpecializationView{ID: spec.Name, Path: spec.Path, Parts: []models.PartView{}}
		for _, ref := range utils.ToSlice(spec.Main().Field("CharacterParts")) {
			part := s.engine.Resolver().Field(ctx, ref)
			if part == nil {
				continue
			}
			sv.Parts = append(sv.Parts, s.part(ctx, part, cache))
		}
		view.Hero.Specializations = append(view.Hero.Specializations, sv)
	}
}

// specializations resolves the hero's declared specializations, falling back to
// the Specializations bucket keyed by the hero id.
func (s *Service) specializations(ctx context.Context, hero *archive.Record) []*archive.Record {
	var out []*archive.Record
	for _, ref := range utils.ToSlice(hero.Main().Field("Specializations")) {
		if spec := s.engine.Resolver().Field(ctx, ref); spec != nil {
			out = append(out, spec)
		}
	}
	if len(out) == 0 {
		if spec := s.bucket(category.Specializations).Get(hero.Name); spec != nil {
			out = append(out, spec)
		}
	}
	return out
}

func (s *Service) part(ctx context.Context, part *archive.Record, cache *texture.PatternCache) models.PartView {
	main := part.Main()
	pv := models.PartView{
		ID:        part.Name,
		Path:      part.Path,
		PartType:  strings.TrimPrefix(utils.ToString(main.Field("CharacterPartType")), "EFortCustomPartType::"),
		Mesh:      s.engine.Resolver().NormalizePath(resolve.Soft(main.Field("SkeletalMesh"))),
		Materials: []models.MaterialView{},
	}

	var refs []any
	for _, o := range utils.ToSlice(main.Field("MaterialOverrides")) {
		refs = append(refs, utils.ToMap(o)["OverrideMaterial"])
	}
	refs = append(refs, utils.ToSlice(main.Field("Materials"))...)

	seen := make(map[string]struct{})
	for _, ref := range refs {
		material := s.engine.Resolver().Field(ctx, ref)
		if material == nil {
			continue
		}
		if _, dup := seen[material.Path]; dup {
			continue
		}
		seen[material.Path] = struct{}{}
		pv.Materials = append(pv.Materials, models.MaterialView{
			ID:       material.Name,
			Path:     material.Path,
			Textures: s.engine.Textures().Slots(material, cache),
		})
	}
	return pv
}

func mainType(e *archive.Export) string {
	if e == nil {
		return ""
	}
	return e.Type
}

// text reads a localized text field.
func text(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"LocalizedString", "localized_string", "SourceString", "source_string", "string"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func rarity(value any) string {
	r := strings.TrimPrefix(utils.ToString(value), "EFortRarity::")
	if r == "" {
		return "Uncommon"
	}
	return r
}
