package cosmetics_test

import (
	"context"
	"path/filepath"
	"testing"

	"pak-index/core/archive"
	"pak-index/core/archive/mocks"
	"pak-index/core/category"
	"pak-index/core/engine"
	"pak-index/core/keys"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	cosmeticsDir = "Game/Athena/Items/Cosmetics/"
	heroesDir    = "Game/Athena/Heroes/"
	raiderItem   = cosmeticsDir + "Characters/CID_001_Raider.uasset"
	brokenItem   = cosmeticsDir + "Characters/CID_002_Broken.uasset"
	fallbackItem = cosmeticsDir + "Characters/CID_003_Fallback.uasset"
	raiderHero   = heroesDir + "HID_001_Raider.uasset"
	fallbackHero = heroesDir + "HID_003_Fallback.uasset"
	raiderSpec   = heroesDir + "Specializations/HS_HID_001_Raider.uasset"
	fallbackSpec = heroesDir + "Specializations/HS_HID_003_Fallback.uasset"
	bodyPart     = "Game/Characters/Parts/F_MED_Raider_Body.uasset"
	bodyMaterial = "Game/Characters/Raider/Materials/MI_Raider_Body.uasset"
	diffuseTex   = "Game/Characters/Raider/Textures/T_Raider_D.uasset"
	normalTex    = "Game/Characters/Raider/Textures/T_Raider_N.uasset"
	iconTex      = "Game/UI/Icons/T_Raider.uasset"
	setsTable    = cosmeticsDir + "Metadata/CosmeticSets.uasset"
)

func export(class string, index int, fields map[string]any) *archive.Record {
	return &archive.Record{Exports: []archive.Export{{Index: index, Type: class, Fields: fields}}}
}

func soft(p string) map[string]any {
	return map[string]any{"asset_path_name": p, "sub_path_string": ""}
}

func cosmeticSession() *mocks.MemorySession {
	records := map[string]*archive.Record{
		raiderItem: export("AthenaCharacterItemDefinition", 1, map[string]any{
			"DisplayName":       map[string]any{"LocalizedString": "Renegade Raider"},
			"Description":       "Rare renegade.",
			"Rarity":            "EFortRarity::Rare",
			"GameplayTags":      map[string]any{"gameplay_tags": []any{"Cosmetics.Source.Season1", "Cosmetics.Set.Raider"}},
			"HeroDefinition":    "/Game/Athena/Heroes/HID_001_Raider.HID_001_Raider",
			"Series":            12,
			"SmallPreviewImage": soft("/Game/UI/Icons/T_Raider.T_Raider"),
		}),
		brokenItem: export("AthenaCharacterItemDefinition", 1, map[string]any{
			"DisplayName":    "Broken",
			"HeroDefinition": "/Game/Athena/Heroes/HID_Missing.HID_Missing",
			"Series":         99,
		}),
		fallbackItem: export("AthenaCharacterItemDefinition", 1, map[string]any{
			"DisplayName":    "Fallback",
			"HeroDefinition": soft("/Game/Athena/Heroes/HID_003_Fallback.HID_003_Fallback"),
		}),
		raiderHero: export("FortHeroType", 1, map[string]any{
			"Specializations": []any{soft("/Game/Athena/Heroes/Specializations/HS_HID_001_Raider.HS_HID_001_Raider")},
		}),
		fallbackHero: export("FortHeroType", 1, map[string]any{}),
		raiderSpec: export("FortHeroSpecialization", 1, map[string]any{
			"CharacterParts": []any{
				soft("/Game/Characters/Parts/F_MED_Raider_Body.F_MED_Raider_Body"),
				soft("/Game/Characters/Parts/Missing.Missing"),
			},
		}),
		fallbackSpec: export("FortHeroSpecialization", 1, map[string]any{}),
		bodyPart: export("CustomCharacterPart", 1, map[string]any{
			"CharacterPartType": "EFortCustomPartType::Body",
			"SkeletalMesh":      soft("/Game/Characters/Meshes/F_MED_Raider.F_MED_Raider"),
			"MaterialOverrides": []any{
				map[string]any{"OverrideMaterial": soft("/Game/Characters/Raider/Materials/MI_Raider_Body.MI_Raider_Body")},
				map[string]any{"OverrideMaterial": soft("/Game/Characters/Raider/Materials/MI_Gone.MI_Gone")},
			},
		}),
		bodyMaterial: export("MaterialInstanceConstant", 1, map[string]any{
			"TextureParameterValues": []any{
				map[string]any{"ParameterInfo": map[string]any{"Name": "Diffuse"}},
				map[string]any{"ParameterInfo": map[string]any{"Name": "Normals"}},
			},
		}),
		setsTable: export("DataTable", 1, map[string]any{
			"Rows": map[string]any{
				"Cosmetics.Set.Raider": map[string]any{"DisplayName": map[string]any{"LocalizedString": "Raider"}},
			},
		}),
	}
	for i, name := range []string{"Series_A", "Series_B", "Series_C", "Series_D"} {
		records[cosmeticsDir+"Series/"+name+".uasset"] = export("FortItemSeriesDefinition", 11+i, map[string]any{
			"DisplayName": name + " Series",
			"Colors":      map[string]any{"Color1": "#ff0000"},
		})
	}

	var files []string
	for p := range records {
		files = append(files, p)
	}
	files = append(files, diffuseTex, normalTex, iconTex)
	s := mocks.NewMemorySession("pak0", files...)
	for p, r := range records {
		s.Records[p] = r
	}
	return s
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	dir := t.TempDir()
	dec := new(mocks.Decoder)
	dec.On("Open", mock.Anything, filepath.Join(dir, "pak0.pak"), mock.Anything).Return(cosmeticSession(), nil)

	rules := category.DefaultRules("Game")
	for i := range rules {
		rules[i].Threshold = category.Limit(0)
	}

	e, err := engine.New(engine.Config{
		Path:           dir,
		Pattern:        "*.pak",
		Extension:      ".pak",
		Threshold:      0,
		ContentRoot:    "Game",
		VirtualRoot:    "/Game",
		AssetExtension: ".uasset",
	}, dec, keys.NewStatic(keys.Chain{MainKey: "0xMAIN"}), rules, nil, nil)
	require.NoError(t, err)
	require.NoError(t, e.Open(context.Background(), "pak0", ""))
	return e
}
