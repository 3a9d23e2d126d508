package category

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"pak-index/core/materialize"

	"gopkg.in/yaml.v3"
)

// DefaultThreshold is used by rules that do not set their own.
const DefaultThreshold = 5

// Category names of the built-in rule table.
const (
	Characters      = "Characters"
	Backpacks       = "Backpacks"
	Pickaxes        = "Pickaxes"
	Gliders         = "Gliders"
	Dances          = "Dances"
	Heroes          = "Heroes"
	Specializations = "Specializations"
	Series          = "Series"
	Sets            = "Sets"
)

// Rule describes one category.
type Rule struct {
	// Name is the category name.
	Name string `yaml:"name"`
	// Prefix must match the start of the file path.
	Prefix string `yaml:"prefix"`
	// Contains, when set, must also appear in the path after the prefix.
	Contains string `yaml:"contains,omitempty"`
	// Threshold is the match count the category must exceed; nil uses the classifier default.
	Threshold *int `yaml:"threshold,omitempty"`
	// KeySeparator switches bucket keys to the text after the first separator in the short name.
	KeySeparator string `yaml:"key_separator,omitempty"`
}

// Matches reports whether path belongs to the category.
func (r Rule) Matches(path string) bool {
	if !strings.HasPrefix(path, r.Prefix) {
		return false
	}
	return r.Contains == "" || strings.Contains(path[len(r.Prefix):], r.Contains)
}

// Limit returns a threshold value for use in rule literals.
func Limit(n int) *int {
	return &n
}

func (r Rule) threshold(fallback int) int {
	if r.Threshold != nil {
		return *r.Threshold
	}
	return fallback
}

// Key returns the bucket key for path.
func (r Rule) Key(path string) string {
	name := materialize.ShortName(path)
	if r.KeySeparator == "" {
		return name
	}
	if _, after, found := strings.Cut(name, r.KeySeparator); found && after != "" {
		return after
	}
	return name
}

type ruleFile struct {
	Categories []Rule `yaml:"categories"`
}

// LoadRules reads a rule table from a YAML file.
func LoadRules(file string) ([]Rule, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", file, err)
	}
	if err := validate(rf.Categories); err != nil {
		return nil, err
	}
	return rf.Categories, nil
}

// DefaultRules returns the cosmetic layout rooted at contentRoot.
func DefaultRules(contentRoot string) []Rule {
	root := strings.TrimSuffix(contentRoot, "/") + "/"
	cosmetics := root + "Athena/Items/Cosmetics/"

	return []Rule{
		{Name: Characters, Prefix: cosmetics + "Characters/"},
		{Name: Backpacks, Prefix: cosmetics + "Backpacks/"},
		{Name: Pickaxes, Prefix: cosmetics + "Pickaxes/"},
		{Name: Gliders, Prefix: cosmetics + "Gliders/"},
		{Name: Dances, Prefix: cosmetics + "Dances/", Contains: "EID_"},
		{Name: Heroes, Prefix: root + "Athena/", Contains: "Heroes/HID_"},
		{Name: Specializations, Prefix: root + "Athena/Heroes/Specializations/", KeySeparator: "_"},
		{Name: Series, Prefix: cosmetics + "Series/", Threshold: Limit(3)},
		{Name: Sets, Prefix: cosmetics + "Metadata/", Contains: "CosmeticSets", Threshold: Limit(0)},
	}
}

func validate(rules []Rule) error {
	if len(rules) == 0 {
		return errors.New("category table is empty")
	}
	seen := make(map[string]struct{}, len(rules))
	for i, r := range rules {
		if r.Name == "" {
			return fmt.Errorf("category rule %d has no name", i)
		}
		if r.Prefix == "" {
			return fmt.Errorf("category %s has no prefix", r.Name)
		}
		if r.Threshold != nil && *r.Threshold < 0 {
			return fmt.Errorf("category %s has a negative threshold", r.Name)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("category %s is declared twice", r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	return nil
}
