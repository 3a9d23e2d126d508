package texture

import (
	"path"
	"strings"

	"pak-index/core/archive"
	"pak-index/core/materialize"
	"pak-index/core/metrics"
	"pak-index/core/resolve"
	"pak-index/core/utils"

	"go.uber.org/zap"
)

// Existence reports whether a file path is indexed.
type Existence interface {
	Exists(path string) bool
}

// Normalizer maps asset references onto indexed file paths.
type Normalizer interface {
	NormalizePath(ref string) string
}

// Pattern is the directory and naming rule that located a texture of a material.
type Pattern struct {
	Dir     string
	Variant Variant
}

// PatternCache remembers the working pattern per material for one query.
// A nil cache disables caching.
type PatternCache struct {
	patterns map[string]Pattern
}

// NewPatternCache creates an empty cache.
func NewPatternCache() *PatternCache {
	return &PatternCache{patterns: make(map[string]Pattern)}
}

// Get returns the pattern remembered for a material path.
func (c *PatternCache) Get(material string) (Pattern, bool) {
	if c == nil {
		return Pattern{}, false
	}
	p, ok := c.patterns[material]
	return p, ok
}

// Put remembers the pattern of a material path.
func (c *PatternCache) Put(material string, p Pattern) {
	if c == nil {
		return
	}
	c.patterns[material] = p
}

// Len returns the number of remembered patterns.
func (c *PatternCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.patterns)
}

// Slot is one texture parameter of a material.
type Slot struct {
	Parameter string `json:"parameter"`
	Kind      string `json:"kind"`
	Path      string `json:"path,omitempty"`
}

// Resolver locates textures.
type Resolver struct {
	files      Existence
	normalizer Normalizer
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// New creates a texture resolver testing candidates against files.
func New(files Existence, normalizer Normalizer, logger *zap.Logger, m *metrics.Metrics) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{files: files, normalizer: normalizer, logger: logger, metrics: m}
}

// Dirs returns the candidate texture directories of a material path, in trial order.
func Dirs(material string) []string {
	dir := strings.TrimSuffix(path.Dir(material), "/")
	var out []string
	if i := strings.LastIndex(dir, "/Materials"); i >= 0 {
		out = append(out, dir[:i]+"/Textures"+dir[i+len("/Materials"):])
	}
	return append(out, dir)
}

func candidate(dir string, v Variant, stem, kind, ext string) string {
	name := v.Name(stem, kind)
	if name == "" {
		return ""
	}
	return dir + "/" + name + ext
}

// Resolve returns the indexed path of the kind texture of material, or "".
// material is the indexed file path of the material.
func (r *Resolver) Resolve(material, kind string, cache *PatternCache) string {
	if material == "" || kind == "" {
		return ""
	}
	ext := path.Ext(material)
	stem := Stem(materialize.ShortName(material))

	tried := make(map[string]struct{})
	if p, ok := cache.Get(material); ok {
		c := candidate(p.Dir, p.Variant, stem, kind, ext)
		if c != "" {
			tried[c] = struct{}{}
			if r.files.Exists(c) {
				r.metrics.TextureLookup(metrics.TextureFastPath)
				return c
			}
		}
	}

	for _, dir := range Dirs(material) {
		for _, v := range Variants {
			c := candidate(dir, v, stem, kind, ext)
			if c == "" {
				continue
			}
			if _, seen := tried[c]; seen {
				continue
			}
			tried[c] = struct{}{}
			if r.files.Exists(c) {
				cache.Put(material, Pattern{Dir: dir, Variant: v})
				r.metrics.TextureLookup(metrics.TextureScan)
				return c
			}
		}
	}

	r.metrics.TextureLookup(metrics.TextureMiss)
	r.logger.Debug("Texture not found",
		zap.String("material", material),
		zap.String("kind", kind),
		zap.Int("candidates", len(tried)),
	)
	return ""
}

// Slot resolves one texture parameter. An explicit reference wins when it is indexed;
// unknown parameter names yield an empty path.
func (r *Resolver) Slot(material, parameter, explicit string, cache *PatternCache) Slot {
	kind, _ := Kind(parameter)
	slot := Slot{Parameter: parameter, Kind: kind}

	if explicit != "" && r.normalizer != nil {
		if p := r.normalizer.NormalizePath(explicit); p != "" && r.files.Exists(p) {
			r.metrics.TextureLookup(metrics.TextureExplicit)
			slot.Path = p
			return slot
		}
	}
	if kind == "" {
		return slot
	}
	slot.Path = r.Resolve(material, kind, cache)
	return slot
}

// Slots resolves every texture parameter declared by a material record.
func (r *Resolver) Slots(material *archive.Record, cache *PatternCache) []Slot {
	if material == nil {
		return nil
	}
	var slots []Slot
	for _, item := range utils.ToSlice(material.Main().Field("TextureParameterValues")) {
		param := utils.ToMap(item)
		if param == nil {
			continue
		}
		name := utils.ToString(utils.ToMap(param["ParameterInfo"])["Name"])
		if name == "" {
			continue
		}
		slots = append(slots, r.Slot(material.Path, name, resolve.Soft(param["ParameterValue"]), cache))
	}
	return slots
}
