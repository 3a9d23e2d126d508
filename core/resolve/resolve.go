package resolve

import (
	"context"
	"path"
	"regexp"
	"strings"

	"pak-index/core/archive"
	"pak-index/core/category"
	"pak-index/core/utils"

	"go.uber.org/zap"
)

// Config describes how embedded asset paths map onto indexed file paths.
type Config struct {
	// VirtualRoot is the token asset references use for the content root.
	VirtualRoot string
	// ContentRoot is the indexed directory the virtual root maps to.
	ContentRoot string
	// AssetExtension is appended to normalized paths.
	AssetExtension string
}

// Materializer is the subset of the record materializer the resolver reads through.
type Materializer interface {
	Get(ctx context.Context, p string) *archive.Record
}

// Resolver resolves cross-record references.
type Resolver struct {
	cfg          Config
	materializer Materializer
	logger       *zap.Logger
}

// New creates a resolver.
func New(cfg Config, m Materializer, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.VirtualRoot = strings.TrimSuffix(cfg.VirtualRoot, "/")
	cfg.ContentRoot = strings.TrimSuffix(cfg.ContentRoot, "/")
	return &Resolver{cfg: cfg, materializer: m, logger: logger}
}

// NormalizePath maps an asset reference onto an indexed file path.
// "/Game/Athena/HID_001.HID_001" becomes "<content root>/Athena/HID_001<extension>".
func (r *Resolver) NormalizePath(ref string) string {
	ref = strings.TrimSpace(strings.ReplaceAll(ref, "\\", "/"))
	if ref == "" {
		return ""
	}

	switch {
	case r.cfg.VirtualRoot != "" && ref == r.cfg.VirtualRoot:
		ref = r.cfg.ContentRoot
	case r.cfg.VirtualRoot != "" && strings.HasPrefix(ref, r.cfg.VirtualRoot+"/"):
		rest := strings.TrimPrefix(ref, r.cfg.VirtualRoot+"/")
		if r.cfg.ContentRoot == "" {
			ref = rest
		} else {
			ref = r.cfg.ContentRoot + "/" + rest
		}
	default:
		ref = strings.TrimPrefix(ref, "/")
	}

	dir, name := path.Split(ref)
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return ""
	}
	return dir + name + r.cfg.AssetExtension
}

// ByPath materializes the record an asset reference points at, or returns nil.
func (r *Resolver) ByPath(ctx context.Context, ref string) *archive.Record {
	p := r.NormalizePath(ref)
	if p == "" {
		return nil
	}
	record := r.materializer.Get(ctx, p)
	if record == nil {
		r.logger.Debug("Reference not resolved", zap.String("reference", ref), zap.String("path", p))
	}
	return record
}

// Field resolves a reference stored in a field value, accepting any form Soft understands.
func (r *Resolver) Field(ctx context.Context, value any) *archive.Record {
	return r.ByPath(ctx, Soft(value))
}

// ByIndex returns the first record in bucket order with an export carrying index k.
func ByIndex(b *category.Bucket, k int) *archive.Record {
	for _, record := range b.Records() {
		if _, ok := record.Export(k); ok {
			return record
		}
	}
	return nil
}

// ByTag finds the first tag matching pattern and returns it with its row in table.
// Rows are looked up by the full tag first and then by its last dotted segment.
// A tag that matches the pattern but has no row still ends the search.
func ByTag(tags []string, pattern *regexp.Regexp, table *archive.Record) (string, map[string]any) {
	if pattern == nil {
		return "", nil
	}
	for _, tag := range tags {
		if !pattern.MatchString(tag) {
			continue
		}
		rows := Rows(table)
		if row := utils.ToMap(rows[tag]); row != nil {
			return tag, row
		}
		if i := strings.LastIndex(tag, "."); i >= 0 {
			if row := utils.ToMap(rows[tag[i+1:]]); row != nil {
				return tag, row
			}
		}
		return tag, nil
	}
	return "", nil
}

// Rows returns the row map of a lookup table record.
func Rows(table *archive.Record) map[string]any {
	return utils.ToMap(table.Main().Field("Rows"))
}

// Soft extracts an asset path from a reference field value. Strings are
// returned as is; maps are searched for asset_path_name, AssetPathName or
// ObjectPath.
func Soft(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"asset_path_name", "AssetPathName", "ObjectPath", "object_path"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Tags flattens a gameplay tag container into a list of tag names.
func Tags(value any) []string {
	if m := utils.ToMap(value); m != nil {
		for _, key := range []string{"gameplay_tags", "GameplayTags"} {
			if tags, ok := m[key]; ok {
				return utils.ToStrings(tags)
			}
		}
		return nil
	}
	return utils.ToStrings(value)
}
