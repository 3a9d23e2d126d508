package texture

import (
	"regexp"
	"strings"
)

// Variant is one naming rule for a texture file name.
type Variant int

const (
	Exact Variant = iota
	LowerKind
	StripNumber
	AppendNumber
	StripQualifier
	StripLeadingNumber
)

// Variants is the order in which naming rules are tried.
var Variants = []Variant{Exact, LowerKind, StripNumber, AppendNumber, StripQualifier, StripLeadingNumber}

var (
	trailingNumber = regexp.MustCompile(`_?\d+$`)
	leadingNumber  = regexp.MustCompile(`^\d+_`)
	qualifiers     = regexp.MustCompile(`(?i)_(?:Body|Head|Hands|2K|4K)(_|$)`)
)

func (v Variant) String() string {
	switch v {
	case Exact:
		return "exact"
	case LowerKind:
		return "lower_kind"
	case StripNumber:
		return "strip_number"
	case AppendNumber:
		return "append_number"
	case StripQualifier:
		return "strip_qualifier"
	case StripLeadingNumber:
		return "strip_leading_number"
	default:
		return "unknown"
	}
}

// Name builds the texture file name (without extension) for a material stem and kind.
// It returns "" when the variant does not apply to the stem.
func (v Variant) Name(stem, kind string) string {
	switch v {
	case Exact:
	case LowerKind:
		if strings.ToLower(kind) == kind {
			return ""
		}
		kind = strings.ToLower(kind)
	case StripNumber:
		stripped := trailingNumber.ReplaceAllString(stem, "")
		if stripped == stem {
			return ""
		}
		stem = stripped
	case AppendNumber:
		stem += "_01"
	case StripQualifier:
		stripped := stripQualifiers(stem)
		if stripped == stem {
			return ""
		}
		stem = stripped
	case StripLeadingNumber:
		stripped := leadingNumber.ReplaceAllString(stem, "")
		if stripped == stem {
			return ""
		}
		stem = stripped
	default:
		return ""
	}
	if stem == "" {
		return ""
	}
	return "T_" + stem + "_" + kind
}

// stripQualifiers removes whole-word qualifiers. Adjacent qualifiers share a
// separator, so it repeats until nothing matches.
func stripQualifiers(stem string) string {
	for {
		next := qualifiers.ReplaceAllString(stem, "${1}")
		if next == stem {
			return stem
		}
		stem = next
	}
}

// Stem strips the material prefix (MI_ or M_) from a material name.
func Stem(material string) string {
	for _, prefix := range []string{"MI_", "M_"} {
		if strings.HasPrefix(material, prefix) {
			return strings.TrimPrefix(material, prefix)
		}
	}
	return material
}
