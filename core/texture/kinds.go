package texture

import "strings"

// kinds maps material parameter names to texture kind codes.
var kinds = map[string]string{
	"diffuse":       "D",
	"basecolor":     "D",
	"normals":       "N",
	"normal":        "N",
	"specularmasks": "S",
	"specular":      "S",
	"m":             "M",
	"mask":          "M",
	"emissive":      "E",
	"emissivemap":   "E",
	"skinfx_mask":   "FX",
}

// Kind returns the kind code of a material parameter. Parameter names are
// matched case-insensitively.
func Kind(parameter string) (string, bool) {
	k, ok := kinds[strings.ToLower(strings.TrimSpace(parameter))]
	return k, ok
}
