package engine

// Config holds configuration for the package index.
type Config struct {
	// Path is the directory holding the containers.
	Path string `mapstructure:"path" default:"./paks"`
	// Pattern selects container files inside Path (doublestar syntax).
	Pattern string `mapstructure:"pattern" default:"*.pak"`
	// Extension is appended to a container id to build its file name.
	Extension string `mapstructure:"extension" default:".pak"`
	// Threshold is the default number of matches a category must exceed to be materialized.
	Threshold int `mapstructure:"threshold" default:"5"`
	// ContentRoot is the indexed directory asset references resolve into.
	ContentRoot string `mapstructure:"content_root" default:"FortniteGame/Content"`
	// VirtualRoot is the token asset references use for ContentRoot.
	VirtualRoot string `mapstructure:"virtual_root" default:"/Game"`
	// AssetExtension is the file extension of indexed assets.
	AssetExtension string `mapstructure:"asset_extension" default:".uasset"`
	// RulesFile optionally replaces the built-in category table with a YAML file.
	RulesFile string `mapstructure:"rules_file" default:""`
}
