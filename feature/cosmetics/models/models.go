package models

import "pak-index/core/texture"

// ItemView is the composed description of one cosmetic item.
// Nil pointers mark references that could not be resolved.
type ItemView struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Path        string      `json:"path"`
	Class       string      `json:"class"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Rarity      string      `json:"rarity"`
	Tags        []string    `json:"tags"`
	Icon        string      `json:"icon,omitempty"`
	Series      *SeriesView `json:"series"`
	Set         *SetView    `json:"set"`
	Hero        *HeroView   `json:"hero,omitempty"`
}

// SeriesView is the series an item belongs to.
type SeriesView struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Colors map[string]any `json:"colors,omitempty"`
}

// SetView is the cosmetic set an item belongs to.
type SetView struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

// HeroView is the hero definition of a character.
type HeroView struct {
	ID              string               `json:"id"`
	Path            string               `json:"path"`
	Specializations []SpecializationView `json:"specializations"`
}

// SpecializationView groups the character parts of a hero.
type SpecializationView struct {
	ID    string     `json:"id"`
	Path  string     `json:"path"`
	Parts []PartView `json:"parts"`
}

// PartView is one character part (body, head, hat, ...).
type PartView struct {
	ID        string         `json:"id"`
	Path      string         `json:"path"`
	PartType  string         `json:"part_type"`
	Mesh      string         `json:"mesh,omitempty"`
	Materials []MaterialView `json:"materials"`
}

// MaterialView is a material of a part with its texture slots.
type MaterialView struct {
	ID       string         `json:"id"`
	Path     string         `json:"path"`
	Textures []texture.Slot `json:"textures"`
}

// TypeSummary describes one queryable item type.
type TypeSummary struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Items    int    `json:"items"`
}
