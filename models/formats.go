package models

import "fmt"

// SocialFormat is a named aspect preset the editor can crop to.
type SocialFormat struct {
	Name        string
	Width       int
	Height      int
	AspectRatio string
}

const DefaultFormatName = "Instagram Square (1:1)"

var socialFormats = []SocialFormat{
	{"Instagram Square (1:1)", 1080, 1080, "1:1"},
	{"Instagram Portrait (4:5)", 1080, 1350, "4:5"},
	{"Twitter Post (16:9)", 1200, 675, "16:9"},
	{"Twitter Header (3:1)", 1500, 500, "3:1"},
	{"Facebook Cover (205:78)", 820, 320, "205:78"},
}

// SocialFormats returns every preset in display order.
func SocialFormats() []SocialFormat {
	out := make([]SocialFormat, len(socialFormats))
	copy(out, socialFormats)
	return out
}

// FormatByName looks up a preset by its display name.
func FormatByName(name string) (SocialFormat, error) {
	for _, f := range socialFormats {
		if f.Name == name {
			return f, nil
		}
	}
	return SocialFormat{}, fmt.Errorf("unknown social format: %s", name)
}
