package view

import "strings"

// BlankAsset is the fallback image for unmapped categories.
const BlankAsset = "blank.jpg"

// categoryAssets keys product imagery by the stable category attribute
// rather than by substring-matching display names.
var categoryAssets = map[string]string{
	"tshirt":   "tshirt.jpg",
	"trousers": "trousers.jpg",
	"uggs":     "uggs.jpg",
	"sneakers": "sneakers.jpg",
	"jacket":   "jacket.jpg",
	"blazer":   "blazer.jpg",
	"samba":    "samba.jpg",
}

// AssetForCategory returns the image asset for a product category,
// case-insensitively, with a blank fallback.
func AssetForCategory(category string) string {
	if asset, ok := categoryAssets[strings.ToLower(category)]; ok {
		return asset
	}
	return BlankAsset
}
