package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpgradeResolution(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"thumbs directory", "https://i.ebayimg.com/thumbs/images/g/abc/s-l1600.jpg", "https://i.ebayimg.com/images/g/abc/s-l1600.jpg"},
		{"size suffix", "https://i.ebayimg.com/images/g/abc/s-l225.jpg", "https://i.ebayimg.com/images/g/abc/s-l1600.jpg"},
		{"thumb suffix", "https://example.com/pics/item-thumb.png", "https://example.com/pics/item.png"},
		{"all rules", "https://i.ebayimg.com/thumbs/images/g/abc/s-l64-thumb.webp", "https://i.ebayimg.com/images/g/abc/s-l1600.webp"},
		{"nested thumbs", "https://i.ebayimg.com/thumbs/thumbs/x.jpg", "https://i.ebayimg.com/x.jpg"},
		{"untouched", "https://example.com/full/photo.jpg", "https://example.com/full/photo.jpg"},
		{"thumb suffix with query", "https://example.com/pics/item-thumb.jpg?w=200", "https://example.com/pics/item.jpg?w=200"},
		{"thumb in hostname", "https://img-thumb.example.com/photos/a.jpg", "https://img-thumb.example.com/photos/a.jpg"},
		{"thumb in directory", "https://example.com/shop-thumb.v2/photo.jpg", "https://example.com/shop-thumb.v2/photo.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UpgradeResolution(tt.in))
		})
	}
}

func TestUpgradeResolutionIdempotent(t *testing.T) {
	inputs := []string{
		"https://i.ebayimg.com/thumbs/images/g/abc/s-l140.jpg",
		"https://example.com/a-thumb-thumb.jpg",
		"https://example.com/thumbs/thumbs/s-l1.gif",
		"https://example.com/plain.jpg",
	}
	for _, in := range inputs {
		once := UpgradeResolution(in)
		assert.Equal(t, once, UpgradeResolution(once), in)
	}
}

func TestMergeImagesDedupsRawBeforeUpgrade(t *testing.T) {
	summary := []string{
		"https://i.ebayimg.com/thumbs/images/g/abc/s-l140.jpg",
		"",
	}
	detail := []string{
		"https://i.ebayimg.com/images/g/abc/s-l500.jpg",
		"https://i.ebayimg.com/thumbs/images/g/abc/s-l140.jpg",
		"https://i.ebayimg.com/images/g/def/s-l500.jpg",
		"  ",
	}

	got := MergeImages(summary, detail)

	assert.Equal(t, []string{
		"https://i.ebayimg.com/images/g/abc/s-l1600.jpg",
		"https://i.ebayimg.com/images/g/abc/s-l1600.jpg",
		"https://i.ebayimg.com/images/g/def/s-l1600.jpg",
	}, got)
}

func TestMergeImagesEmpty(t *testing.T) {
	assert.Empty(t, MergeImages())
	assert.Empty(t, MergeImages(nil, []string{"", ""}))
}
