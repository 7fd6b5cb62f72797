package mint

import (
	"strings"

	"gebo/types"
)

// Attribute is an ERC-721 metadata trait
type Attribute struct {
	TraitType   string `json:"trait_type"`
	Value       any    `json:"value"`
	DisplayType string `json:"display_type,omitempty"`
}

// Metadata is the JSON document a token URI resolves to
type Metadata struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Image        string      `json:"image"`
	AnimationURL string      `json:"animation_url,omitempty"`
	ExternalURL  string      `json:"external_url,omitempty"`
	Attributes   []Attribute `json:"attributes"`
}

// TokenURI is where a video token's metadata is served from
func TokenURI(baseURL, videoID string) string {
	return strings.TrimRight(baseURL, "/") + "/api/nft/metadata/" + videoID
}

// BuildMetadata renders the ERC-721 metadata for a video
func BuildMetadata(v types.Video, baseURL string) Metadata {
	attrs := []Attribute{
		{TraitType: "Category", Value: v.Category},
		{TraitType: "Duration", Value: v.DurationSeconds, DisplayType: "number"},
		{TraitType: "Creator", Value: v.Creator},
	}
	if v.CreatorName != "" {
		attrs = append(attrs, Attribute{TraitType: "Creator Name", Value: v.CreatorName})
	}
	for _, tag := range v.Tags {
		attrs = append(attrs, Attribute{TraitType: "Tag", Value: tag})
	}

	m := Metadata{
		Name:         v.Title,
		Description:  v.Description,
		Image:        v.ThumbnailURL,
		AnimationURL: v.VideoURL,
		Attributes:   attrs,
	}
	if baseURL != "" {
		m.ExternalURL = strings.TrimRight(baseURL, "/") + "/videos/" + v.ID
	}
	return m
}
