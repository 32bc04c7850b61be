// Package enrich attaches display metadata to collection groups and sorts
// them for presentation. It is a light post-processing step over the
// pipeline's grouped output.
package enrich

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/bardionson/gallery-cli/internal/model"
)

// PlaceholderImage is served when a group has no usable cover.
const PlaceholderImage = "/placeholder.png"

// CollectionConfig is the static display mapping for one slug.
type CollectionConfig struct {
	DisplayName string `yaml:"display_name"`
	Priority    int    `yaml:"priority"`
	CoverImage  string `yaml:"cover_image"`
}

// Config maps collection slugs to display settings.
type Config map[string]CollectionConfig

// LoadConfig reads the display configuration from a YAML file. A missing
// file is not an error; every group then falls back to raw slugs.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return nil, eris.Wrapf(err, "enrich: read config %s", path)
	}

	var wrapper struct {
		Collections Config `yaml:"collections"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "enrich: parse config")
	}
	if wrapper.Collections == nil {
		wrapper.Collections = Config{}
	}
	return wrapper.Collections, nil
}

// Collection is a group plus its display metadata.
type Collection struct {
	model.CollectionGroup
	Priority   int    `json:"priority"`
	CoverImage string `json:"coverImage"`
}

// AndSort applies display config to each group and orders the result by
// priority (descending), then display name (ascending, locale-aware).
func AndSort(grouped map[string]model.CollectionGroup, cfg Config) []Collection {
	enriched := make([]Collection, 0, len(grouped))

	for slug, group := range grouped {
		displayName := group.Name
		priority := 0
		cover := ""

		if settings, ok := cfg[slug]; ok {
			if settings.DisplayName != "" {
				displayName = settings.DisplayName
			}
			priority = settings.Priority
			cover = settings.CoverImage
		}

		if cover == "" {
			cover = coverFromNFTs(group.NFTs)
		}
		if cover == "" {
			cover = PlaceholderImage
		}

		group.Name = displayName
		enriched = append(enriched, Collection{
			CollectionGroup: group,
			Priority:        priority,
			CoverImage:      cover,
		})
	}

	coll := collate.New(language.English)
	sort.SliceStable(enriched, func(i, j int) bool {
		if enriched[i].Priority != enriched[j].Priority {
			return enriched[i].Priority > enriched[j].Priority
		}
		return coll.CompareString(enriched[i].Name, enriched[j].Name) < 0
	})

	return enriched
}

// coverFromNFTs picks the most recently added record with an image, searching
// from the end of the group. Newer items tend to have working media.
func coverFromNFTs(nfts []model.NFT) string {
	for i := len(nfts) - 1; i >= 0; i-- {
		if nfts[i].DisplayImageURL != "" {
			return nfts[i].DisplayImageURL
		}
		if nfts[i].ImageURL != "" {
			return nfts[i].ImageURL
		}
	}
	return ""
}
