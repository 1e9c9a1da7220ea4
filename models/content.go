package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ContentKind describes one asset-bearing content collection managed through
// the generic content endpoints. ScalarURLFields and ArrayURLFields name the
// document fields that hold storage URLs; everything else on the document is
// passthrough. The cleanup pass is driven entirely by these declarations.
type ContentKind struct {
	Slug            string
	Collection      string
	ScalarURLFields []string
	ArrayURLFields  []string
}

// ContentKinds maps the URL path segment to its kind. Videos land in the
// same bucket as images; the thumbnail fields are uploaded separately by the
// admin UI.
var ContentKinds = map[string]ContentKind{
	"stores": {
		Slug: "stores", Collection: "stores",
		ScalarURLFields: []string{"imageUrl"},
	},
	"hero-images": {
		Slug: "hero-images", Collection: "hero_images",
		ScalarURLFields: []string{"imageUrl", "mobileImageUrl"},
	},
	"celebrity-videos": {
		Slug: "celebrity-videos", Collection: "celebrity_videos",
		ScalarURLFields: []string{"videoUrl", "thumbnailUrl"},
	},
	"featured-images": {
		Slug: "featured-images", Collection: "featured_images",
		ScalarURLFields: []string{"imageUrl"},
	},
	"testimonials": {
		Slug: "testimonials", Collection: "testimonials",
		ScalarURLFields: []string{"avatarUrl"},
	},
	"trending-videos": {
		Slug: "trending-videos", Collection: "trending_videos",
		ScalarURLFields: []string{"videoUrl", "thumbnailUrl"},
	},
	"offer-contents": {
		Slug: "offer-contents", Collection: "offer_contents",
		ScalarURLFields: []string{"imageUrl"},
		ArrayURLFields:  []string{"images"},
	},
	"stay-classy-images": {
		Slug: "stay-classy-images", Collection: "stay_classy_images",
		ScalarURLFields: []string{"imageUrl"},
	},
	"review-videos": {
		Slug: "review-videos", Collection: "review_videos",
		ScalarURLFields: []string{"videoUrl"},
	},
}

// AssetURLs extracts every non-empty URL held by doc under the kind's
// declared URL fields. Array fields tolerate both []string (freshly built
// documents) and bson.A (decoded documents).
func (k ContentKind) AssetURLs(doc bson.M) []string {
	urls := make([]string, 0, 4)
	for _, f := range k.ScalarURLFields {
		if s, ok := doc[f].(string); ok && s != "" {
			urls = append(urls, s)
		}
	}
	for _, f := range k.ArrayURLFields {
		switch v := doc[f].(type) {
		case []string:
			for _, s := range v {
				if s != "" {
					urls = append(urls, s)
				}
			}
		case bson.A:
			for _, e := range v {
				if s, ok := e.(string); ok && s != "" {
					urls = append(urls, s)
				}
			}
		case []interface{}:
			for _, e := range v {
				if s, ok := e.(string); ok && s != "" {
					urls = append(urls, s)
				}
			}
		}
	}
	return urls
}

// ValidateURLFields rejects documents whose declared URL fields hold the
// wrong shape: scalar fields must be strings, array fields lists of strings.
// Undeclared fields pass through untouched.
func (k ContentKind) ValidateURLFields(doc bson.M) error {
	for _, f := range k.ScalarURLFields {
		v, present := doc[f]
		if !present {
			continue
		}
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%s must be a string", f)
		}
	}
	for _, f := range k.ArrayURLFields {
		v, present := doc[f]
		if !present {
			continue
		}
		var elems []interface{}
		switch a := v.(type) {
		case []string:
			continue
		case bson.A:
			elems = a
		case []interface{}:
			elems = a
		default:
			return fmt.Errorf("%s must be a list of strings", f)
		}
		for _, e := range elems {
			if _, ok := e.(string); !ok {
				return fmt.Errorf("%s must be a list of strings", f)
			}
		}
	}
	return nil
}

// IsURLField reports whether name is one of the kind's declared URL fields.
func (k ContentKind) IsURLField(name string) bool {
	for _, f := range k.ScalarURLFields {
		if f == name {
			return true
		}
	}
	for _, f := range k.ArrayURLFields {
		if f == name {
			return true
		}
	}
	return false
}
