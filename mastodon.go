package pagescan

import "encoding/json"

// MastodonMediaGalleryRecognizer recognizes the media-gallery widget used
// on Mastodon entries: an element with data-component="MediaGallery" whose
// data-props attribute embeds the gallery as JSON. One Img is emitted per
// image-typed media entry, sized from the "original" metadata.
type MastodonMediaGalleryRecognizer struct {
	hooks *Hooks
}

type galleryProps struct {
	Media []struct {
		Type string `json:"type"`
		URL  string `json:"url"`
		Meta struct {
			Original struct {
				Width  int `json:"width"`
				Height int `json:"height"`
			} `json:"original"`
		} `json:"meta"`
	} `json:"media"`
}

// NewMastodonMediaGalleryRecognizer returns a recognizer for Mastodon
// media galleries.
func NewMastodonMediaGalleryRecognizer() *MastodonMediaGalleryRecognizer {
	r := &MastodonMediaGalleryRecognizer{}
	r.hooks = &Hooks{End: r.end}
	return r
}

// Hooks implements Recognizer.
func (r *MastodonMediaGalleryRecognizer) Hooks() *Hooks { return r.hooks }

func (r *MastodonMediaGalleryRecognizer) end(t *Tag) []Stuff {
	if component, _ := t.Get("data-component"); component != "MediaGallery" {
		return nil
	}
	raw, _ := t.Get("data-props")
	var props galleryProps
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		// Malformed widget JSON is malformed markup, not a defect.
		return nil
	}
	var stuff []Stuff
	for _, m := range props.Media {
		if m.Type != "image" {
			continue
		}
		stuff = append(stuff, &Img{
			Src:    m.URL,
			Width:  m.Meta.Original.Width,
			Height: m.Meta.Original.Height,
		})
	}
	return stuff
}
