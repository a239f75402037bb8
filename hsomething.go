package pagescan

import "strings"

// relsForEntryLinks marks links in an entry that are about the entry
// rather than mentioned in it.
var relsForEntryLinks = NewSet("webmention")

// hciteConsumed are the class markers stripped from a link once h-cite
// assembly has consumed them.
var hciteConsumed = NewSet("u-url", "p-name", "p-summary", "p-author", "h-card")

// HSomethingRecognizer assembles composite microformats2 entities. It is
// the whole-element post-processor of the default set: when a closing
// element carries h- classes, the element's flat candidate stuff is
// replaced by one composite entity per h- class, assembled by a dedicated
// rule for h-entry, h-card and h-cite and by a generic catch-all for
// anything else.
type HSomethingRecognizer struct {
	hooks *Hooks
}

// NewHSomethingRecognizer returns an HSomethingRecognizer.
func NewHSomethingRecognizer() *HSomethingRecognizer {
	r := &HSomethingRecognizer{}
	r.hooks = &Hooks{Assemble: r.assemble}
	return r
}

// Hooks implements Recognizer.
func (r *HSomethingRecognizer) Hooks() *Hooks { return r.hooks }

func (r *HSomethingRecognizer) assemble(t *Tag, stuff []Stuff) ([]Stuff, bool) {
	var hClasses, others []string
	for _, c := range t.Classes {
		if strings.HasPrefix(c, "h-") {
			hClasses = append(hClasses, c)
		} else {
			others = append(others, c)
		}
	}
	if len(hClasses) == 0 {
		return nil, false
	}
	// Successive composites for the same element share the working list,
	// so stuff consumed by one is not offered to the next.
	working := append([]Stuff(nil), stuff...)
	out := make([]Stuff, 0, len(hClasses))
	for _, h := range hClasses {
		out = append(out, r.makeSomething(t, h, others, &working))
	}
	return out, true
}

func (r *HSomethingRecognizer) makeSomething(t *Tag, hClass string, classes []string, stuff *[]Stuff) Stuff {
	switch hClass {
	case "h-entry":
		return r.makeHEntry(t, stuff)
	case "h-card":
		return r.makeHCard(classes, stuff)
	case "h-cite":
		return r.makeHCite(classes, stuff)
	}
	return &HSomething{HClass: hClass, Classes: classes, Stuff: *stuff}
}

func (r *HSomethingRecognizer) makeHEntry(t *Tag, stuff *[]Stuff) Stuff {
	link, _ := PopStrict[*Link](stuff, "u-url")
	nameProp, _ := PopStrict[*Property](stuff, "p-name")
	summaryProp, _ := PopStrict[*Property](stuff, "p-summary")
	authorCard, _ := PopBest[*HCard](stuff, "p-author")
	authorProp, _ := PopStrict[*Property](stuff, "p-author")

	entry := &HEntry{Classes: t.Classes}
	entry.Role, _ = t.Get("role")
	if authorCard != nil {
		entry.Author = authorCard
	} else if authorProp != nil {
		entry.Author = &HCard{Name: authorProp.Value}
	}
	if link != nil {
		entry.HRef = link.HRef
		entry.Name = link.Title
		entry.Summary = link.Text
	}
	if nameProp != nil {
		entry.Name = nameProp.Value
	}
	if summaryProp != nil {
		entry.Summary = summaryProp.Value
	}
	for _, x := range *stuff {
		switch v := x.(type) {
		case *Img:
			entry.Images = append(entry.Images, v)
		case *Link:
			if v.Rel.Intersects(relsForEntryLinks) {
				entry.Links = append(entry.Links, v)
			}
		}
	}
	return entry
}

func (r *HSomethingRecognizer) makeHCard(classes []string, stuff *[]Stuff) Stuff {
	link, _ := PopBest[*Link](stuff, "u-url")
	photo, _ := PopBest[*Img](stuff, "u-photo")
	nameProp, _ := PopStrict[*Property](stuff, "p-name")
	authorProp, _ := PopStrict[*Property](stuff, "p-author")

	card := &HCard{URL: link, Photo: photo, Classes: classes}
	prop := nameProp
	if prop == nil {
		prop = authorProp
	}
	switch {
	case prop != nil:
		if prop.Original != "" && prop.Original != prop.Value {
			// The outer element was an abbr giving a longer version of
			// the name.
			card.ShortName = normalizeWhitespace(prop.Original)
		}
		card.Name = prop.Value
	case link != nil:
		card.Name = link.Text
		if card.Name == "" {
			card.Name = link.Title
		}
	}
	card.Name = normalizeWhitespace(card.Name)
	return card
}

func (r *HSomethingRecognizer) makeHCite(classes []string, stuff *[]Stuff) Stuff {
	link, ok := PopStrict[*Link](stuff, "h-cite")
	if !ok {
		link, ok = PopBest[*Link](stuff, "u-url")
	}
	if !ok {
		// A citation without any link to hang it on is malformed input;
		// fall back to the generic entity rather than drop what we have.
		return &HSomething{HClass: "h-cite", Classes: classes, Stuff: *stuff}
	}
	if !hasClass(link.Classes, "h-cite") {
		link.Classes = append(link.Classes, "h-cite")
	}

	card, _ := PopBest[*HCard](stuff, "p-author")
	authorProp, _ := PopStrict[*Property](stuff, "p-author")
	if card != nil {
		link.Author = card
	} else if authorProp != nil {
		link.Author = &HCard{Name: authorProp.Value}
	}

	if nameProp, found := PopStrict[*Property](stuff, "p-name"); found {
		link.Title = nameProp.Value
	} else if link.Text != "" {
		link.Title = link.Text
	}
	if link.Text == link.Title {
		link.Text = ""
	}

	if pub, found := PopStrict[*Property](stuff, "dt-published"); found {
		link.Published = pub.Time
	}

	kept := link.Classes[:0:0]
	for _, c := range link.Classes {
		if !hciteConsumed.Has(c) {
			kept = append(kept, c)
		}
	}
	link.Classes = kept
	return link
}
