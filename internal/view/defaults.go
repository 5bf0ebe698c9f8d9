package view

import "strings"

// PageDefaults holds the compiled-in fallback copy for a page template slot
// set. The renderer substitutes stored content field by field over these.
type PageDefaults struct {
	Slug            string
	Title           string
	HeroTitle       string
	HeroDescription string
	MainContent     string
	Message         string
}

var pageDefaults = map[string]PageDefaults{
	"about-us": {
		Title:           "About Us",
		HeroTitle:       "About the College",
		HeroDescription: "Shaping engineers with strong fundamentals and hands-on practice since 1998.",
		MainContent:     "<p>The college offers undergraduate and postgraduate programmes across eight engineering departments, with a focus on industry-ready skills and research exposure.</p>",
	},
	"placements": {
		Title:           "Placements",
		HeroTitle:       "Training and Placements",
		HeroDescription: "Dedicated placement cell with year-round industry engagement.",
		MainContent:     "<p>Our placement cell coordinates campus drives, internships and soft-skill training for all final-year students.</p>",
	},
	"examinations": {
		Title:           "Examinations",
		HeroTitle:       "Examination Cell",
		HeroDescription: "Schedules, results and revaluation notifications.",
		MainContent:     "<p>The examination cell publishes timetables and results for all semesters on this page.</p>",
	},
}

// DefaultsFor returns the fallback copy for a slug. Slugs without curated
// defaults get a generic set derived from the slug itself.
func DefaultsFor(slug string) PageDefaults {
	if d, ok := pageDefaults[slug]; ok {
		d.Slug = slug
		return d
	}

	title := titleFromSlug(slug)
	return PageDefaults{
		Slug:            slug,
		Title:           title,
		HeroTitle:       title,
		HeroDescription: "Engineering college information page.",
		MainContent:     "<p>Content for this page is being prepared.</p>",
	}
}

func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" {
		return "Information"
	}
	return title
}
