package templates

import "time"

// JobCard is a posting as shown in lists and on its detail page.
type JobCard struct {
	ID           string
	Title        string
	Salary       string
	WorkingHours string
	Description  string
	Posted       time.Time
}

// LocationCard is one location tile with its localized name and count.
type LocationCard struct {
	ID         int
	Name       string
	ImageURL   string
	Count      int
	CountLabel string
}

// LandingView is everything the landing page renders.
type LandingView struct {
	Jobs      []JobCard
	Locations []LocationCard
}

const summaryRunes = 160

var whyUsItems = []string{"whyUs.topCompanies", "whyUs.qualityPositions", "whyUs.careerGrowth"}

func summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryRunes {
		return text
	}
	return string(runes[:summaryRunes]) + "…"
}
