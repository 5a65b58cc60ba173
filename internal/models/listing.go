package models

import (
	"log"
	"time"
)

// Platform is the job board a listing was scraped from
type Platform string

const (
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformIndeed    Platform = "Indeed"
	PlatformGlassdoor Platform = "Glassdoor"
)

// Language of a listing, classified from title+company+location
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageSpanish Language = "Spanish"
	LanguageFrench  Language = "French"
	LanguageUnknown Language = "Unknown"
)

// Listing is one normalized job posting. Title, Company, Location, URL,
// Language and Platform are always set after construction; the rest depend
// on what the page exposed (a brief listing carries no description).
type Listing struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	URL         string     `json:"url"`
	Language    Language   `json:"language"`
	Platform    Platform   `json:"platform"`
	MinPay      *float64   `json:"min_pay,omitempty"`
	MaxPay      *float64   `json:"max_pay,omitempty"`
	MinYoe      *int       `json:"min_yoe,omitempty"`
	MaxYoe      *int       `json:"max_yoe,omitempty"`
	Description *string    `json:"description,omitempty"`
	PostTime    *time.Time `json:"post_time,omitempty"`
}

// HasDescription reports whether this is a full listing
func (l *Listing) HasDescription() bool {
	return l.Description != nil && *l.Description != ""
}

// Print logs the listing the way the scrape loop reports progress
func (l *Listing) Print() {
	log.Printf("    💼 %s - %s (%s)", l.Title, l.Company, l.Location)
	if l.MinPay != nil || l.MaxPay != nil {
		log.Printf("       💰 min: %v  max: %v", deref(l.MinPay), deref(l.MaxPay))
	}
}

func deref(f *float64) any {
	if f == nil {
		return "?"
	}
	return *f
}
