package models

import "time"

// ContactLink is a single contact line on the CV header (email, website, ...).
type ContactLink struct {
	Label string `json:"label" bson:"label"`
	Value string `json:"value" bson:"value"`
	Href  string `json:"href,omitempty" bson:"href,omitempty"`
}

// CVEntry is one dated item inside a section (a degree, a project, a role).
type CVEntry struct {
	Title    string   `json:"title"              bson:"title"`
	Subtitle string   `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	Location string   `json:"location,omitempty" bson:"location,omitempty"`
	Period   string   `json:"period,omitempty"   bson:"period,omitempty"`
	Bullets  []string `json:"bullets,omitempty"  bson:"bullets,omitempty"`
}

// CVSection is an ordered block of the CV (Education, Research Experience, ...).
type CVSection struct {
	Title   string    `json:"title"   bson:"title"`
	Entries []CVEntry `json:"entries" bson:"entries"`
}

// CV is the single profile document stored in MongoDB.
type CV struct {
	Name         string        `json:"name"      bson:"name"`
	Contacts     []ContactLink `json:"contacts"  bson:"contacts"`
	Sections     []CVSection   `json:"sections"  bson:"sections"`
	PDFObjectKey string        `json:"-"         bson:"pdf_object_key,omitempty"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updated_at"`
}
