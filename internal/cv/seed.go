package cv

import (
	"context"
	"fmt"
	"log"

	"github.com/commhendrix/academic-portfolio/internal/models"
)

// EnsureSeeded stores the default profile when the collection is empty.
// Idempotent; called once during process startup, same pattern as the
// admin account bootstrap.
func EnsureSeeded(ctx context.Context, cvs CVStore) error {
	existing, err := cvs.Get(ctx)
	if err != nil {
		return fmt.Errorf("look up cv: %w", err)
	}
	if existing != nil {
		return nil
	}
	if err := cvs.Replace(ctx, defaultCV()); err != nil {
		return fmt.Errorf("seed cv: %w", err)
	}
	log.Println("cv profile seeded")
	return nil
}

func defaultCV() *models.CV {
	return &models.CV{
		Name: "Kun Pang Hendrix",
		Contacts: []models.ContactLink{
			{Label: "location", Value: "Guangzhou, China"},
			{Label: "phone", Value: "(+86) 157 1324 2663"},
			{Label: "email", Value: "hendrixmathsmtk@outlook.com", Href: "mailto:hendrixmathsmtk@outlook.com"},
			{Label: "website", Value: "www.hendrixmathsmtk.com", Href: "http://www.hendrixmathsmtk.com"},
			{Label: "github", Value: "github.com/commHendrix", Href: "https://github.com/commHendrix"},
		},
		Sections: []models.CVSection{
			{
				Title: "Education",
				Entries: []models.CVEntry{
					{
						Title:    "Sun Yat-sen University",
						Subtitle: "B.Eng. in Information Engineering (Elite Class)",
						Location: "Guangzhou, China",
						Period:   "Sept. 2022 — Present",
						Bullets: []string{
							"Selected into the elite class from all freshmen in the university.",
							"GPA: 3.7/4.0. Notable coursework: Digital Signal Processing, Electromagnetic Fields & Waves, Automatic Control Principle, Radar Technology.",
							"Focus areas: antenna design, signal processing, communication systems, and embedded system development.",
						},
					},
				},
			},
			{
				Title: "Research Experience",
				Entries: []models.CVEntry{
					{
						Title:    "Research on RIS-aided Communication Systems",
						Subtitle: "Sun Yat-sen University",
						Period:   "Dec. 2024 — Present",
						Bullets: []string{
							"Optimizing the unit design of multi-layer Reconfigurable Intelligent Surfaces (RIS) in the Ka-Band.",
						},
					},
				},
			},
			{
				Title: "Technical Skills",
				Entries: []models.CVEntry{
					{
						Title: "Tools & Languages",
						Bullets: []string{
							"MATLAB, Python, C/C++ for signal processing and embedded development.",
							"HFSS and CST for antenna and RIS unit simulation.",
						},
					},
				},
			},
		},
	}
}
