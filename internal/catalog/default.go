package catalog

import "goonj/internal/domain"

// Default returns the festival catalog. Prices are whole rupees.
func Default() *Catalog {
	return New(
		[]domain.Category{domain.CategoryTechnical, domain.CategoryCultural, domain.CategoryGaming},
		[]domain.EventOffering{
			domain.NewEventOffering("tech1", "Code Wars", 200, domain.CategoryTechnical,
				"Competitive programming contest. Solve algorithmic problems against the clock."),
			domain.NewEventOffering("tech2", "Hackathon", 500, domain.CategoryTechnical,
				"24-hour build sprint for teams of up to four."),
			domain.NewEventOffering("tech3", "Robo Race", 300, domain.CategoryTechnical,
				"Race a hand-built robot through an obstacle track."),
			domain.NewEventOffering("tech4", "Web Weaver", 150, domain.CategoryTechnical,
				"Design and ship a website on a theme revealed at the start."),
			domain.NewEventOffering("tech5", "Tech Quiz", 100, domain.CategoryTechnical,
				"Three rounds of questions on computing history and current tech."),
			domain.NewEventOffering("cult1", "Battle of Bands", 400, domain.CategoryCultural,
				"Live band competition judged on originality and stage presence."),
			domain.NewEventOffering("cult2", "Nukkad Natak", 250, domain.CategoryCultural,
				"Street play performed in the open courtyard."),
			domain.NewEventOffering("cult3", "Solo Dance", 150, domain.CategoryCultural,
				"Any dance form, three to five minutes."),
			domain.NewEventOffering("cult4", "Open Mic", 100, domain.CategoryCultural,
				"Poetry, stand-up or storytelling."),
			domain.NewEventOffering("game1", "Valorant", 300, domain.CategoryGaming,
				"5v5 tournament, single elimination."),
			domain.NewEventOffering("game2", "BGMI", 250, domain.CategoryGaming,
				"Squad battle royale across three maps."),
			domain.NewEventOffering("game3", "FIFA", 150, domain.CategoryGaming,
				"1v1 knockout on console."),
		},
	)
}
