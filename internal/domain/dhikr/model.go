package dhikr

// Categories mirror the seeded dhikr tables: morning, evening and night
// adhkar plus a general bucket.
const (
	CategoryMorning = 1
	CategoryEvening = 2
	CategoryNight   = 3
	CategoryGeneral = 4
)

// Dhikr is one remembrance entry with its translation and provenance.
type Dhikr struct {
	ID         int64  `json:"dhikr_id"`
	CategoryID int    `json:"category_id"`
	TextAr     string `json:"text_ar"`
	TextEn     string `json:"text_en,omitempty"`
	BenefitsAr string `json:"benefits_ar,omitempty"`
	BenefitsEn string `json:"benefits_en,omitempty"`
	Reference  string `json:"reference,omitempty"`
}
