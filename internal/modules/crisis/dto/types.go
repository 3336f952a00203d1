package dto

type HotlineOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Text        string `json:"text"`
	Available   string `json:"available"`
}

type LinkOutput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type DirectoryOutput struct {
	EmergencyNotice string          `json:"emergency_notice"`
	EmergencyNumber string          `json:"emergency_number"`
	Hotlines        []HotlineOutput `json:"hotlines"`
	Strategies      []string        `json:"strategies"`
	Links           []LinkOutput    `json:"links"`
}
