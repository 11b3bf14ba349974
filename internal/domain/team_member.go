package domain

// SocialLinks lists a team member's public profiles.
type SocialLinks struct {
	Facebook  string `json:"facebook" bson:"facebook"`
	Instagram string `json:"instagram" bson:"instagram"`
	LinkedIn  string `json:"linkedin" bson:"linkedin"`
	WhatsApp  string `json:"whatsapp" bson:"whatsapp"`
}

// TeamMember is a person shown on the team page.
type TeamMember struct {
	Meta           `bson:",inline"`
	Name           string      `json:"name" bson:"name"`
	Position       string      `json:"position" bson:"position"`
	SocialLinks    SocialLinks `json:"socialLinks" bson:"socialLinks"`
	MediaReference `bson:",inline"`
}
