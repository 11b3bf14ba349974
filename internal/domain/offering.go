package domain

// Offering is a service advertised by the business. The image is mandatory.
type Offering struct {
	Meta           `bson:",inline"`
	Title          string `json:"title" bson:"title"`
	Text           string `json:"text" bson:"text"`
	Description    string `json:"description" bson:"description"`
	MediaReference `bson:",inline"`
}
