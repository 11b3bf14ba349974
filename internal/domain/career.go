package domain

// Career is an open position. Careers carry no image.
type Career struct {
	Meta        `bson:",inline"`
	Title       string `json:"title" bson:"title"`
	Text        string `json:"text" bson:"text"`
	Description string `json:"description" bson:"description"`
}
