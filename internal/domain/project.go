package domain

// Project is a portfolio entry.
type Project struct {
	Meta           `bson:",inline"`
	Title          string `json:"title" bson:"title"`
	Category       string `json:"category" bson:"category"`
	Description    string `json:"description" bson:"description"`
	MediaReference `bson:",inline"`
}
