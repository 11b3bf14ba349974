package domain

// About is the singleton "about us" section.
type About struct {
	Meta           `bson:",inline"`
	Text           string `json:"text,omitempty" bson:"text,omitempty"`
	YoutubeLink    string `json:"youtubeLink,omitempty" bson:"youtubeLink,omitempty"`
	MediaReference `bson:",inline"`
}
