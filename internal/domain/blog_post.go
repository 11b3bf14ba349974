package domain

// BlogPost is a dated article. Date is kept as the editor supplied it.
type BlogPost struct {
	Meta           `bson:",inline"`
	Title          string `json:"title" bson:"title"`
	Category       string `json:"category" bson:"category"`
	Date           string `json:"date" bson:"date"`
	Description    string `json:"description" bson:"description"`
	YoutubeLink    string `json:"youtubeLink,omitempty" bson:"youtubeLink,omitempty"`
	MediaReference `bson:",inline"`
}

// BlogPage is one page of blog posts, newest first.
type BlogPage struct {
	Items       []BlogPost `json:"items"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}
