package domain

// ContactSubmission is a write-once message sent through the contact form.
type ContactSubmission struct {
	Meta    `bson:",inline"`
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Message string `json:"message" bson:"message"`
}
