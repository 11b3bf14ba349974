package dto

import (
	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/media"
	"github.com/spec-kit/content-service/internal/service"
)

// LoginRequest payload.
type LoginRequest struct {
	Password string `json:"password" form:"password"`
}

// TokenResponse carries an access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ContactResponse acknowledges a contact submission.
type ContactResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ProtectedResponse answers the admin token check.
type ProtectedResponse struct {
	Message string `json:"message"`
	AdminID string `json:"adminId"`
}

// TeamMemberRequest accepts nested socialLinks in JSON and flat link fields
// in forms.
type TeamMemberRequest struct {
	Name        string             `json:"name" form:"name"`
	Position    string             `json:"position" form:"position"`
	ImageURL    string             `json:"imageUrl" form:"imageUrl"`
	PhotoURL    string             `json:"photoUrl" form:"photoUrl"`
	SocialLinks domain.SocialLinks `json:"socialLinks" form:"-"`
	Facebook    string             `json:"facebook" form:"facebook"`
	Instagram   string             `json:"instagram" form:"instagram"`
	LinkedIn    string             `json:"linkedin" form:"linkedin"`
	WhatsApp    string             `json:"whatsapp" form:"whatsapp"`
}

// Input converts the request into service input.
func (r TeamMemberRequest) Input(file *media.File) service.TeamMemberInput {
	return service.TeamMemberInput{
		Name:     r.Name,
		Position: r.Position,
		SocialLinks: domain.SocialLinks{
			Facebook:  pick(r.SocialLinks.Facebook, r.Facebook),
			Instagram: pick(r.SocialLinks.Instagram, r.Instagram),
			LinkedIn:  pick(r.SocialLinks.LinkedIn, r.LinkedIn),
			WhatsApp:  pick(r.SocialLinks.WhatsApp, r.WhatsApp),
		},
		Image: media.Input{URL: pick(r.ImageURL, r.PhotoURL), File: file},
	}
}

// ProjectRequest payload.
type ProjectRequest struct {
	Title       string `json:"title" form:"title"`
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
}

func (r ProjectRequest) Input(file *media.File) service.ProjectInput {
	return service.ProjectInput{
		Title:       r.Title,
		Category:    r.Category,
		Description: r.Description,
		Image:       media.Input{URL: r.ImageURL, File: file},
	}
}

// OfferingRequest payload.
type OfferingRequest struct {
	Title       string `json:"title" form:"title"`
	Text        string `json:"text" form:"text"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
}

func (r OfferingRequest) Input(file *media.File) service.OfferingInput {
	return service.OfferingInput{
		Title:       r.Title,
		Text:        r.Text,
		Description: r.Description,
		Image:       media.Input{URL: r.ImageURL, File: file},
	}
}

// CareerRequest payload.
type CareerRequest struct {
	Title       string `json:"title" form:"title"`
	Text        string `json:"text" form:"text"`
	Description string `json:"description" form:"description"`
}

func (r CareerRequest) Input() service.CareerInput {
	return service.CareerInput{Title: r.Title, Text: r.Text, Description: r.Description}
}

// BlogPostRequest payload.
type BlogPostRequest struct {
	Title       string `json:"title" form:"title"`
	Category    string `json:"category" form:"category"`
	Date        string `json:"date" form:"date"`
	Description string `json:"description" form:"description"`
	YoutubeLink string `json:"youtubeLink" form:"youtubeLink"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
}

func (r BlogPostRequest) Input(file *media.File) service.BlogPostInput {
	return service.BlogPostInput{
		Title:       r.Title,
		Category:    r.Category,
		Date:        r.Date,
		Description: r.Description,
		YoutubeLink: r.YoutubeLink,
		Image:       media.Input{URL: r.ImageURL, File: file},
	}
}

// AboutRequest payload.
type AboutRequest struct {
	Text        string `json:"text" form:"text"`
	YoutubeLink string `json:"youtubeLink" form:"youtubeLink"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
}

func (r AboutRequest) Input(file *media.File) service.AboutInput {
	return service.AboutInput{
		Text:        r.Text,
		YoutubeLink: r.YoutubeLink,
		Image:       media.Input{URL: r.ImageURL, File: file},
	}
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
