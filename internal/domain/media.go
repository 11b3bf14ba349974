package domain

// MediaReference points at an image attached to an entity. ExternalID is only
// set when the asset was uploaded through this service and can be deleted by it.
type MediaReference struct {
	URL        string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	ExternalID string `json:"imagePublicId,omitempty" bson:"imagePublicId,omitempty"`
}

// IsZero reports whether no image is attached.
func (r MediaReference) IsZero() bool {
	return r.URL == "" && r.ExternalID == ""
}

// Owned reports whether the asset lifecycle belongs to this service.
func (r MediaReference) Owned() bool {
	return r.ExternalID != ""
}
