package domain

import "time"

// Meta carries the identity and timestamps shared by every stored document.
type Meta struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// EntityMeta exposes the embedded metadata to generic repositories.
func (m *Meta) EntityMeta() *Meta {
	return m
}

// Entity is implemented by every document type through an embedded Meta.
type Entity interface {
	EntityMeta() *Meta
}
