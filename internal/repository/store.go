package repository

import (
	"database/sql"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/spec-kit/content-service/internal/domain"
)

// Collection names shared by every backend.
const (
	CollectionAbout    = "about"
	CollectionTeam     = "team_members"
	CollectionProjects = "projects"
	CollectionServices = "services"
	CollectionCareers  = "careers"
	CollectionBlog     = "blog_posts"
	CollectionContacts = "contact_submissions"
)

// Store groups the collections used by the services.
type Store struct {
	About    Collection[domain.About]
	Team     Collection[domain.TeamMember]
	Projects Collection[domain.Project]
	Services Collection[domain.Offering]
	Careers  Collection[domain.Career]
	Blog     Collection[domain.BlogPost]
	Contacts Collection[domain.ContactSubmission]
}

// NewMongoStore builds a Store on a MongoDB database.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		About:    NewMongoCollection[domain.About](db, CollectionAbout),
		Team:     NewMongoCollection[domain.TeamMember](db, CollectionTeam),
		Projects: NewMongoCollection[domain.Project](db, CollectionProjects),
		Services: NewMongoCollection[domain.Offering](db, CollectionServices),
		Careers:  NewMongoCollection[domain.Career](db, CollectionCareers),
		Blog:     NewMongoCollection[domain.BlogPost](db, CollectionBlog),
		Contacts: NewMongoCollection[domain.ContactSubmission](db, CollectionContacts),
	}
}

// NewPostgresStore builds a Store on the PostgreSQL documents table.
func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		About:    NewPostgresCollection[domain.About](db, CollectionAbout),
		Team:     NewPostgresCollection[domain.TeamMember](db, CollectionTeam),
		Projects: NewPostgresCollection[domain.Project](db, CollectionProjects),
		Services: NewPostgresCollection[domain.Offering](db, CollectionServices),
		Careers:  NewPostgresCollection[domain.Career](db, CollectionCareers),
		Blog:     NewPostgresCollection[domain.BlogPost](db, CollectionBlog),
		Contacts: NewPostgresCollection[domain.ContactSubmission](db, CollectionContacts),
	}
}

// NewMemoryStore builds a Store kept in process memory.
func NewMemoryStore() *Store {
	return &Store{
		About:    NewMemoryCollection[domain.About](),
		Team:     NewMemoryCollection[domain.TeamMember](),
		Projects: NewMemoryCollection[domain.Project](),
		Services: NewMemoryCollection[domain.Offering](),
		Careers:  NewMemoryCollection[domain.Career](),
		Blog:     NewMemoryCollection[domain.BlogPost](),
		Contacts: NewMemoryCollection[domain.ContactSubmission](),
	}
}
