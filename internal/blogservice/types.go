package blogservice

import (
	"time"

	"github.com/clovermist/folio/internal/common"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Post struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title   string             `bson:"title" json:"title"`
	Excerpt string             `bson:"excerpt" json:"excerpt"`
	// Slug is the external identifier of the post, unique across the
	// collection.
	Slug      string    `bson:"slug" json:"slug"`
	Date      time.Time `bson:"date" json:"date"`
	Featured  bool      `bson:"featured" json:"featured"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type PostModel struct {
	coll *mongo.Collection
}

type BlogService struct {
	m *PostModel
	c *common.Cache
}
