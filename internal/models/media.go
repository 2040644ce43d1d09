package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FileTypeVideo = "video"
	FileTypeAudio = "audio"
)

const (
	CategoryMovie  = "movie"
	CategorySeries = "series"
	CategoryMusic  = "music"
)

type Media struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	FileType    string             `bson:"fileType" json:"fileType"`
	Genre       string             `bson:"genre,omitempty" json:"genre,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	FileID      string             `bson:"fileId" json:"fileId"`
	FileURL     string             `bson:"fileUrl" json:"fileUrl"`
	Views       int64              `bson:"views" json:"views"`
	Likes       int64              `bson:"likes" json:"likes"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidFileType(t string) bool {
	return t == FileTypeVideo || t == FileTypeAudio
}

func ValidCategory(c string) bool {
	return c == CategoryMovie || c == CategorySeries || c == CategoryMusic
}
