package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Project struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty" yaml:"-"`
	Name         string             `json:"name" bson:"name" yaml:"name"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty" yaml:"description"`
	Image        string             `json:"image,omitempty" bson:"image,omitempty" yaml:"image"`
	Technologies []string           `json:"technologies,omitempty" bson:"technologies,omitempty" yaml:"technologies"`
	LiveURL      string             `json:"liveUrl,omitempty" bson:"liveUrl,omitempty" yaml:"liveUrl"`
	SourceURL    string             `json:"sourceUrl,omitempty" bson:"sourceUrl,omitempty" yaml:"sourceUrl"`
}
