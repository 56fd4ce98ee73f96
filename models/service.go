package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Service struct {
	ID    primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty" yaml:"-"`
	Name  string             `json:"name" bson:"name" yaml:"name"`
	Price float64            `json:"price" bson:"price" yaml:"price"`
	Slots []string           `json:"slots" bson:"slots" yaml:"slots"`
}

type ServiceName struct {
	ID   primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name string             `json:"name" bson:"name"`
}

// ServiceAvailability is a service with the slots still free on a given date.
type ServiceAvailability struct {
	Service   `bson:",inline"`
	Available []string `json:"available" bson:"available"`
}
