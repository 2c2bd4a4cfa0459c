package model

import "time"

// Organization is a node of the organization tree that groups assessments
type Organization struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	ParentID  string    `json:"parentId,omitempty" bson:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
