package models

import "time"

// Target is the latest known state of a dataset or of the datastore itself.
type Target struct {
	Name          string    `json:"name" bson:"name"`
	Status        JobStatus `json:"status" bson:"status"`
	Action        []string  `json:"action" bson:"action"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt" bson:"lastUpdatedAt"`
	LastUpdatedBy UserInfo  `json:"lastUpdatedBy" bson:"lastUpdatedBy"`
}
