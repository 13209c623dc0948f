package models

import "time"

const DefaultMaintenanceMessage = "Initial status inserted by job service at startup."

type MaintenanceStatus struct {
	Msg       string    `json:"msg" bson:"msg"`
	Paused    bool      `json:"paused" bson:"paused"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
