package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Layouts of timestamps stored as strings by earlier writers of the document
// store. A fractional second is accepted by time.Parse without being named.
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// bsonTime decodes either a BSON datetime or an ISO-8601 string. Strings
// without an offset are read as UTC.
type bsonTime time.Time

func (t *bsonTime) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: typ, Value: data}
	switch typ {
	case bsontype.Null, bsontype.Undefined:
		*t = bsonTime{}
		return nil
	case bsontype.DateTime:
		ms, ok := raw.DateTimeOK()
		if !ok {
			return errors.New("malformed datetime")
		}
		*t = bsonTime(time.UnixMilli(ms).UTC())
		return nil
	case bsontype.String:
		parsed, err := parseLegacyTime(raw.StringValue())
		if err != nil {
			return err
		}
		*t = bsonTime(parsed)
		return nil
	}
	return fmt.Errorf("cannot decode %s into a timestamp", typ)
}

func parseLegacyTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, layout := range legacyTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

type jobFields Job

func (j *Job) UnmarshalBSON(data []byte) error {
	var doc struct {
		Fields    jobFields `bson:",inline"`
		CreatedAt bsonTime  `bson:"createdAt"`
	}
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*j = Job(doc.Fields)
	j.CreatedAt = time.Time(doc.CreatedAt)
	return nil
}

type targetFields Target

func (t *Target) UnmarshalBSON(data []byte) error {
	var doc struct {
		Fields        targetFields `bson:",inline"`
		LastUpdatedAt bsonTime     `bson:"lastUpdatedAt"`
	}
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*t = Target(doc.Fields)
	t.LastUpdatedAt = time.Time(doc.LastUpdatedAt)
	return nil
}

type maintenanceFields MaintenanceStatus

func (m *MaintenanceStatus) UnmarshalBSON(data []byte) error {
	var doc struct {
		Fields    maintenanceFields `bson:",inline"`
		Timestamp bsonTime          `bson:"timestamp"`
	}
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*m = MaintenanceStatus(doc.Fields)
	m.Timestamp = time.Time(doc.Timestamp)
	return nil
}
