package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// RecoveryRequest is the body of POST /recoveries. Only itemId is interpreted; the rest
// is copied into the record.
type RecoveryRequest struct {
	ItemID            string `json:"itemId"`
	Title             any    `json:"title"`
	RecoveredLocation any    `json:"recoveredLocation"`
	RecoveryDate      any    `json:"recoveryDate"`
	RecoveredBy       any    `json:"recoveredBy"`
}

type Recovery struct {
	ID                bson.ObjectID `json:"_id"               bson:"_id"`
	ItemID            string        `json:"itemId"            bson:"itemId"`
	Title             any           `json:"title"             bson:"title"`
	RecoveredLocation any           `json:"recoveredLocation" bson:"recoveredLocation"`
	RecoveryDate      *time.Time    `json:"recoveryDate"      bson:"recoveryDate"`
	RecoveredBy       any           `json:"recoveredBy"       bson:"recoveredBy"`
	RecoveredAt       time.Time     `json:"recoveredAt"       bson:"recoveredAt"`
}

// NewRecovery builds the record stored for req, stamped with now.
func NewRecovery(req RecoveryRequest, now time.Time) *Recovery {
	return &Recovery{
		ID:                bson.NewObjectID(),
		ItemID:            req.ItemID,
		Title:             req.Title,
		RecoveredLocation: req.RecoveredLocation,
		RecoveryDate:      ParseRecoveryDate(req.RecoveryDate),
		RecoveredBy:       req.RecoveredBy,
		RecoveredAt:       now.UTC(),
	}
}

// Document returns the record as a loosely typed document, the shape list queries return.
func (r *Recovery) Document() bson.M {
	var date any
	if r.RecoveryDate != nil {
		date = *r.RecoveryDate
	}
	return bson.M{
		"_id":               r.ID,
		"itemId":            r.ItemID,
		"title":             r.Title,
		"recoveredLocation": r.RecoveredLocation,
		"recoveryDate":      date,
		"recoveredBy":       r.RecoveredBy,
		"recoveredAt":       r.RecoveredAt,
	}
}

var recoveryDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseRecoveryDate accepts the date formats browsers send (ISO strings or epoch
// milliseconds). Anything else yields nil.
func ParseRecoveryDate(v any) *time.Time {
	switch t := v.(type) {
	case string:
		for _, layout := range recoveryDateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				parsed = parsed.UTC()
				return &parsed
			}
		}
	case float64:
		parsed := time.UnixMilli(int64(t)).UTC()
		return &parsed
	}
	return nil
}
