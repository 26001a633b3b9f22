package model

import "go.mongodb.org/mongo-driver/v2/bson"

// Item is a lost/found report. Apart from _id, status, date and contact.email the
// document is whatever the client sent.
type Item = bson.M

const (
	ItemIDField      = "_id"
	ItemStatusField  = "status"
	ItemDateField    = "date"
	ItemContactEmail = "contact.email"
)

// SplitStatus separates the status transition from the remaining fields of an item
// update body. status is only reported when it carries a truthy value; _id is never
// part of the remaining fields since it cannot be rewritten.
func SplitStatus(body Item) (status any, rest Item, ok bool) {
	rest = make(Item, len(body))
	for k, v := range body {
		switch k {
		case ItemStatusField:
			status = v
		case ItemIDField:
		default:
			rest[k] = v
		}
	}
	return status, rest, truthy(status)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}
