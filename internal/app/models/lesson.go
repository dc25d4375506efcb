package models

import (
	"github.com/goccy/go-json"
)

const (
	lessonStartKey = "start"
	lessonEndKey   = "end"
)

// Lesson is a single scheduled lesson as published in schedule.json.
// Only Start and End are interpreted; every other field is kept verbatim in
// Attributes and written back unchanged.
type Lesson struct {
	Start      string
	End        string
	Attributes map[string]json.RawMessage
}

func (l *Lesson) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*l = Lesson{}
	for key, raw := range fields {
		switch key {
		case lessonStartKey, lessonEndKey:
			var value *string
			if err := json.Unmarshal(raw, &value); err != nil {
				// non-string times are carried through as attributes
				l.setAttribute(key, raw)
				continue
			}
			if value == nil {
				continue
			}
			if key == lessonStartKey {
				l.Start = *value
			} else {
				l.End = *value
			}
		default:
			l.setAttribute(key, raw)
		}
	}
	return nil
}

func (l Lesson) MarshalJSON() ([]byte, error) {
	fields := make(map[string]interface{}, len(l.Attributes)+2)
	for key, raw := range l.Attributes {
		fields[key] = raw
	}
	if _, ok := fields[lessonStartKey]; !ok {
		fields[lessonStartKey] = l.Start
	}
	if _, ok := fields[lessonEndKey]; !ok {
		fields[lessonEndKey] = l.End
	}
	return json.Marshal(fields)
}

// Attribute decodes a pass-through field into v. It reports false when the
// field is absent.
func (l Lesson) Attribute(key string, v interface{}) (bool, error) {
	raw, ok := l.Attributes[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

// Clone copies the attribute map so the copy can be handed out safely.
func (l Lesson) Clone() Lesson {
	out := Lesson{Start: l.Start, End: l.End}
	if l.Attributes != nil {
		out.Attributes = make(map[string]json.RawMessage, len(l.Attributes))
		for key, raw := range l.Attributes {
			out.Attributes[key] = append(json.RawMessage(nil), raw...)
		}
	}
	return out
}

func (l *Lesson) setAttribute(key string, raw json.RawMessage) {
	if l.Attributes == nil {
		l.Attributes = make(map[string]json.RawMessage)
	}
	l.Attributes[key] = append(json.RawMessage(nil), raw...)
}
