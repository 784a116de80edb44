package annotation

import (
	"encoding/json"
	"fmt"
)

// envelope is the persisted JSON shape of one annotation. The data field is
// decoded according to the type tag.
type envelope struct {
	ID          string          `json:"id"`
	Type        Type            `json:"type"`
	PageNumber  int             `json:"pageNumber"`
	DocumentKey string          `json:"documentKey"`
	Metadata    Metadata        `json:"metadata"`
	Data        json.RawMessage `json:"data"`
}

// MarshalAnnotation encodes a single annotation into its JSON envelope.
func MarshalAnnotation(a Annotation) ([]byte, error) {
	var data any

	switch v := a.(type) {
	case *Highlight:
		data = v.Data
	case *Drawing:
		data = v.Data
	case *Stamp:
		data = v.Data
	case *Text:
		data = v.Data
	case *NoteAnnotation:
		data = v.Data
	default:
		return nil, fmt.Errorf("unhandled annotation variant %T", a)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s data: %w", a.Type(), err)
	}

	c := a.Base()
	return json.Marshal(envelope{
		ID:          c.ID,
		Type:        a.Type(),
		PageNumber:  c.PageNumber,
		DocumentKey: c.DocumentKey,
		Metadata:    c.Metadata,
		Data:        raw,
	})
}

// UnmarshalAnnotation decodes a single annotation envelope. An unknown type
// tag is an error: new variants must be handled everywhere before they can
// round-trip through storage.
func UnmarshalAnnotation(b []byte) (Annotation, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("failed to decode annotation envelope: %w", err)
	}

	common := Common{
		ID:          env.ID,
		PageNumber:  env.PageNumber,
		DocumentKey: env.DocumentKey,
		Metadata:    env.Metadata,
	}

	switch env.Type {
	case TypeHighlight:
		a := &Highlight{Common: common}
		if err := json.Unmarshal(env.Data, &a.Data); err != nil {
			return nil, fmt.Errorf("failed to decode highlight data: %w", err)
		}
		return a, nil
	case TypeDrawing:
		a := &Drawing{Common: common}
		if err := json.Unmarshal(env.Data, &a.Data); err != nil {
			return nil, fmt.Errorf("failed to decode drawing data: %w", err)
		}
		return a, nil
	case TypeStamp:
		a := &Stamp{Common: common}
		if err := json.Unmarshal(env.Data, &a.Data); err != nil {
			return nil, fmt.Errorf("failed to decode stamp data: %w", err)
		}
		return a, nil
	case TypeText:
		a := &Text{Common: common}
		if err := json.Unmarshal(env.Data, &a.Data); err != nil {
			return nil, fmt.Errorf("failed to decode text data: %w", err)
		}
		return a, nil
	case TypeNote:
		a := &NoteAnnotation{Common: common}
		if err := json.Unmarshal(env.Data, &a.Data); err != nil {
			return nil, fmt.Errorf("failed to decode note data: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown annotation type %q", env.Type)
	}
}

// MarshalAnnotations encodes a whole per-document collection as a JSON
// array. This is the blob format the store persists under a document key.
func MarshalAnnotations(annotations []Annotation) ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(annotations))
	for _, a := range annotations {
		raw, err := MarshalAnnotation(a)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return json.Marshal(raws)
}

// UnmarshalAnnotations decodes a whole per-document collection.
func UnmarshalAnnotations(b []byte) ([]Annotation, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode annotation collection: %w", err)
	}

	annotations := make([]Annotation, 0, len(raws))
	for i, raw := range raws {
		a, err := UnmarshalAnnotation(raw)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}
		annotations = append(annotations, a)
	}
	return annotations, nil
}
