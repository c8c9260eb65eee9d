package domain

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// StatusOK is the only value the liveness probe reports.
const StatusOK = "ok"

// Status is the liveness payload: {"status": "ok"}.
type Status struct {
	Status string
}

// NewStatusOK builds a fresh OK payload.
func NewStatusOK() Status {
	return Status{Status: StatusOK}
}

// OK reports whether s carries StatusOK.
func (s Status) OK() bool {
	return s.Status == StatusOK
}

// Validate requires a status that is not blank once whitespace is trimmed.
func (s Status) Validate() error {
	if strings.TrimSpace(s.Status) == "" {
		return ErrInvalidStatus
	}
	return nil
}

// Encode writes s as a JSON object.
func (s Status) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("status")
	e.Str(s.Status)
	e.ObjEnd()
}

// Decode reads a JSON object into s. Unknown fields are skipped.
func (s *Status) Decode(d *jx.Decoder) error {
	if s == nil {
		return errors.New("invalid: unable to decode Status to nil")
	}
	if err := d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		switch string(k) {
		case "status":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "decode field \"status\"")
			}
			s.Status = v
		default:
			return d.Skip()
		}
		return nil
	}); err != nil {
		return errors.Wrap(err, "decode Status")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Status) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	s.Encode(&e)
	return e.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Status) UnmarshalJSON(data []byte) error {
	return s.Decode(jx.DecodeBytes(data))
}
