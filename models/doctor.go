package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor is stored as sent by the admin. Fields outside the named ones are
// kept in Extra and written back at the top level of the document.
type Doctor struct {
	ID        primitive.ObjectID     `json:"_id,omitempty" bson:"_id,omitempty" yaml:"-"`
	Name      string                 `json:"name" bson:"name" yaml:"name" binding:"required"`
	Email     string                 `json:"email" bson:"email" yaml:"email" binding:"required,email"`
	Specialty string                 `json:"specialty" bson:"specialty" yaml:"specialty"`
	Image     string                 `json:"img,omitempty" bson:"img,omitempty" yaml:"img"`
	Extra     map[string]interface{} `json:"-" bson:",inline" yaml:",inline"`
}

var doctorFields = []string{"_id", "name", "email", "specialty", "img"}

func (d *Doctor) UnmarshalJSON(data []byte) error {
	type plain Doctor
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var extra map[string]interface{}
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	for _, f := range doctorFields {
		delete(extra, f)
	}
	if len(extra) == 0 {
		extra = nil
	}

	p.Extra = extra
	*d = Doctor(p)
	return nil
}

func (d Doctor) MarshalJSON() ([]byte, error) {
	type plain Doctor
	base, err := json.Marshal(plain(d))
	if err != nil || len(d.Extra) == 0 {
		return base, err
	}

	out := make(map[string]json.RawMessage, len(d.Extra)+len(doctorFields))
	for k, v := range d.Extra {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[k] = raw
	}
	// named fields win over an extra with the same key
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}
