package entity

import "encoding/json"

// Ref is a relation reference. The platform API is inconsistent about how it
// serializes relations: sometimes a bare id string, sometimes an embedded
// partial object like {"_id": "...", "name": "..."}. Ref normalizes both at
// decode time so callers compare ids, never raw payloads.
type Ref struct {
	ID   string
	Name string
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*r = Ref{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*r = Ref{ID: obj.ID, Name: obj.Name}
	return nil
}

// MarshalJSON always emits the bare id; the server resolves it.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

func (r Ref) IsZero() bool { return r.ID == "" }

// RefIDs collapses refs to their ids, dropping zero refs.
func RefIDs(refs []Ref) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		if !r.IsZero() {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
