package dnd5e

import (
	"encoding/json"
	"fmt"
)

// AbilityScoreIndexes are the six ability score identifiers, in display order.
var AbilityScoreIndexes = []string{"str", "dex", "con", "int", "wis", "cha"}

// APIReference is the summary object the API uses for links and list results.
type APIReference struct {
	Index string `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`

	raw json.RawMessage
}

// APIReferenceList is the response shape of every list endpoint.
type APIReferenceList struct {
	Count   int            `json:"count"`
	Results []APIReference `json:"results"`
}

// AbilityScore describes one of the six abilities.
type AbilityScore struct {
	Index    string         `json:"index"`
	Name     string         `json:"name"`
	FullName string         `json:"full_name"`
	Desc     []string       `json:"desc"`
	Skills   []APIReference `json:"skills,omitempty"`
	URL      string         `json:"url"`

	raw json.RawMessage
}

// Background is a character origin template.
type Background struct {
	Index string `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`

	SkillProficiencies    []APIReference      `json:"skill_proficiencies,omitempty"`
	ToolProficiencies     []APIReference      `json:"tool_proficiencies,omitempty"`
	Languages             []APIReference      `json:"languages,omitempty"`
	Equipment             []EquipmentQuantity `json:"equipment,omitempty"`
	StartingProficiencies []APIReference      `json:"starting_proficiencies,omitempty"`
	StartingEquipment     []EquipmentQuantity `json:"starting_equipment,omitempty"`
	Feature               *BackgroundFeature  `json:"feature,omitempty"`

	// Choice structures vary too much between backgrounds to type usefully.
	LanguageOptions          json.RawMessage `json:"language_options,omitempty"`
	StartingEquipmentOptions json.RawMessage `json:"starting_equipment_options,omitempty"`
	PersonalityTraits        json.RawMessage `json:"personality_traits,omitempty"`
	Ideals                   json.RawMessage `json:"ideals,omitempty"`
	Bonds                    json.RawMessage `json:"bonds,omitempty"`
	Flaws                    json.RawMessage `json:"flaws,omitempty"`

	raw json.RawMessage
}

// EquipmentQuantity pairs an item reference with a count. Older payloads name
// the reference "item", current ones "equipment".
type EquipmentQuantity struct {
	Item      *APIReference `json:"item,omitempty"`
	Equipment *APIReference `json:"equipment,omitempty"`
	Quantity  int           `json:"quantity"`
}

// BackgroundFeature is the special feature a background grants.
type BackgroundFeature struct {
	Name string   `json:"name"`
	Desc []string `json:"desc"`
}

func (r *APIReference) UnmarshalJSON(data []byte) error {
	type alias APIReference
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = APIReference(a)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (a *AbilityScore) UnmarshalJSON(data []byte) error {
	type alias AbilityScore
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = AbilityScore(v)
	a.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (b *Background) UnmarshalJSON(data []byte) error {
	type alias Background
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = Background(v)
	b.raw = append(json.RawMessage(nil), data...)
	return nil
}

// ToMap returns the reference as a plain mapping, exactly as the API sent it.
func (r *APIReference) ToMap() (map[string]any, error) {
	return toMap(r.raw, r)
}

// ToMap returns the ability score as a plain mapping, exactly as the API sent it.
func (a *AbilityScore) ToMap() (map[string]any, error) {
	return toMap(a.raw, a)
}

// ToMap returns the background as a plain mapping, exactly as the API sent it.
func (b *Background) ToMap() (map[string]any, error) {
	return toMap(b.raw, b)
}

// toMap decodes the received payload, or the typed fields when the value
// was built in memory.
func toMap(raw json.RawMessage, v any) (map[string]any, error) {
	data := []byte(raw)
	if len(data) == 0 {
		var err error
		if data, err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("failed to encode model: %w", err)
		}
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to convert model to map: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
