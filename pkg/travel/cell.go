package travel

import "encoding/json"

// Cell is one entry of a price or duration matrix: either a known value or
// the unreachable marker. It marshals to a JSON number, or null when
// unreachable, matching the persisted matrix shape.
type Cell struct {
	Value float64
	Known bool
}

func KnownCell(value float64) Cell {
	return Cell{Value: value, Known: true}
}

func UnreachableCell() Cell {
	return Cell{}
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return []byte("null"), nil
	}

	return json.Marshal(c.Value)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Cell{}
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	*c = Cell{Value: value, Known: true}
	return nil
}
