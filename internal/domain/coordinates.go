package domain

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// Immutable geographic coordinates (latitude, longitude).
// The planning service encodes coordinates as [lat, lon] JSON pairs.
type Coordinates struct {
	Lat float64
	Lon float64
}

func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lon})
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode coordinates: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode coordinates: expected [lat, lon], got %d values", len(pair))
	}

	c.Lat = pair[0]
	c.Lon = pair[1]
	return nil
}

// Point returns the orb representation (lon, lat order).
func (c Coordinates) Point() orb.Point { return orb.Point{c.Lon, c.Lat} }
