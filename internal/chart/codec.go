package chart

import (
	"encoding/json"
	"fmt"
)

type envelope struct {
	Kind  Kind            `json:"kind"`
	Chart json.RawMessage `json:"chart"`
}

// Marshal encodes a chart together with its kind.
func Marshal(c Chart) ([]byte, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s chart: %w", c.Kind(), err)
	}
	return json.Marshal(envelope{Kind: c.Kind(), Chart: body})
}

// Unmarshal decodes a chart written by Marshal. Data written before kinds
// were recorded decodes as a rectangular chart.
func Unmarshal(data []byte) (Chart, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart envelope: %w", err)
	}

	var c Chart
	switch env.Kind {
	case KindRectangular, "":
		c = &Rectangular{}
	case KindQuadrant:
		c = &Quadrant{}
	case KindAlignment:
		c = &Alignment{}
	case KindSimplex:
		c = &Simplex{}
	case KindRadar:
		c = &Radar{}
	default:
		return nil, fmt.Errorf("unknown chart kind %q", env.Kind)
	}

	body := []byte(env.Chart)
	if len(body) == 0 {
		body = data
	}
	if err := json.Unmarshal(body, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s chart: %w", c.Kind(), err)
	}
	return c, nil
}
