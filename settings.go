package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

type cameraSettings struct {
	FOV  float64 `yaml:"fov"`
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

type flightSettings struct {
	Standoff       float64       `yaml:"standoff"`
	Duration       time.Duration `yaml:"duration"`
	RotateDuration time.Duration `yaml:"rotate_duration"`
}

type nodeSettings struct {
	// MaxDegree is the dependent count drawn with the largest node size.
	MaxDegree float64 `yaml:"max_degree"`
	Color     uint32  `yaml:"color"`
}

type linkSettings struct {
	Visible bool `yaml:"visible"`
}

type dataSettings struct {
	Labels    string `yaml:"labels"`
	Positions string `yaml:"positions"`
	Links     string `yaml:"links"`
}

type settings struct {
	Camera cameraSettings `yaml:"camera"`
	Flight flightSettings `yaml:"flight"`
	Nodes  nodeSettings   `yaml:"nodes"`
	Links  linkSettings   `yaml:"links"`
	Data   dataSettings   `yaml:"data"`
}

func defaultSettings() settings {
	return settings{
		Camera: cameraSettings{
			FOV:  defaultFOV,
			Near: defaultNear,
			Far:  defaultFar,
		},
		Flight: flightSettings{
			Standoff:       defaultStandoff,
			Duration:       defaultFlyDuration,
			RotateDuration: defaultRotateDuration,
		},
		Nodes: nodeSettings{
			MaxDegree: defaultMaxDegree,
			Color:     defaultNodeColor,
		},
		Links: linkSettings{
			Visible: true,
		},
		Data: dataSettings{
			Labels:    "data/labels.json",
			Positions: "data/positions.bin",
			Links:     "data/links.bin",
		},
	}
}

// parseSettings overlays YAML on the defaults. Unknown keys are errors.
func parseSettings(b []byte) (settings, error) {
	s := defaultSettings()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return settings{}, fmt.Errorf("parsing settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func (s *settings) validate() error {
	switch {
	case s.Camera.FOV <= 0 || s.Camera.FOV >= 180:
		return fmt.Errorf("camera.fov must be in (0, 180), got %g", s.Camera.FOV)
	case s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near:
		return fmt.Errorf("camera.near and camera.far must satisfy 0 < near < far, got %g, %g", s.Camera.Near, s.Camera.Far)
	case s.Flight.Standoff <= 0:
		return fmt.Errorf("flight.standoff must be positive, got %g", s.Flight.Standoff)
	case s.Flight.Duration <= 0 || s.Flight.RotateDuration <= 0:
		return errors.New("flight durations must be positive")
	case s.Nodes.MaxDegree <= 0:
		return fmt.Errorf("nodes.max_degree must be positive, got %g", s.Nodes.MaxDegree)
	case s.Nodes.Color > 0xffffff:
		return fmt.Errorf("nodes.color must be 0xRRGGBB, got %#x", s.Nodes.Color)
	}
	return nil
}
