package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const defaultNearestRange = 1000

type console struct {
	scene *sceneView
}

var errArgumentNumber = errors.New("invalid number of arguments")
var errInvalidCommand = errors.New("invalid command")
var errUnknownPackage = errors.New("unknown package")

type consoleCommand func(s *sceneView, args []string) ([][]float64, error)

var consoleCommands = map[string]consoleCommand{
	"fly": func(s *sceneView, args []string) ([][]float64, error) {
		if len(args) != 3 && len(args) != 4 {
			return nil, errArgumentNumber
		}
		v, err := parseFloats(args)
		if err != nil {
			return nil, err
		}
		standoff := s.standoff
		if len(v) == 4 {
			standoff = v[3]
		}
		s.pilot.FlyTo(mgl64.Vec3{v[0], v[1], v[2]}, standoff, nil, nil)
		return nil, nil
	},
	"focus": func(s *sceneView, args []string) ([][]float64, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		pos, ok := s.model.PackagePosition(args[0])
		if !ok {
			return nil, errUnknownPackage
		}
		s.FocusOnPackage(args[0])
		return [][]float64{{pos[0], pos[1], pos[2]}}, nil
	},
	"search": func(s *sceneView, args []string) ([][]float64, error) {
		s.Search(strings.Join(args, " "))
		return [][]float64{{float64(s.nodes.Len())}}, nil
	},
	"subgraph": func(s *sceneView, args []string) ([][]float64, error) {
		switch len(args) {
		case 0:
			s.Subgraph("")
		case 1:
			if _, ok := s.model.NodeByName(args[0]); !ok {
				return nil, errUnknownPackage
			}
			s.Subgraph(args[0])
		default:
			return nil, errArgumentNumber
		}
		return [][]float64{{float64(s.nodes.Len())}}, nil
	},
	"camera": func(s *sceneView, args []string) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		p, q := s.camera.position, s.camera.orientation
		return [][]float64{
			{p[0], p[1], p[2]},
			{q.V[0], q.V[1], q.V[2], q.W},
		}, nil
	},
	"nearest": func(s *sceneView, args []string) ([][]float64, error) {
		r := float64(defaultNearestRange)
		switch len(args) {
		case 0:
		case 1:
			v, err := parseFloats(args)
			if err != nil {
				return nil, err
			}
			r = v[0]
		default:
			return nil, errArgumentNumber
		}
		i, ok := s.nodes.nearest(toVec3(s.camera.position), float32(r))
		if !ok {
			return nil, nil
		}
		id, _ := s.nodes.nodeID(i)
		p := s.model.Position(id)
		return [][]float64{{float64(id), float64(p[0]), float64(p[1]), float64(p[2])}}, nil
	},
	"links": func(s *sceneView, args []string) ([][]float64, error) {
		switch len(args) {
		case 0:
		case 1:
			v, err := parseFloats(args)
			if err != nil {
				return nil, err
			}
			s.shouldShowLinks = v[0] != 0
			if s.model.Pattern() == "" {
				s.links.setLinksVisible(s.shouldShowLinks)
			}
		default:
			return nil, errArgumentNumber
		}
		return [][]float64{{boolToFloat(s.links.linksVisible())}}, nil
	},
	"size_norm": func(s *sceneView, args []string) ([][]float64, error) {
		switch len(args) {
		case 0:
		case 1:
			v, err := parseFloats(args)
			if err != nil {
				return nil, err
			}
			if v[0] <= 0 {
				return nil, errors.New("normalization must be positive")
			}
			s.maxDegree = v[0]
			s.adjustNodeSize(s.model)
		default:
			return nil, errArgumentNumber
		}
		return [][]float64{{s.maxDegree}}, nil
	},
}

func (c *console) Run(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	fn, ok := consoleCommands[args[0]]
	if !ok {
		return "", errInvalidCommand
	}
	res, err := fn(c.scene, args[1:])
	if err != nil {
		return "", err
	}
	var resStr []string
	for _, vv := range res {
		var resLine []string
		for _, v := range vv {
			resLine = append(resLine, strconv.FormatFloat(v, 'f', 3, 64))
		}
		resStr = append(resStr, strings.Join(resLine, " "))
	}
	return strings.Join(resStr, "\n"), nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
