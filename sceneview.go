package main

// preview describes a package and its link counts.
type preview struct {
	Name         string
	Dependencies int
	Dependents   int
}

// nodeTooltip asks the page to show (or hide, if Name is empty) a tooltip
// at pointer coordinates.
type nodeTooltip struct {
	Name string
	X, Y int
}

// sceneView composes the views, camera navigation, picking and input, and
// exposes the operations the page calls.
type sceneView struct {
	model  *graphModel
	loop   *renderLoop
	camera *camera
	nodes  *nodeView
	links  *linkView
	pilot  *autoPilot
	hit    *hitTest
	input  *userInput

	// focusCanvas gives keyboard focus to the canvas.
	focusCanvas func()

	shouldShowLinks bool
	maxDegree       float64
	nodeColor       uint32
	standoff        float64

	onPreview  []func(preview)
	onTooltip  []func(nodeTooltip)
	onSteering []func(bool)
}

func newSceneView(model *graphModel, loop *renderLoop, u geometryUploader, cfg settings) *sceneView {
	c := loop.camera
	s := &sceneView{
		model:     model,
		loop:      loop,
		camera:    c,
		nodes:     newNodeView(u),
		links:     newLinkView(u, cfg.Links.Visible),
		pilot:     newAutoPilot(c, loop.tweens),
		hit:       newHitTest(),
		input:     newUserInput(c),
		maxDegree: cfg.Nodes.MaxDegree,
		nodeColor: cfg.Nodes.Color,
		standoff:  cfg.Flight.Standoff,
	}
	s.pilot.flyDuration = cfg.Flight.Duration
	s.pilot.rotateDuration = cfg.Flight.RotateDuration
	s.shouldShowLinks = s.links.linksVisible()
	loop.scene.nodes = s.nodes
	loop.scene.links = s.links

	s.hit.OnNodeOver(s.handleNodeHover)
	s.hit.OnNodeClick(s.handleNodeClick)
	s.hit.OnNodeDblClick(s.handleNodeDblClick)

	s.input.OnSteeringModeChanged(func(on bool) {
		s.hit.SetActive(!on)
		for _, fn := range s.onSteering {
			fn(on)
		}
	})
	s.input.OnManualControl(func() {
		if s.pilot.Flying() {
			s.pilot.Cancel()
		}
	})
	s.input.OnToggleLinks(func() {
		s.shouldShowLinks = s.links.toggleLinks()
	})

	loop.OnRender(s.hit.Update)
	loop.OnRender(s.input.Update)

	model.OnNodesReady(s.nodes.initialize)
	model.OnLinksReady(func(m *graphModel) {
		s.links.initialize(m)
		s.adjustNodeSize(m)
	})
	return s
}

func (s *sceneView) OnPreview(fn func(preview))         { s.onPreview = append(s.onPreview, fn) }
func (s *sceneView) OnNodeTooltip(fn func(nodeTooltip)) { s.onTooltip = append(s.onTooltip, fn) }
func (s *sceneView) OnSteeringModeChanged(fn func(bool)) {
	s.onSteering = append(s.onSteering, fn)
}

func (s *sceneView) Resize(width, height int) {
	s.loop.Resize(width, height)
	s.hit.SetViewport(width, height)
	s.input.SetViewport(width, height)
}

// Search filters the graph by pattern. Links are always hidden while a
// filter is applied; the user's link setting is restored when it is cleared.
func (s *sceneView) Search(pattern string) {
	s.model.Filter(pattern)
	s.nodes.initialize(s.model)
	s.links.initialize(s.model)
	if s.model.Pattern() != "" && s.shouldShowLinks {
		s.links.setLinksVisible(false)
	} else if s.model.Pattern() == "" {
		s.links.setLinksVisible(s.shouldShowLinks)
	}
	s.adjustNodeSize(s.model)
	s.hit.Reset()
}

// Subgraph narrows the view to the named package and its dependencies (all
// visible nodes when name is empty or unknown) and frames it.
func (s *sceneView) Subgraph(name string) {
	if name != "" {
		s.model.Subgraph(name)
	}
	s.nodes.initialize(s.model)
	s.adjustNodeSize(s.model)
	s.links.initialize(s.model)

	center, radius, ok := s.nodes.boundingSphere()
	s.hit.Reset()
	if !ok {
		return
	}
	s.pilot.FlyTo(center, s.camera.fitDistance(radius), nil, nil)
}

// Focus gives keyboard focus to the canvas after the current frame.
func (s *sceneView) Focus() {
	if s.focusCanvas == nil {
		return
	}
	s.loop.Defer(s.focusCanvas)
}

// FocusOnPackage flies to the named package and shows its preview on
// arrival. Unknown packages are ignored.
func (s *sceneView) FocusOnPackage(name string) {
	pos, ok := s.model.PackagePosition(name)
	if !ok {
		return
	}
	s.pilot.FlyTo(pos, s.standoff,
		func() {
			s.showPreview(name)
			s.hit.Resume()
		},
		s.hit.Resume,
	)
	// After FlyTo, which resumes picking of a superseded flight.
	s.hit.Postpone()
}

func (s *sceneView) adjustNodeSize(m *graphModel) {
	for _, id := range m.VisibleNodes() {
		size := nodeSize(m.Dependents(id), s.maxDegree)
		s.nodes.setNodeUI(id, s.nodeColor, size)
	}
	s.nodes.refresh()
}

func (s *sceneView) showPreview(name string) {
	if name == "" {
		return
	}
	id, ok := s.model.NodeByName(name)
	if !ok {
		return
	}
	p := preview{
		Name:         name,
		Dependencies: s.model.Dependencies(id),
		Dependents:   s.model.Dependents(id),
	}
	for _, fn := range s.onPreview {
		fn(p)
	}
}

func (s *sceneView) handleNodeHover(h nodeHit) {
	tt := nodeTooltip{
		Name: s.packageName(h.NodeIndex),
		X:    h.X,
		Y:    h.Y,
	}
	for _, fn := range s.onTooltip {
		fn(tt)
	}
}

func (s *sceneView) handleNodeClick(h nodeHit) {
	s.showPreview(s.packageName(h.NodeIndex))
}

func (s *sceneView) handleNodeDblClick(h nodeHit) {
	s.FocusOnPackage(s.packageName(h.NodeIndex))
}

func (s *sceneView) packageName(i int) string {
	id, ok := s.nodes.nodeID(i)
	if !ok {
		return ""
	}
	name, _ := s.model.Label(id)
	return name
}
