package graph

// IdeaNode anchors one developed idea in the step graph.
type IdeaNode struct {
	ID      int64  `json:"id"`
	Concept string `json:"concept"`
	Domain  string `json:"domain"`
}

// StepNode is one next step attached to an idea.
type StepNode struct {
	IdeaID int64  `json:"ideaId"`
	Label  string `json:"label"`
}

// DependencyEdge records that From must happen before To within an idea.
type DependencyEdge struct {
	IdeaID int64  `json:"ideaId"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// StepChain is an ordered dependency path between steps of one idea.
type StepChain struct {
	Nodes []string `json:"nodes"`
	Depth int      `json:"depth"`
}

// Stats summarizes a step graph.
type Stats struct {
	IdeaCount int `json:"ideaCount"`
	StepCount int `json:"stepCount"`
	EdgeCount int `json:"edgeCount"`
}
