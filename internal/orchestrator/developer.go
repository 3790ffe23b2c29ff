package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dusk-indust/ideate/internal/agent"
	"github.com/dusk-indust/ideate/internal/domain"
	"github.com/dusk-indust/ideate/internal/graph"
	"github.com/dusk-indust/ideate/internal/render"
)

// IdeaStore is the persistence surface the Developer needs.
type IdeaStore interface {
	SaveIdea(ctx context.Context, idea *domain.Idea) (int64, error)
	SaveDiagram(ctx context.Context, ideaID int64, imageData, note string) error
}

// initialStage is the development stage assigned to fresh ideas.
const initialStage = "initial"

// Developer is the top-level entry point: it turns a raw concept into a
// persisted, developed idea.
type Developer struct {
	registry   *agent.Registry
	classifier *Classifier
	ideas      IdeaStore
	cfg        Config

	// StepGraph, when set, records step dependencies from rendered
	// diagrams. Progress, when set, receives per-phase events. Both are
	// optional.
	StepGraph graph.Store
	Progress  *ProgressReporter
}

// NewDeveloper wires a Developer from its required collaborators.
func NewDeveloper(registry *agent.Registry, classifier *Classifier, ideas IdeaStore, cfg Config) *Developer {
	return &Developer{
		registry:   registry,
		classifier: classifier,
		ideas:      ideas,
		cfg:        cfg,
	}
}

// DevelopIdea classifies the concept, extracts keywords, runs the
// matching agent (or a coordinator when subtask triggers fire),
// persists the result, and returns the developed idea with its
// store-assigned ID.
func (d *Developer) DevelopIdea(ctx context.Context, rawConcept string) (*domain.DevelopedIdea, error) {
	d.emit(PhaseClassify, ProgressWorking, "")
	ideaDomain, err := d.classifier.Classify(ctx, rawConcept)
	if err != nil {
		d.emit(PhaseClassify, ProgressFailed, err.Error())
		return nil, err
	}
	d.emit(PhaseClassify, ProgressComplete, string(ideaDomain))

	d.emit(PhaseKeywords, ProgressWorking, "")
	keywords, err := d.classifier.Keywords(ctx, rawConcept)
	if err != nil {
		d.emit(PhaseKeywords, ProgressFailed, err.Error())
		return nil, err
	}
	d.emit(PhaseKeywords, ProgressComplete, "")

	idea := &domain.Idea{
		Concept:          rawConcept,
		Domain:           ideaDomain,
		Keywords:         keywords,
		DevelopmentStage: initialStage,
	}

	d.emit(PhaseProcess, ProgressWorking, "")
	response, err := d.process(ctx, idea)
	if err != nil {
		d.emit(PhaseProcess, ProgressFailed, err.Error())
		return nil, err
	}
	d.emit(PhaseProcess, ProgressComplete, "")

	d.emit(PhasePersist, ProgressWorking, "")
	id, err := d.persist(ctx, idea, response)
	if err != nil {
		d.emit(PhasePersist, ProgressFailed, err.Error())
		return nil, err
	}
	d.emit(PhasePersist, ProgressComplete, "")

	return &domain.DevelopedIdea{
		ID:          id,
		Idea:        *idea,
		Development: *response,
		Timestamp:   time.Now(),
	}, nil
}

// process picks between a single agent and a coordinator based on the
// idea's subtask triggers.
func (d *Developer) process(ctx context.Context, idea *domain.Idea) (*domain.Response, error) {
	supporting := SupportingDomains(CreateSubtasks(idea), idea.Domain)

	if len(supporting) == 0 {
		ag, err := d.registry.Create(idea.Domain)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: create agent: %w", err)
		}
		return ag.ProcessIdea(ctx, idea)
	}

	coordinator, err := NewCoordinator(d.registry, idea.Domain, supporting, d.cfg)
	if err != nil {
		return nil, err
	}
	return coordinator.ProcessIdea(ctx, idea)
}

// persist saves the idea row plus its diagram and image rows, and
// records step dependencies in the graph. Only the idea row is
// load-bearing; enhancement rows log and continue on failure.
func (d *Developer) persist(ctx context.Context, idea *domain.Idea, response *domain.Response) (int64, error) {
	id, err := d.ideas.SaveIdea(ctx, idea)
	if err != nil {
		return 0, fmt.Errorf("orchestrator: save idea: %w", err)
	}

	if response.NextStepsTree != "" {
		if err := d.ideas.SaveDiagram(ctx, id, response.NextStepsTree, "next steps diagram"); err != nil {
			log.Printf("orchestrator: save diagram: %v", err)
		}
		d.recordStepGraph(ctx, id, idea, response.NextStepsTree)
	}
	if response.ConceptImage != "" {
		if err := d.ideas.SaveDiagram(ctx, id, response.ConceptImage, "concept visualization"); err != nil {
			log.Printf("orchestrator: save concept image: %v", err)
		}
	}

	return id, nil
}

// recordStepGraph decodes the rendered diagram back into edges and
// writes them to the step graph.
func (d *Developer) recordStepGraph(ctx context.Context, id int64, idea *domain.Idea, diagram string) {
	if d.StepGraph == nil {
		return
	}

	edges, err := render.DecodeDiagram(diagram)
	if err != nil {
		log.Printf("orchestrator: decode step diagram: %v", err)
		return
	}

	depEdges := make([]graph.DependencyEdge, len(edges))
	for i, e := range edges {
		depEdges[i] = graph.DependencyEdge{IdeaID: id, From: e.From, To: e.To}
	}

	node := graph.IdeaNode{ID: id, Concept: idea.Concept, Domain: string(idea.Domain)}
	if err := graph.Record(ctx, d.StepGraph, node, depEdges); err != nil {
		log.Printf("orchestrator: record step graph: %v", err)
	}
}

func (d *Developer) emit(phase Phase, status ProgressStatus, message string) {
	if d.Progress == nil {
		return
	}
	d.Progress.Emit(ProgressEvent{Phase: phase, Status: status, Message: message})
}
