package core

import (
	"context"
	"fmt"
	"time"

	"github.com/drafterhq/drafter/blueprint"
	"github.com/drafterhq/drafter/logger"
)

type Step interface {
	Execute(ctx context.Context, state *State) error
}

type StepType int

const (
	GenerateBlueprint StepType = iota
	DecodeBlueprint
	MaterializeBlueprint
	Done
)

func (s StepType) String() string {
	switch s {
	case GenerateBlueprint:
		return "GenerateBlueprint"
	case DecodeBlueprint:
		return "DecodeBlueprint"
	case MaterializeBlueprint:
		return "MaterializeBlueprint"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("StepType(%d)", int(s))
	}
}

type State struct {
	RawCompletion string
	Blueprint     blueprint.Blueprint
	Request       *Request
	Logger        logger.Logger
}

type Pipeline struct {
	stepManager StepManager
	state       *State
	publisher   StepPublisher
}

func NewPipeline(r *Request, sm StepManager, pub StepPublisher, l logger.Logger) (*Pipeline, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if pub == nil {
		pub = &DefaultStepPublisher{}
	}
	if l == nil {
		l = logger.NewNullLogger()
	}
	return &Pipeline{
		state: &State{
			Request: r,
			Logger:  l,
		},
		publisher:   pub,
		stepManager: sm,
	}, nil
}

func (p *Pipeline) Execute(ctx context.Context) error {
	steps := p.stepManager.GetSteps()
	p.state.Logger.Info("Starting pipeline execution")
	for i, stepType := range steps {
		select {
		case <-ctx.Done():
			p.state.Logger.Info("Pipeline execution cancelled")
			return context.Canceled
		default:
			p.state.Logger.Info(fmt.Sprintf("Attempting to execute step %d: %v", i, stepType))
			step := p.stepManager.GetStep(stepType)
			if step == nil {
				p.state.Logger.Error(fmt.Sprintf("Step %v not found", stepType))
				p.publisher.Error(stepType, fmt.Errorf("step %v not found", stepType))
				return fmt.Errorf("step %v not found", stepType)
			}

			startTime := time.Now()
			if err := step.Execute(ctx, p.state); err != nil {
				p.state.Logger.Error(fmt.Sprintf("Error executing step %v", stepType))
				p.publisher.Error(stepType, err)
				return err
			}
			duration := time.Since(startTime)
			p.state.Logger.Info(fmt.Sprintf("Step %v completed in %v", stepType, duration))
			p.publisher.PublishStep(stepType)
		}
	}

	p.state.Logger.Info("Pipeline execution completed")
	return nil
}

type StepPublisher interface {
	PublishStep(step StepType)
	Error(step StepType, err error)
}

type DefaultStepPublisher struct{}

func (p *DefaultStepPublisher) PublishStep(step StepType) {}

func (p *DefaultStepPublisher) Error(step StepType, err error) {}
