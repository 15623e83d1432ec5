package core

import (
	"context"
	"fmt"

	"github.com/drafterhq/drafter/blueprint"
	"github.com/drafterhq/drafter/fs"
	"github.com/drafterhq/drafter/llm"
)

type StepManager interface {
	GetSteps() []StepType
	GetStep(stepType StepType) Step
}

type DefaultStepManager struct {
	steps   []StepType
	stepMap map[StepType]Step
}

func NewDefaultStepManager(client llm.Client, fileSystem *fs.FileSystem) *DefaultStepManager {
	return &DefaultStepManager{
		steps: []StepType{
			GenerateBlueprint,
			DecodeBlueprint,
			MaterializeBlueprint,
			Done,
		},
		stepMap: map[StepType]Step{
			GenerateBlueprint:    &GenerateBlueprintStep{llm: client},
			DecodeBlueprint:      &DecodeBlueprintStep{},
			MaterializeBlueprint: &MaterializeBlueprintStep{fs: fileSystem},
			Done:                 &DoneStep{},
		},
	}
}

func (m *DefaultStepManager) GetSteps() []StepType {
	return m.steps
}

func (m *DefaultStepManager) GetStep(stepType StepType) Step {
	return m.stepMap[stepType]
}

type GenerateBlueprintStep struct {
	llm llm.Client
}

func (s *GenerateBlueprintStep) Execute(ctx context.Context, state *State) error {
	state.Logger.Debug("Requesting blueprint from provider.")
	r := state.Request
	raw, err := llm.GenerateBlueprint(ctx, s.llm, llm.PromptInput{
		Description:        r.BuildDescription,
		Instructions:       r.Instructions,
		UseNamePlaceholder: r.Name != "",
	})
	if err != nil {
		state.Logger.Error("Failed to generate blueprint")
		return fmt.Errorf("failed to generate blueprint: %w", err)
	}
	state.RawCompletion = raw
	state.Logger.Debug("Blueprint generated successfully")
	return nil
}

type DecodeBlueprintStep struct{}

func (s *DecodeBlueprintStep) Execute(ctx context.Context, state *State) error {
	state.Logger.Debug("Decoding blueprint.")
	bp, err := blueprint.Decode(state.RawCompletion)
	if err != nil {
		state.Logger.Error("Failed to decode blueprint")
		return err
	}
	state.Blueprint = bp.Substitute(state.Request.Name)
	state.Logger.Debug(fmt.Sprintf("Blueprint decoded: %d entries", len(state.Blueprint)))
	return nil
}

type MaterializeBlueprintStep struct {
	fs *fs.FileSystem
}

func (s *MaterializeBlueprintStep) Execute(ctx context.Context, state *State) error {
	state.Logger.Debug("Materializing blueprint.")
	r := state.Request
	opts := fs.MaterializeOptions{FailIfExists: r.FailIfExists}
	if err := s.fs.MaterializeAll(state.Blueprint, r.OutputRoots, opts); err != nil {
		state.Logger.Error("Failed to materialize blueprint")
		return fmt.Errorf("failed to materialize blueprint: %w", err)
	}
	state.Logger.Debug("Blueprint materialized successfully")
	return nil
}

type DoneStep struct{}

func (s *DoneStep) Execute(ctx context.Context, state *State) error {
	state.Logger.Debug("Build finished.")
	return nil
}
