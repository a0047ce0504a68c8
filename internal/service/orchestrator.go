package service

import (
	"context"
	"fmt"

	"misto-helper/internal/dto"

	"go.uber.org/zap"
)

// Orchestrator sequences the complete flow for one complaint:
// classification → service resolution → appeal generation. Each request is
// processed independently; the only suspension points are the embedding and
// generative calls inside the collaborators.
type Orchestrator struct {
	classifier Classifier
	resolver   *ServiceResolver
	appeals    *AppealService
	categories CategoryStore
	logger     *zap.Logger
}

func NewOrchestrator(
	classifier Classifier,
	resolver *ServiceResolver,
	appeals *AppealService,
	categories CategoryStore,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		resolver:   resolver,
		appeals:    appeals,
		categories: categories,
		logger:     logger,
	}
}

func (o *Orchestrator) Solve(ctx context.Context, req *dto.SolveRequest) (*dto.SolveResponse, error) {
	classification, err := o.classifier.Classify(ctx, req.ProblemText)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	classResp, err := DescribeClassification(ctx, o.categories, classification)
	if err != nil {
		return nil, err
	}

	street, building := ParseAddress(req.UserInfo.Address)

	serviceResp, err := o.resolver.Resolve(ctx, classification.CategoryID, classification.IsUrgent, street, building)
	if err != nil {
		return nil, fmt.Errorf("service resolution failed: %w", err)
	}

	appealText, err := o.appeals.GenerateAppeal(ctx, req.ProblemText, street, building)
	if err != nil {
		return nil, fmt.Errorf("appeal generation failed: %w", err)
	}

	o.logger.Info("Complaint processed",
		zap.String("category", classification.CategoryID),
		zap.Bool("is_urgent", classification.IsUrgent),
		zap.String("service", serviceResp.ServiceName),
		zap.Float64("routing_confidence", serviceResp.Confidence),
	)

	return &dto.SolveResponse{
		UserInfo:       req.UserInfo,
		Classification: *classResp,
		Service:        *serviceResp,
		AppealText:     appealText,
	}, nil
}
