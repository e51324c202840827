package services

import (
	"context"
	"fmt"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/repositories"
)

// DirectoryService serves the read-only event calendar and team roster.
type DirectoryService interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	Roster(ctx context.Context) (models.Roster, error)
}

type directoryService struct {
	repo repositories.DirectoryRepository
}

func NewDirectoryService(repo repositories.DirectoryRepository) DirectoryService {
	return &directoryService{repo: repo}
}

func (s *directoryService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *directoryService) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	members, err := s.repo.ListTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

func (s *directoryService) Roster(ctx context.Context) (models.Roster, error) {
	members, err := s.ListTeamMembers(ctx)
	if err != nil {
		return models.Roster{}, err
	}
	return models.GroupRoster(members), nil
}
