package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/repositories"
)

// UniversityService defines the interface for university directory reads
type UniversityService interface {
	GetUniversitiesNameList(ctx context.Context) ([]dto.NameResponse, error)
	GetMajorsNameList(ctx context.Context) ([]dto.NameResponse, error)
}

// universityServiceImpl implements UniversityService
type universityServiceImpl struct {
	referenceRepo *repositories.ReferenceRepository
	logger        zerolog.Logger
}

// NewUniversityService creates a new UniversityService
func NewUniversityService(referenceRepo *repositories.ReferenceRepository, logger zerolog.Logger) UniversityService {
	return &universityServiceImpl{
		referenceRepo: referenceRepo,
		logger:        logger,
	}
}

// GetUniversitiesNameList retrieves all universities as id+name pairs
func (s *universityServiceImpl) GetUniversitiesNameList(ctx context.Context) ([]dto.NameResponse, error) {
	universities, err := s.referenceRepo.GetUniversities(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]dto.NameResponse, 0, len(universities))
	for _, university := range universities {
		names = append(names, dto.NameResponse{ID: university.ID, Name: university.Name})
	}

	return names, nil
}

// GetMajorsNameList retrieves all majors as id+name pairs
func (s *universityServiceImpl) GetMajorsNameList(ctx context.Context) ([]dto.NameResponse, error) {
	majors, err := s.referenceRepo.GetMajors(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]dto.NameResponse, 0, len(majors))
	for _, major := range majors {
		names = append(names, dto.NameResponse{ID: major.ID, Name: major.Name})
	}

	return names, nil
}
