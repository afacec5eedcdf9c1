package service

import (
	"context"
	"errors"

	"github.com/fitizen/fitizen-go/internal/model"
)

var ErrProgramIDRequired = errors.New("program id is required")

// ProgramStore is the program read contract. Satisfied by
// repository.ProgramRepository.
type ProgramStore interface {
	GetName(ctx context.Context, id string) (string, error)
}

// ProgramService is a thin read accessor over generated training
// programs. Session verification happens before this service is
// reached; the lookup itself is a pure read.
type ProgramService struct {
	store ProgramStore
}

// NewProgramService creates a new ProgramService.
func NewProgramService(store ProgramStore) *ProgramService {
	return &ProgramService{store: store}
}

// GetProgramName returns the display name for a program identifier.
// Propagates repository.ErrProgramNotFound unchanged.
func (s *ProgramService) GetProgramName(ctx context.Context, id string) (model.ProgramNameResponse, error) {
	if id == "" {
		return model.ProgramNameResponse{}, ErrProgramIDRequired
	}

	name, err := s.store.GetName(ctx, id)
	if err != nil {
		return model.ProgramNameResponse{}, err
	}

	return model.ProgramNameResponse{ID: id, Name: name}, nil
}
