package trial

import (
	"fmt"

	"github.com/google/uuid"
)

type TrialService struct {
	repo *TrialRepository
}

func NewTrialService(repo *TrialRepository) *TrialService {
	return &TrialService{repo: repo}
}

func (s *TrialService) CreateTrial(req *CreateTrialRequest) (*Trial, error) {
	phase := req.Phase
	if phase == "" {
		phase = "I"
	}

	trial := &Trial{
		ID:             uuid.New(),
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		ProtocolCode:   req.ProtocolCode,
		Phase:          phase,
		Status:         "planning",
		Sponsor:        req.Sponsor,
		Description:    req.Description,
	}

	if err := s.repo.Create(trial); err != nil {
		return nil, fmt.Errorf("failed to create trial: %w", err)
	}
	return trial, nil
}

func (s *TrialService) GetAll(filter TrialFilter) ([]Trial, int, error) {
	trials, err := s.repo.GetAll(filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.GetTotal(filter)
	if err != nil {
		return nil, 0, err
	}

	return trials, total, nil
}

func (s *TrialService) GetByID(id uuid.UUID) (*Trial, error) {
	return s.repo.GetByID(id)
}

func (s *TrialService) Update(id uuid.UUID, req *UpdateTrialRequest) (*Trial, error) {
	trial, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("trial not found: %w", err)
	}

	if req.Name != "" {
		trial.Name = req.Name
	}
	if req.Phase != "" {
		trial.Phase = req.Phase
	}
	if req.Status != "" {
		trial.Status = req.Status
	}
	if req.Sponsor != nil {
		trial.Sponsor = req.Sponsor
	}
	if req.Description != nil {
		trial.Description = req.Description
	}

	if err := s.repo.Update(trial); err != nil {
		return nil, err
	}
	return trial, nil
}

func (s *TrialService) Delete(id uuid.UUID) error {
	return s.repo.Delete(id)
}

func (s *TrialService) AssignMember(trialID uuid.UUID, req *AssignMemberRequest) (*TrialAssignment, error) {
	if _, err := s.repo.GetByID(trialID); err != nil {
		return nil, fmt.Errorf("trial not found: %w", err)
	}

	assignment := &TrialAssignment{
		TrialID:  trialID,
		MemberID: req.MemberID,
		Role:     req.Role,
	}

	if err := s.repo.AssignMember(assignment); err != nil {
		return nil, fmt.Errorf("failed to assign member: %w", err)
	}
	return assignment, nil
}

func (s *TrialService) GetAssignments(trialID uuid.UUID) ([]TrialAssignment, error) {
	return s.repo.GetAssignments(trialID)
}

func (s *TrialService) GetAssignmentsByMember(memberID int) ([]TrialAssignment, error) {
	return s.repo.GetAssignmentsByMember(memberID)
}

func (s *TrialService) RemoveAssignment(id int) error {
	return s.repo.RemoveAssignment(id)
}
