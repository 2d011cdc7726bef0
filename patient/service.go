package patient

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PatientService struct {
	Repo *PatientRepository
}

func NewPatientService(repo *PatientRepository) *PatientService {
	return &PatientService{Repo: repo}
}

func (s *PatientService) CreatePatient(req CreatePatientRequest) (*Patient, error) {
	now := time.Now()
	p := &Patient{
		TrialID:    req.TrialID,
		Code:       req.Code,
		Status:     "screening",
		EnrolledAt: &now,
	}
	if err := s.Repo.CreatePatient(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PatientService) GetPatientsByTrial(trialID uuid.UUID) ([]Patient, error) {
	return s.Repo.GetPatientsByTrial(trialID)
}

func (s *PatientService) GetPatientByID(id int) (*Patient, error) {
	return s.Repo.GetPatientByID(id)
}

func (s *PatientService) UpdatePatientStatus(id int, status string) error {
	var withdrawnAt *time.Time
	if status == "withdrawn" {
		now := time.Now()
		withdrawnAt = &now
	}
	return s.Repo.UpdatePatientStatus(id, status, withdrawnAt)
}

func (s *PatientService) CreateVisit(patientID int, req CreateVisitRequest) (*Visit, error) {
	p, err := s.Repo.GetPatientByID(patientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("patient not found")
	}
	v := &Visit{
		PatientID:   patientID,
		Name:        req.Name,
		ScheduledAt: req.ScheduledAt,
		Status:      "scheduled",
		Notes:       req.Notes,
	}
	if err := s.Repo.CreateVisit(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *PatientService) GetVisitsByPatient(patientID int) ([]Visit, error) {
	return s.Repo.GetVisitsByPatient(patientID)
}

func (s *PatientService) UpdateVisit(id int, req UpdateVisitRequest) (*Visit, error) {
	return s.Repo.UpdateVisit(id, req)
}
