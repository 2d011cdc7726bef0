package organization

import (
	"fmt"

	"themison-be/user"
)

type OrganizationService struct {
	repo     *OrganizationRepository
	userRepo *user.UserRepository
}

func NewOrganizationService(repo *OrganizationRepository, userRepo *user.UserRepository) *OrganizationService {
	return &OrganizationService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *OrganizationService) CreateOrganization(org *Organization) error {
	return s.repo.Create(org)
}

func (s *OrganizationService) GetAll() ([]Organization, error) {
	return s.repo.GetAll()
}

func (s *OrganizationService) GetByID(id int) (*Organization, error) {
	return s.repo.GetByID(id)
}

func (s *OrganizationService) Update(org *Organization) error {
	if _, err := s.repo.GetByID(org.ID); err != nil {
		return fmt.Errorf("organization not found: %w", err)
	}
	return s.repo.Update(org)
}

func (s *OrganizationService) Delete(id int) error {
	return s.repo.Delete(id)
}

// InviteMember attaches an existing user account to the organization as a
// member. The user must already be registered.
func (s *OrganizationService) InviteMember(organizationID int, req *InviteMemberRequest) (*Member, error) {
	u, err := s.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("no registered user with email %s: %w", req.Email, err)
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = u.Name
	}

	role := req.DefaultRole
	if role == "" {
		role = "coordinator"
	}

	member := &Member{
		OrganizationID: organizationID,
		UserID:         u.ID,
		DisplayName:    displayName,
		DefaultRole:    role,
	}

	if err := s.repo.CreateMember(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

func (s *OrganizationService) GetMembers(organizationID int) ([]Member, error) {
	return s.repo.GetMembers(organizationID)
}

func (s *OrganizationService) GetMemberByID(id int) (*Member, error) {
	return s.repo.GetMemberByID(id)
}

func (s *OrganizationService) UpdateMember(id int, req *UpdateMemberRequest) (*Member, error) {
	member, err := s.repo.GetMemberByID(id)
	if err != nil {
		return nil, fmt.Errorf("member not found: %w", err)
	}

	if req.DisplayName != "" {
		member.DisplayName = req.DisplayName
	}
	if req.DefaultRole != "" {
		member.DefaultRole = req.DefaultRole
	}

	if err := s.repo.UpdateMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *OrganizationService) RemoveMember(id int) error {
	return s.repo.DeleteMember(id)
}
