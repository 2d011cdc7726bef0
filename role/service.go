package role

type RoleService struct {
	repo *RoleRepository
}

func NewRoleService(repo *RoleRepository) *RoleService {
	return &RoleService{repo: repo}
}

func (s *RoleService) Create(role *Role) error {
	return s.repo.Create(role)
}

func (s *RoleService) GetAll(limit, offset int, search string, organizationID *int) ([]Role, int, error) {
	roles, err := s.repo.GetAll(limit, offset, search, organizationID)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.GetTotal(search, organizationID)
	if err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

func (s *RoleService) GetByID(id int) (*Role, error) {
	return s.repo.GetByID(id)
}

func (s *RoleService) Update(id int, role *Role) error {
	return s.repo.Update(id, role)
}

func (s *RoleService) Delete(id int) error {
	return s.repo.Delete(id)
}
