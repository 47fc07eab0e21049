package services

import (
	"fmt"

	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/models"
	"github.com/clientdesk/portal/repositories"
	"github.com/clientdesk/portal/utils"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	userRepo    *repositories.UserRepository
}

// NewProjectService creates a new project service instance
func NewProjectService() *ProjectService {
	return &ProjectService{
		projectRepo: repositories.NewProjectRepository(),
		userRepo:    repositories.NewUserRepository(),
	}
}

// ListProjects retrieves projects with pagination, filtering and sorting.
// Admin sees all projects, clients only their own.
func (s *ProjectService) ListProjects(filter dto.ProjectFilter) (dto.ProjectListResponse, error) {
	var response dto.ProjectListResponse

	// Set defaults if not provided
	if filter.Page <= 0 {
		filter.Page = 1
	}

	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}

	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}

	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}

	// Validate sort order
	if filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		filter.SortOrder = "desc"
	}

	// Valid sort columns (whitelist approach for security)
	validSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	}

	if !validSortColumns[filter.SortBy] {
		filter.SortBy = "created_at"
	}

	projects, totalCount, err := s.projectRepo.FindWithPagination(
		filter.Page,
		filter.PageSize,
		filter.SortBy,
		filter.SortOrder,
		filter.ClientID,
		filter.IsAdmin,
		filter.Search,
	)

	if err != nil {
		return response, err
	}

	// Calculate total pages
	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	response = dto.ProjectListResponse{
		Projects:   projects,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}

	return response, nil
}

// GetProjectDetail retrieves a project by ID with its deliverables.
// Access control: admin can view any project, clients only their own.
func (s *ProjectService) GetProjectDetail(projectID string, userID string, isAdmin bool) (models.Project, error) {
	project, err := s.projectRepo.WithDeliverables(projectID)
	if err != nil {
		return models.Project{}, err
	}

	if !isAdmin && project.ClientID != userID {
		return models.Project{}, utils.NewPermissionError("you don't have permission to access this project")
	}

	return project, nil
}

// CreateProject creates a new project for a client
func (s *ProjectService) CreateProject(req dto.CreateProjectRequest, isAdmin bool) (models.Project, error) {
	if !isAdmin {
		return models.Project{}, utils.NewPermissionError("only admins can create projects")
	}

	// The owning user must exist and be a client
	client, err := s.userRepo.FindByID(req.ClientID)
	if err != nil {
		return models.Project{}, fmt.Errorf("client not found: %w", err)
	}
	if client.Role != models.RoleClient {
		return models.Project{}, utils.NewValidationError("projects can only be assigned to client accounts")
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    client.ID,
		Status:      models.ProjectStatusActive,
	}

	return s.projectRepo.Create(project)
}

// UpdateProject updates an existing project
func (s *ProjectService) UpdateProject(projectID string, req dto.UpdateProjectRequest, isAdmin bool) (models.Project, error) {
	if !isAdmin {
		return models.Project{}, utils.NewPermissionError("only admins can update projects")
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return models.Project{}, err
	}

	project.Name = req.Name
	project.Description = req.Description
	if req.Status != "" {
		status := models.ProjectStatus(req.Status)
		if status != models.ProjectStatusActive && status != models.ProjectStatusArchived {
			return models.Project{}, utils.NewValidationError("invalid project status")
		}
		project.Status = status
	}

	if err := s.projectRepo.Update(project); err != nil {
		return models.Project{}, err
	}

	return project, nil
}

// DeleteProject soft deletes a project and its deliverables. Stored objects
// of the deleted deliverables are left for the orphan sweep.
func (s *ProjectService) DeleteProject(projectID string, isAdmin bool) error {
	if !isAdmin {
		return utils.NewPermissionError("only admins can delete projects")
	}

	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		return fmt.Errorf("project not found: %w", err)
	}

	return s.projectRepo.Delete(projectID)
}
