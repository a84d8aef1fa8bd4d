package service

import (
	"context"
	"fmt"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"

	"github.com/google/uuid"
)

type EmployeeService interface {
	Create(ctx context.Context, req dto.EmployeeRequest) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.EmployeeRequest) (*dto.EmployeeResponse, error)
	List(ctx context.Context, activeOnly bool) ([]dto.EmployeeResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type employeeService struct {
	employees repository.EmployeeRepository
}

func NewEmployeeService(employees repository.EmployeeRepository) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) Create(ctx context.Context, req dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	employee := &model.Employee{
		Name:         req.Name,
		Position:     req.Position,
		DailyPayBase: req.DailyPayBase,
		IsActive:     true,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return employeeToResponse(employee), nil
}

func (s *employeeService) Update(ctx context.Context, id uuid.UUID, req dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	employee.Name = req.Name
	employee.Position = req.Position
	employee.DailyPayBase = req.DailyPayBase
	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return employeeToResponse(employee), nil
}

func (s *employeeService) List(ctx context.Context, activeOnly bool) ([]dto.EmployeeResponse, error) {
	employees, err := s.employees.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, *employeeToResponse(&employees[i]))
	}
	return out, nil
}

func (s *employeeService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.employees.Deactivate(ctx, id)
}

func employeeToResponse(e *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:           e.ID.String(),
		Name:         e.Name,
		Position:     e.Position,
		DailyPayBase: e.DailyPayBase,
		IsActive:     e.IsActive,
	}
}
