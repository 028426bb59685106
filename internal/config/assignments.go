package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KNOCKYONG/shifteasy-sub001/pkg/core/model"
)

// AssignmentRecord is one row of an assignments file
type AssignmentRecord struct {
	StaffID   string `yaml:"staffId" validate:"required"`
	Date      string `yaml:"date" validate:"required,datetime=2006-01-02"`
	ShiftType string `yaml:"shiftType" validate:"required,oneof=D E N OFF"`
}

// AssignmentsFile is a roster stored on disk, as written by the generate command
type AssignmentsFile struct {
	Assignments []AssignmentRecord `yaml:"assignments" validate:"dive"`
}

// LoadAssignments reads and validates an assignments file
func LoadAssignments(path string) ([]model.Assignment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assignments file: %w", err)
	}

	var file AssignmentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse assignments file: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("assignments validation failed: %w", err)
	}

	assignments := make([]model.Assignment, 0, len(file.Assignments))
	for _, r := range file.Assignments {
		assignments = append(assignments, model.Assignment{
			StaffID:   r.StaffID,
			ShiftType: model.ShiftType(r.ShiftType),
			Date:      r.Date,
		})
	}
	return assignments, nil
}

// WriteAssignments stores assignments in the format read by LoadAssignments
func WriteAssignments(path string, assignments []model.Assignment) error {
	file := AssignmentsFile{Assignments: make([]AssignmentRecord, 0, len(assignments))}
	for _, a := range assignments {
		file.Assignments = append(file.Assignments, AssignmentRecord{
			StaffID:   a.StaffID,
			Date:      a.Date,
			ShiftType: string(a.ShiftType),
		})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to encode assignments: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write assignments file: %w", err)
	}
	return nil
}
