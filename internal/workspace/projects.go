package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"eip/internal/fileutils"
	"eip/internal/inventory"
	"eip/internal/logging"
	"eip/internal/models"
)

// NormalizeFileType maps the accepted project type spellings ("csv", "xlsx",
// "excel", ".csv", ".xlsx") to a file type.
func NormalizeFileType(fileType string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(fileType), ".")) {
	case "csv":
		return models.FileTypeCSV, nil
	case "xlsx", "excel":
		return models.FileTypeXLSX, nil
	default:
		return "", fmt.Errorf("unsupported project file type %q: use csv or xlsx", fileType)
	}
}

func validProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidProjectName)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidProjectName, name)
	}
	return name, nil
}

// CreateProject creates an empty project sheet and returns its path.
func (w *Workspace) CreateProject(name, fileType string) (string, error) {
	name, err := validProjectName(name)
	if err != nil {
		return "", err
	}
	ft, err := NormalizeFileType(fileType)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.ProjectsPath(), name+"."+ft)
	if fileutils.FileExists(path) {
		return "", fmt.Errorf("%w: %s.%s", ErrProjectExists, name, ft)
	}
	if err := ensureParent(path); err != nil {
		return "", fmt.Errorf("error creating projects directory: %w", err)
	}
	if err := w.writer.WriteFile(path, w.NewCollection(name)); err != nil {
		return "", err
	}

	w.logger.Info("Project created",
		logging.F(logging.FieldProject, name),
		logging.F(logging.FieldOutputFile, path))
	return path, nil
}

// ProjectPath returns the path of an existing project, given with or without
// extension.
func (w *Workspace) ProjectPath(name string) (string, error) {
	path, ok := w.resolve(w.ProjectsPath(), strings.TrimSpace(name))
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return path, nil
}

// OpenProject reads a project sheet into a collection named after it.
func (w *Workspace) OpenProject(name string) (*inventory.Collection, error) {
	path, err := w.ProjectPath(name)
	if err != nil {
		return nil, err
	}
	c := w.NewCollection(OrderName(path))
	if err := w.reader.Load(path, c); err != nil {
		return nil, fmt.Errorf("error opening project %s: %w", name, err)
	}
	return c, nil
}

// SaveProject writes c over the existing project file, in that file's
// format.
func (w *Workspace) SaveProject(name string, c *inventory.Collection) error {
	if c.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrBlankProject, name)
	}
	path, err := w.ProjectPath(name)
	if err != nil {
		return err
	}
	if err := w.writer.WriteFile(path, c); err != nil {
		return err
	}
	w.logger.Info("Project saved",
		logging.F(logging.FieldProject, name),
		logging.F(logging.FieldCount, c.Len()))
	return nil
}

// Projects lists the project file names.
func (w *Workspace) Projects() ([]string, error) {
	return listSheets(w.ProjectsPath())
}
