// Package workspace manages the saved-lists directory: the inventory
// workbook, archived past orders, project sheets and exports.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eip/internal/classifier"
	"eip/internal/fileutils"
	"eip/internal/inventory"
	"eip/internal/logging"
	"eip/internal/models"
	"eip/internal/sheet"
	"eip/internal/validation"
)

// Layout names below the workspace root.
const (
	InventoryFile  = "Inventory.xlsx"
	InventoryName  = "Inventory"
	PastOrdersDir  = "Past Orders"
	ProjectsDir    = "Projects"
	DefaultRootDir = "Saved_Lists"
)

var (
	// ErrNoInventory means no inventory workbook has been saved yet.
	ErrNoInventory = errors.New("no inventory saved yet")
	// ErrProjectExists is returned when creating a project whose file exists.
	ErrProjectExists = errors.New("project already exists")
	// ErrProjectNotFound is returned when no project file has the name.
	ErrProjectNotFound = errors.New("project not found")
	// ErrBlankProject is returned when saving a project with no items.
	ErrBlankProject = errors.New("project is blank")
	// ErrInvalidProjectName is returned for empty names or names with path
	// separators.
	ErrInvalidProjectName = errors.New("invalid project name")
	// ErrPastOrderNotFound is returned when no archived order has the name.
	ErrPastOrderNotFound = errors.New("past order not found")
)

// Workspace is rooted at a data directory.
type Workspace struct {
	root       string
	exportDir  string
	reader     *sheet.Reader
	writer     *sheet.Writer
	classifier classifier.Classifier
	logger     logging.Logger
}

// New creates a Workspace. An empty root means DefaultRootDir.
func New(root, exportDir string, c classifier.Classifier, reader *sheet.Reader, writer *sheet.Writer, logger logging.Logger) *Workspace {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if root == "" {
		root = DefaultRootDir
	}
	if c == nil {
		c = classifier.NewDefault(logger)
	}
	if reader == nil {
		reader = sheet.NewReader(logger, ',')
	}
	if writer == nil {
		writer = sheet.NewWriter(logger, ',')
	}
	return &Workspace{
		root:       root,
		exportDir:  exportDir,
		reader:     reader,
		writer:     writer,
		classifier: c,
		logger:     logger.WithField(logging.FieldComponent, "workspace"),
	}
}

// Root returns the workspace directory.
func (w *Workspace) Root() string { return w.root }

// InventoryPath returns the path of the inventory workbook.
func (w *Workspace) InventoryPath() string { return filepath.Join(w.root, InventoryFile) }

// PastOrdersPath returns the directory of archived orders.
func (w *Workspace) PastOrdersPath() string { return filepath.Join(w.root, PastOrdersDir) }

// ProjectsPath returns the directory of project sheets.
func (w *Workspace) ProjectsPath() string { return filepath.Join(w.root, ProjectsDir) }

// Init creates the workspace directories.
func (w *Workspace) Init() error {
	for _, dir := range []string{w.root, w.PastOrdersPath(), w.ProjectsPath()} {
		if err := fileutils.EnsureDirectoryExists(dir); err != nil {
			return err
		}
	}
	return nil
}

// NewCollection returns an empty collection sharing the workspace classifier.
func (w *Workspace) NewCollection(name string) *inventory.Collection {
	return inventory.NewCollection(name, w.classifier, w.logger)
}

// LoadInventory reads the inventory workbook. When none exists it returns an
// empty collection together with ErrNoInventory.
func (w *Workspace) LoadInventory() (*inventory.Collection, error) {
	c := w.NewCollection(InventoryName)
	path := w.InventoryPath()
	if !fileutils.FileExists(path) {
		return c, ErrNoInventory
	}
	if err := w.reader.Load(path, c); err != nil {
		return nil, fmt.Errorf("error loading inventory: %w", err)
	}
	w.logger.Debug("Inventory loaded", logging.F(logging.FieldCount, c.Len()))
	return c, nil
}

// SaveInventory writes c as the inventory workbook, replacing it.
func (w *Workspace) SaveInventory(c *inventory.Collection) error {
	if err := w.Init(); err != nil {
		return err
	}
	return w.writer.WriteWorkbook(w.InventoryPath(), c)
}

// ReadOrder reads an order sheet, classifies its items and merges duplicate
// part numbers. The collection is named after the file stem.
func (w *Workspace) ReadOrder(path string) (*inventory.Collection, error) {
	if err := validation.IsValidInputFile(path); err != nil {
		return nil, err
	}
	c := w.NewCollection(OrderName(path))
	if err := w.reader.Load(path, c); err != nil {
		return nil, err
	}
	c.MergeDuplicates(true)
	w.logger.Info("Order read",
		logging.F(logging.FieldOrder, c.Name()),
		logging.F(logging.FieldCount, c.Len()))
	return c, nil
}

// OrderName is the file stem of an order sheet path.
func OrderName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ArchiveOrder copies an order sheet into the past orders directory and
// returns the copy's path. A same-named archive is replaced.
func (w *Workspace) ArchiveOrder(path string) (string, error) {
	if err := w.Init(); err != nil {
		return "", err
	}
	dst := filepath.Join(w.PastOrdersPath(), filepath.Base(path))
	if err := fileutils.CopyFile(path, dst); err != nil {
		return "", fmt.Errorf("error archiving order: %w", err)
	}
	w.logger.Info("Order archived", logging.F(logging.FieldOutputFile, dst))
	return dst, nil
}

// PastOrders lists the archived order file names.
func (w *Workspace) PastOrders() ([]string, error) {
	return listSheets(w.PastOrdersPath())
}

// OpenPastOrder reads an archived order by file name, with or without
// extension.
func (w *Workspace) OpenPastOrder(name string) (*inventory.Collection, error) {
	path, ok := w.resolve(w.PastOrdersPath(), name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPastOrderNotFound, name)
	}
	return w.ReadOrder(path)
}

// Export copies a saved file into the export directory and returns the
// destination. An existing name gets a "(n)" suffix.
func (w *Workspace) Export(path string) (string, error) {
	if w.exportDir == "" {
		return "", errors.New("no export directory configured")
	}
	if err := validation.IsValidInputFile(path); err != nil {
		return "", err
	}
	dst := fileutils.UniquePath(filepath.Join(w.exportDir, filepath.Base(path)))
	if err := fileutils.CopyFile(path, dst); err != nil {
		return "", fmt.Errorf("error exporting file: %w", err)
	}
	w.logger.Info("File exported",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldOutputFile, dst))
	return dst, nil
}

// resolve finds name in dir, trying it as given and then with each sheet
// extension appended.
func (w *Workspace) resolve(dir, name string) (string, bool) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+"."+models.FileTypeCSV, name+"."+models.FileTypeXLSX)
	}
	for _, c := range candidates {
		path := filepath.Join(dir, c)
		if fileutils.FileExists(path) {
			return path, true
		}
	}
	return "", false
}

func listSheets(dir string) ([]string, error) {
	if !fileutils.DirectoryExists(dir) {
		return nil, nil
	}
	return fileutils.ListFilesWithExtension(dir, "."+models.FileTypeCSV, "."+models.FileTypeXLSX)
}

// ensureParent creates the parent directory of path.
func ensureParent(path string) error {
	return os.MkdirAll(filepath.Dir(path), models.PermissionDirectory)
}
