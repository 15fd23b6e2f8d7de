package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bocho8/chronos/internal/engine"
	"github.com/bocho8/chronos/internal/models"
	appErrors "github.com/bocho8/chronos/pkg/errors"
	"github.com/bocho8/chronos/pkg/export"
)

type exportAssignmentStore interface {
	ListByGroup(ctx context.Context, groupID string) ([]models.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Assignment, error)
}

// ExportService renders weekly timetables as CSV or PDF. Rows are time
// blocks, columns are weekdays, one document per group or teacher.
type ExportService struct {
	store   exportAssignmentStore
	catalog catalogSource
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService instantiates ExportService.
func NewExportService(store exportAssignmentStore, catalog catalogSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		store:   store,
		catalog: catalog,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

// GroupTimetableCSV renders a group's weekly timetable as CSV.
func (s *ExportService) GroupTimetableCSV(ctx context.Context, groupID string) ([]byte, string, error) {
	data, title, err := s.groupDataset(ctx, groupID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, title, nil
}

// GroupTimetablePDF renders a group's weekly timetable as PDF.
func (s *ExportService) GroupTimetablePDF(ctx context.Context, groupID string) ([]byte, string, error) {
	data, title, err := s.groupDataset(ctx, groupID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.Render(data, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, title, nil
}

// TeacherTimetablePDF renders a teacher's weekly timetable as PDF.
func (s *ExportService) TeacherTimetablePDF(ctx context.Context, teacherID string) ([]byte, string, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}
	catalog := engine.NewCatalog(snap)
	teacher, ok := catalog.Teacher(teacherID)
	if !ok {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	assignments, err := s.store.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}

	data := s.timetableDataset(catalog, assignments, func(a models.Assignment) string {
		subject := a.SubjectID
		if sub, ok := catalog.Subject(a.SubjectID); ok {
			subject = sub.Name
		}
		group := a.GroupID
		if g, ok := catalog.Group(a.GroupID); ok {
			group = g.Name
		}
		return fmt.Sprintf("%s (%s)", subject, group)
	})
	title := fmt.Sprintf("Horario semanal - %s", teacher.FullName)

	payload, err := s.pdf.Render(data, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, title, nil
}

func (s *ExportService) groupDataset(ctx context.Context, groupID string) (export.Dataset, string, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return export.Dataset{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}
	catalog := engine.NewCatalog(snap)
	group, ok := catalog.Group(groupID)
	if !ok {
		return export.Dataset{}, "", appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}

	assignments, err := s.store.ListByGroup(ctx, groupID)
	if err != nil {
		return export.Dataset{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}

	data := s.timetableDataset(catalog, assignments, func(a models.Assignment) string {
		subject := a.SubjectID
		if sub, ok := catalog.Subject(a.SubjectID); ok {
			subject = sub.Name
		}
		teacher := a.TeacherID
		if t, ok := catalog.Teacher(a.TeacherID); ok {
			teacher = t.FullName
		}
		return fmt.Sprintf("%s (%s)", subject, teacher)
	})
	title := fmt.Sprintf("Horario semanal - %s", group.Name)
	return data, title, nil
}

// timetableDataset lays assignments into a block-by-day table. cellText
// decides what each occupied cell shows.
func (s *ExportService) timetableDataset(catalog *engine.Catalog, assignments []models.Assignment, cellText func(models.Assignment) string) export.Dataset {
	headers := []string{"Bloque"}
	for _, day := range models.Weekdays() {
		headers = append(headers, string(day))
	}

	cells := make(map[string]map[models.Weekday]string)
	for _, a := range assignments {
		if cells[a.BlockID] == nil {
			cells[a.BlockID] = make(map[models.Weekday]string)
		}
		cells[a.BlockID][a.Day] = cellText(a)
	}

	rows := make([]map[string]string, 0, len(catalog.Blocks()))
	for _, block := range catalog.Blocks() {
		row := map[string]string{"Bloque": fmt.Sprintf("%s (%s-%s)", block.Label, block.StartTime, block.EndTime)}
		for _, day := range models.Weekdays() {
			row[string(day)] = cells[block.ID][day]
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
