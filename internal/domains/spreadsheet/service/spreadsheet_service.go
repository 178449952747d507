package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	bookModel "librarian-backend/internal/domains/book/model"
	bookRepo "librarian-backend/internal/domains/book/repository"
	"librarian-backend/internal/domains/spreadsheet/model"
	"librarian-backend/internal/domains/spreadsheet/workbook"
	studentModel "librarian-backend/internal/domains/student/model"
	studentRepo "librarian-backend/internal/domains/student/repository"
	types "librarian-backend/internal/shared"
)

const timestampLayout = "2006-01-02 15:04:05"

var (
	studentHeaders = []string{"first_name", "last_name", "class_name", "borrowed_books", "created_at"}
	bookHeaders    = []string{"title", "author", "quantity", "borrowed_count", "available", "created_at"}
)

type SpreadsheetService struct {
	students studentRepo.RepositoryInterface
	books    bookRepo.RepositoryInterface
	classes  ClassEnsurer
	archiver Archiver // nil when object storage is disabled
	now      func() time.Time
}

func NewService(
	students studentRepo.RepositoryInterface,
	books bookRepo.RepositoryInterface,
	classes ClassEnsurer,
	archiver Archiver,
) ServiceInterface {
	return &SpreadsheetService{
		students: students,
		books:    books,
		classes:  classes,
		archiver: archiver,
		now:      time.Now,
	}
}

// ImportStudents creates one student per valid row. A row whose exact
// (first, last, class) already exists, including one added earlier from the
// same file, is reported as skipped.
func (s *SpreadsheetService) ImportStudents(ctx context.Context, filename string, data []byte) (*model.ImportStudentsResult, error) {
	rows, err := s.openUpload(ctx, model.KindStudents, filename, data)
	if err != nil {
		return nil, err
	}

	result := &model.ImportStudentsResult{Added: []string{}, Skipped: []string{}}

	for i, cells := range rows {
		row, ok := model.ParseStudentRow(cells)
		if !ok {
			log.Debug().Int("row", i+2).Msg("student import: incomplete row skipped")
			continue
		}

		if err := s.classes.EnsureClass(ctx, row.ClassName); err != nil {
			return nil, fmt.Errorf("import students row %d: %w", i+2, err)
		}

		identity := studentModel.Identity{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			ClassName: row.ClassName,
		}
		exists, err := s.students.ExistsByIdentity(ctx, identity)
		if err != nil {
			return nil, fmt.Errorf("import students row %d: %w", i+2, err)
		}
		if exists {
			result.Skipped = append(result.Skipped, row.Describe()+" - already exists")
			continue
		}

		student := studentModel.NewStudent(row.FirstName, row.LastName, row.ClassName, s.now())
		if err := s.students.Create(ctx, student); err != nil {
			return nil, fmt.Errorf("import students row %d: %w", i+2, err)
		}
		result.Added = append(result.Added, row.Describe())
	}

	log.Info().
		Str("filename", filename).
		Int("added", len(result.Added)).
		Int("skipped", len(result.Skipped)).
		Msg("students imported")

	return result, nil
}

// ImportBooks adds copies to an existing (title, author) match or creates
// the book.
func (s *SpreadsheetService) ImportBooks(ctx context.Context, filename string, data []byte) (*model.ImportBooksResult, error) {
	rows, err := s.openUpload(ctx, model.KindBooks, filename, data)
	if err != nil {
		return nil, err
	}

	result := &model.ImportBooksResult{Added: []string{}, Updated: []string{}}

	for i, cells := range rows {
		row, ok := model.ParseBookRow(cells)
		if !ok {
			log.Debug().Int("row", i+2).Msg("book import: invalid row skipped")
			continue
		}

		book := bookModel.NewBook(row.Title, row.Author, row.Quantity, s.now())
		merged, created, err := s.books.MergeCopies(ctx, book)
		if err != nil {
			return nil, fmt.Errorf("import books row %d: %w", i+2, err)
		}

		if created {
			result.Added = append(result.Added, fmt.Sprintf("%s by %s (%d copies)", row.Title, row.Author, row.Quantity))
			continue
		}
		result.Updated = append(result.Updated, fmt.Sprintf("%s by %s (+%d copies, now %d)",
			row.Title, row.Author, row.Quantity, merged.Quantity))
	}

	log.Info().
		Str("filename", filename).
		Int("added", len(result.Added)).
		Int("updated", len(result.Updated)).
		Msg("books imported")

	return result, nil
}

func (s *SpreadsheetService) ExportStudents(ctx context.Context) (*model.ExportFile, error) {
	students, err := s.students.List(ctx, types.MaxFetch)
	if err != nil {
		return nil, fmt.Errorf("export students: %w", err)
	}
	if len(students) == 0 {
		return &model.ExportFile{Empty: "No students to export"}, nil
	}

	rows := make([][]interface{}, 0, len(students))
	for _, st := range students {
		titles := make([]string, 0, len(st.BorrowedBooks))
		for _, h := range st.BorrowedBooks {
			titles = append(titles, h.BookTitle)
		}
		rows = append(rows, []interface{}{
			st.FirstName,
			st.LastName,
			st.ClassName,
			strings.Join(titles, "; "),
			st.CreatedAt.UTC().Format(timestampLayout),
		})
	}

	return s.render(model.KindStudents, "Students", studentHeaders, rows)
}

func (s *SpreadsheetService) ExportBooks(ctx context.Context) (*model.ExportFile, error) {
	books, err := s.books.List(ctx, types.MaxFetch)
	if err != nil {
		return nil, fmt.Errorf("export books: %w", err)
	}
	if len(books) == 0 {
		return &model.ExportFile{Empty: "No books to export"}, nil
	}

	rows := make([][]interface{}, 0, len(books))
	for _, b := range books {
		rows = append(rows, []interface{}{
			b.Title,
			b.Author,
			b.Quantity,
			b.BorrowedCount,
			b.Available,
			b.CreatedAt.UTC().Format(timestampLayout),
		})
	}

	return s.render(model.KindBooks, "Books", bookHeaders, rows)
}

func (s *SpreadsheetService) render(kind model.Kind, sheet string, headers []string, rows [][]interface{}) (*model.ExportFile, error) {
	data, err := workbook.Write(sheet, headers, rows)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", kind, err)
	}

	return &model.ExportFile{
		Filename: fmt.Sprintf("%s_%s.xlsx", kind, s.now().UTC().Format("2006-01-02")),
		Data:     data,
	}, nil
}

// openUpload validates the extension, archives the upload and returns the
// data rows.
func (s *SpreadsheetService) openUpload(ctx context.Context, kind model.Kind, filename string, data []byte) ([][]string, error) {
	if !workbook.HasSupportedExtension(filename) {
		return nil, model.ErrUnsupportedFile
	}

	s.archive(ctx, kind, filename, data)

	rows, err := workbook.ReadDataRows(bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("unreadable workbook")
		return nil, model.NewUnreadableError(err)
	}
	return rows, nil
}

func (s *SpreadsheetService) archive(ctx context.Context, kind model.Kind, filename string, data []byte) {
	if s.archiver == nil {
		return
	}

	key := ArchiveKey(kind, filename, s.now())
	if err := s.archiver.Upload(ctx, key, data, workbook.ContentType); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to archive import workbook")
		return
	}
	log.Debug().Str("key", key).Msg("import workbook archived")
}

// ArchivePrefix is the object key prefix shared by every archived upload.
const ArchivePrefix = "imports/"

// ArchiveKey is imports/<kind>/<timestamp>_<base filename>.
func ArchiveKey(kind model.Kind, filename string, at time.Time) string {
	return fmt.Sprintf("%s%s/%s_%s", ArchivePrefix, kind, at.UTC().Format("20060102T150405Z"), filepath.Base(filename))
}
