package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"librarian-backend/internal/domains/student/model"
)

const (
	tableStudents = "students"
	dialect       = "postgres"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresRepository implements RepositoryInterface on pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new student repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, s *model.Student) error {
	query := `
		INSERT INTO students (id, first_name, last_name, class_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.pool.Exec(ctx, query, s.ID, s.FirstName, s.LastName, s.ClassName, s.CreatedAt); err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	query := `
		SELECT id, first_name, last_name, class_name, created_at
		FROM students
		WHERE id = $1
	`

	var s model.Student
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.ClassName,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student by id: %w", err)
	}

	students := []*model.Student{&s}
	if err := LoadHolds(ctx, r.pool, students); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *postgresRepository) List(ctx context.Context, limit int) ([]*model.Student, error) {
	query := `
		SELECT id, first_name, last_name, class_name, created_at
		FROM students
		ORDER BY created_at ASC, id ASC
		LIMIT $1
	`
	return r.queryStudents(ctx, query, limit)
}

func (r *postgresRepository) ListByClass(ctx context.Context, className string, limit int) ([]*model.Student, error) {
	query := `
		SELECT id, first_name, last_name, class_name, created_at
		FROM students
		WHERE class_name = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2
	`
	return r.queryStudents(ctx, query, className, limit)
}

func (r *postgresRepository) DistinctClasses(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT class_name FROM students ORDER BY class_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer rows.Close()

	classes := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan class name: %w", err)
		}
		classes = append(classes, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", err)
	}

	return classes, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, p model.StudentPatch) (*model.Student, error) {
	query, args, err := BuildUpdateStatement(id, p)
	if err != nil {
		return nil, err
	}

	var updatedID uuid.UUID
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete student: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) ExistsByIdentity(ctx context.Context, identity model.Identity) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM students
			WHERE first_name = $1 AND last_name = $2 AND class_name = $3
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, identity.FirstName, identity.LastName, identity.ClassName).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check student identity: %w", err)
	}
	return exists, nil
}

// BuildUpdateStatement renders the sparse UPDATE for p. Only set fields
// appear in the SET clause.
func BuildUpdateStatement(id uuid.UUID, p model.StudentPatch) (string, []interface{}, error) {
	record := goqu.Record{}
	if v, ok := p.FirstName.Get(); ok {
		record["first_name"] = v
	}
	if v, ok := p.LastName.Get(); ok {
		record["last_name"] = v
	}
	if v, ok := p.ClassName.Get(); ok {
		record["class_name"] = v
	}

	if len(record) == 0 {
		return "", nil, model.ErrEmptyUpdate
	}

	query, args, err := goqu.Dialect(dialect).
		Update(tableStudents).
		Prepared(true).
		Set(record).
		Where(goqu.C("id").Eq(id.String())).
		Returning("id").
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build student update: %w", err)
	}

	return query, args, nil
}

func (r *postgresRepository) queryStudents(ctx context.Context, query string, args ...any) ([]*model.Student, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := make([]*model.Student, 0)
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.ClassName, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	if err := LoadHolds(ctx, r.pool, students); err != nil {
		return nil, err
	}

	return students, nil
}

// LoadHolds fills BorrowedBooks for every student in one query, keeping
// borrow order.
func LoadHolds(ctx context.Context, q Querier, students []*model.Student) error {
	if len(students) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*model.Student, len(students))
	ids := make([]string, 0, len(students))
	for _, s := range students {
		s.BorrowedBooks = []model.BorrowedBook{}
		byID[s.ID] = s
		ids = append(ids, s.ID.String())
	}

	query := `
		SELECT student_id, book_id, book_title, borrowed_date, due_date
		FROM borrowed_books
		WHERE student_id = ANY($1::uuid[])
		ORDER BY seq ASC
	`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load borrowed books: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var studentID uuid.UUID
		var hold model.BorrowedBook
		if err := rows.Scan(&studentID, &hold.BookID, &hold.BookTitle, &hold.BorrowedDate, &hold.DueDate); err != nil {
			return fmt.Errorf("failed to scan borrowed book: %w", err)
		}
		if s, ok := byID[studentID]; ok {
			s.BorrowedBooks = append(s.BorrowedBooks, hold)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating borrowed books: %w", err)
	}

	return nil
}
