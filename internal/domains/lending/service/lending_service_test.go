package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "librarian-backend/internal/domains/book/model"
	"librarian-backend/internal/domains/lending/model"
	"librarian-backend/internal/domains/lending/repository"
	studentModel "librarian-backend/internal/domains/student/model"
	"librarian-backend/internal/infrastructure/memstore"
	"librarian-backend/internal/shared/patch"
	"librarian-backend/pkg/lock"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	ctx     context.Context
	store   *memstore.Store
	service *LendingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	svc := NewService(store.Lending(), lock.NoopLocker{}, Config{DefaultDueDays: 14, LockTTL: time.Second}).(*LendingService)
	svc.now = func() time.Time { return fixedNow }

	return &fixture{ctx: context.Background(), store: store, service: svc}
}

func (f *fixture) givenBook(t *testing.T, title string, quantity int) *bookModel.Book {
	t.Helper()
	b := bookModel.NewBook(title, "Herbert", quantity, fixedNow)
	require.NoError(t, f.store.Books().Create(f.ctx, b))
	return b
}

func (f *fixture) givenStudent(t *testing.T) *studentModel.Student {
	t.Helper()
	s := studentModel.NewStudent("Jane", "Doe", "7A", fixedNow)
	require.NoError(t, f.store.Students().Create(f.ctx, s))
	return s
}

func (f *fixture) book(t *testing.T, id uuid.UUID) *bookModel.Book {
	t.Helper()
	b, err := f.store.Books().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b
}

func (f *fixture) student(t *testing.T, id uuid.UUID) *studentModel.Student {
	t.Helper()
	s, err := f.store.Students().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func borrowReq(s *studentModel.Student, b *bookModel.Book) model.BorrowRequest {
	return model.BorrowRequest{StudentID: s.ID.String(), BookID: b.ID.String()}
}

func TestBorrow_AppendsHoldAndIncrementsCount(t *testing.T) {
	// arrange
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 2)
	student := f.givenStudent(t)

	// act
	resp, err := f.service.Borrow(f.ctx, borrowReq(student, book))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Book 'Dune' borrowed successfully", resp.Message)
	assert.Equal(t, fixedNow.AddDate(0, 0, 14), resp.DueDate)

	got := f.student(t, student.ID)
	require.Len(t, got.BorrowedBooks, 1)
	assert.Equal(t, book.ID, got.BorrowedBooks[0].BookID)
	assert.Equal(t, "Dune", got.BorrowedBooks[0].BookTitle)
	assert.Equal(t, fixedNow, got.BorrowedBooks[0].BorrowedDate)

	assert.Equal(t, 1, f.book(t, book.ID).BorrowedCount)
}

func TestBorrow_CustomDueDays(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)

	days := 3
	req := borrowReq(student, book)
	req.DueDays = &days

	resp, err := f.service.Borrow(f.ctx, req)

	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, 3), resp.DueDate)
}

func TestBorrow_NonPositiveDueDaysAccepted(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)

	days := 0
	req := borrowReq(student, book)
	req.DueDays = &days

	resp, err := f.service.Borrow(f.ctx, req)

	require.NoError(t, err)
	assert.Equal(t, fixedNow, resp.DueDate)
}

func TestBorrow_NoCopiesLeavesStateUnchanged(t *testing.T) {
	// arrange
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	first := f.givenStudent(t)
	second := f.givenStudent(t)
	_, err := f.service.Borrow(f.ctx, borrowReq(first, book))
	require.NoError(t, err)

	// act
	_, err = f.service.Borrow(f.ctx, borrowReq(second, book))

	// assert
	assert.ErrorIs(t, err, model.ErrNoCopiesAvailable)
	assert.Equal(t, 1, f.book(t, book.ID).BorrowedCount)
	assert.Empty(t, f.student(t, second.ID).BorrowedBooks)
}

func TestBorrow_DuplicateHoldLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 5)
	student := f.givenStudent(t)
	_, err := f.service.Borrow(f.ctx, borrowReq(student, book))
	require.NoError(t, err)

	_, err = f.service.Borrow(f.ctx, borrowReq(student, book))

	assert.ErrorIs(t, err, model.ErrAlreadyBorrowed)
	assert.Equal(t, 1, f.book(t, book.ID).BorrowedCount)
	assert.Len(t, f.student(t, student.ID).BorrowedBooks, 1)
}

func TestBorrow_NotFoundOrdering(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)

	_, err := f.service.Borrow(f.ctx, model.BorrowRequest{StudentID: "nope", BookID: "nope"})
	assert.ErrorIs(t, err, bookModel.ErrBookNotFound)

	_, err = f.service.Borrow(f.ctx, model.BorrowRequest{StudentID: uuid.NewString(), BookID: book.ID.String()})
	assert.ErrorIs(t, err, studentModel.ErrStudentNotFound)

	_, err = f.service.Borrow(f.ctx, model.BorrowRequest{StudentID: student.ID.String(), BookID: uuid.NewString()})
	assert.ErrorIs(t, err, bookModel.ErrBookNotFound)
}

func TestBorrow_MissingIDs(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Borrow(f.ctx, model.BorrowRequest{})

	assert.ErrorIs(t, err, model.ErrInvalidRequest)
}

func TestBorrowThenReturn_RestoresState(t *testing.T) {
	// arrange
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)
	bookBefore := f.book(t, book.ID)
	studentBefore := f.student(t, student.ID)

	// act
	_, err := f.service.Borrow(f.ctx, borrowReq(student, book))
	require.NoError(t, err)
	resp, err := f.service.Return(f.ctx, model.ReturnRequest{StudentID: student.ID.String(), BookID: book.ID.String()})

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Book 'Dune' returned successfully", resp.Message)
	assert.Equal(t, bookBefore, f.book(t, book.ID))
	assert.Equal(t, studentBefore, f.student(t, student.ID))
}

func TestReturn_WithoutHold(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)

	_, err := f.service.Return(f.ctx, model.ReturnRequest{StudentID: student.ID.String(), BookID: book.ID.String()})

	assert.ErrorIs(t, err, model.ErrNotBorrowed)
	assert.Equal(t, 0, f.book(t, book.ID).BorrowedCount)
}

func TestReturn_UnknownStudent(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)

	_, err := f.service.Return(f.ctx, model.ReturnRequest{StudentID: uuid.NewString(), BookID: book.ID.String()})

	assert.ErrorIs(t, err, studentModel.ErrStudentNotFound)
}

func TestReturn_AfterBookDeleted(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)
	_, err := f.service.Borrow(f.ctx, borrowReq(student, book))
	require.NoError(t, err)
	_, err = f.store.Books().Delete(f.ctx, book.ID)
	require.NoError(t, err)

	resp, err := f.service.Return(f.ctx, model.ReturnRequest{StudentID: student.ID.String(), BookID: book.ID.String()})

	require.NoError(t, err)
	assert.Equal(t, "Book 'Dune' returned successfully", resp.Message)
	assert.Empty(t, f.student(t, student.ID).BorrowedBooks)
}

func TestScanOverdue(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)
	days := 2
	req := borrowReq(student, book)
	req.DueDays = &days
	_, err := f.service.Borrow(f.ctx, req)
	require.NoError(t, err)

	none, err := f.service.ScanOverdue(f.ctx, fixedNow.AddDate(0, 0, 1), 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	late, err := f.service.ScanOverdue(f.ctx, fixedNow.AddDate(0, 0, 5), 0)
	require.NoError(t, err)
	require.Len(t, late, 1)
	assert.Equal(t, 3, late[0].DaysOverdue)
	assert.Equal(t, "7A", late[0].ClassName)
}

func TestReconcile(t *testing.T) {
	// arrange: deleting a student with a hold leaves borrowed_count behind
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 2)
	student := f.givenStudent(t)
	_, err := f.service.Borrow(f.ctx, borrowReq(student, book))
	require.NoError(t, err)
	_, err = f.store.Students().Delete(f.ctx, student.ID)
	require.NoError(t, err)

	// act
	dry, err := f.service.Reconcile(f.ctx, true)
	require.NoError(t, err)
	require.Len(t, dry, 1)
	assert.Equal(t, 1, f.book(t, book.ID).BorrowedCount)

	drifts, err := f.service.Reconcile(f.ctx, false)

	// assert
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, 1, drifts[0].Recorded)
	assert.Equal(t, 0, drifts[0].Actual)
	assert.Equal(t, 0, f.book(t, book.ID).BorrowedCount)
}

type busyLocker struct{}

func (busyLocker) Lock(context.Context, string, time.Duration) (lock.Unlock, error) {
	return nil, lock.ErrNotAcquired
}

func TestBorrow_LockBusy(t *testing.T) {
	f := newFixture(t)
	f.service.locker = busyLocker{}
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)

	_, err := f.service.Borrow(f.ctx, borrowReq(student, book))

	assert.ErrorIs(t, err, model.ErrLockBusy)
	assert.Equal(t, 0, f.book(t, book.ID).BorrowedCount)
}

func TestListOverdue_UsesCurrentTime(t *testing.T) {
	f := newFixture(t)
	onTime := f.givenBook(t, "Dune", 1)
	late := f.givenBook(t, "Emma", 1)
	student := f.givenStudent(t)
	_, err := f.service.Borrow(f.ctx, borrowReq(student, onTime))
	require.NoError(t, err)
	days := -1
	req := borrowReq(student, late)
	req.DueDays = &days
	_, err = f.service.Borrow(f.ctx, req)
	require.NoError(t, err)

	holds, err := f.service.ListOverdue(f.ctx)

	require.NoError(t, err)
	require.Len(t, holds, 1)
	assert.Equal(t, late.ID, holds[0].BookID)
}

func TestBorrow_DueDaysOutOfRange(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)

	for _, days := range []int{model.MaxDueDays + 1, -model.MaxDueDays - 1, 3000000} {
		req := borrowReq(student, book)
		d := days
		req.DueDays = &d

		_, err := f.service.Borrow(f.ctx, req)

		assert.ErrorIs(t, err, model.ErrInvalidRequest, "due_days=%d", days)
	}
	assert.Equal(t, 0, f.book(t, book.ID).BorrowedCount)
	assert.Empty(t, f.student(t, student.ID).BorrowedBooks)
}

func TestBorrow_DueDaysAtLimit(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)
	days := model.MaxDueDays
	req := borrowReq(student, book)
	req.DueDays = &days

	resp, err := f.service.Borrow(f.ctx, req)

	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, days), resp.DueDate)
}

// borrowAfterScan lets a borrow land between the drift scan and the repair.
type borrowAfterScan struct {
	repository.RepositoryInterface
	afterScan func()
}

func (r borrowAfterScan) FindCountDrift(ctx context.Context) ([]model.CountDrift, error) {
	drifts, err := r.RepositoryInterface.FindCountDrift(ctx)
	r.afterScan()
	return drifts, err
}

func TestReconcile_BorrowBetweenScanAndRepair(t *testing.T) {
	// arrange: one copy left drifting after its holder was deleted
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 2)
	gone := f.givenStudent(t)
	_, err := f.service.Borrow(f.ctx, borrowReq(gone, book))
	require.NoError(t, err)
	_, err = f.store.Students().Delete(f.ctx, gone.ID)
	require.NoError(t, err)

	reader := f.givenStudent(t)
	f.service.repo = borrowAfterScan{
		RepositoryInterface: f.store.Lending(),
		afterScan: func() {
			_, err := f.store.Lending().Borrow(f.ctx, reader.ID, book.ID, fixedNow, 14)
			require.NoError(t, err)
		},
	}

	// act
	drifts, err := f.service.Reconcile(f.ctx, false)

	// assert
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, 2, drifts[0].Recorded)
	assert.Equal(t, 1, drifts[0].Actual)
	assert.Equal(t, 1, f.book(t, book.ID).BorrowedCount)

	f.service.repo = f.store.Lending()
	_, err = f.service.Borrow(f.ctx, borrowReq(f.givenStudent(t), book))
	require.NoError(t, err)
	_, err = f.service.Borrow(f.ctx, borrowReq(f.givenStudent(t), book))
	assert.ErrorIs(t, err, model.ErrNoCopiesAvailable)
}

func TestReconcile_SkipsBusyBook(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 2)
	student := f.givenStudent(t)
	_, err := f.service.Borrow(f.ctx, borrowReq(student, book))
	require.NoError(t, err)
	_, err = f.store.Students().Delete(f.ctx, student.ID)
	require.NoError(t, err)
	f.service.locker = busyLocker{}

	drifts, err := f.service.Reconcile(f.ctx, false)

	require.NoError(t, err)
	assert.Empty(t, drifts)
	assert.Equal(t, 1, f.book(t, book.ID).BorrowedCount)
}

func TestReturn_UsesBorrowTimeTitle(t *testing.T) {
	f := newFixture(t)
	book := f.givenBook(t, "Dune", 1)
	student := f.givenStudent(t)
	_, err := f.service.Borrow(f.ctx, borrowReq(student, book))
	require.NoError(t, err)
	_, err = f.store.Books().Update(f.ctx, book.ID, bookModel.BookPatch{Title: patch.Set("Dune Messiah")})
	require.NoError(t, err)

	resp, err := f.service.Return(f.ctx, model.ReturnRequest{StudentID: student.ID.String(), BookID: book.ID.String()})

	require.NoError(t, err)
	assert.Equal(t, "Book 'Dune' returned successfully", resp.Message)
	assert.Equal(t, 0, f.book(t, book.ID).BorrowedCount)
}
