package favorites

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+favorites\s*\(id,\s*owner_email,\s*bio_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)`

	mock.ExpectExec(q).
		WithArgs("f-1", "bob@example.com", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Favorite{ID: "f-1", OwnerEmail: "bob@example.com", BioID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+favorites`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Favorite{ID: "f-1"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+f\.id,.*FROM\s+favorites\s+f\s+JOIN\s+profiles\s+p\s+ON\s+p\.bio_id\s*=\s*f\.bio_id\s+WHERE\s+f\.owner_email\s*=\s*\$1\s+ORDER\s+BY\s+f\.created_at`

	rows := sqlmock.NewRows([]string{"id", "owner_email", "bio_id", "created_at", "name", "permanent_division", "occupation"}).
		AddRow("f-1", "bob@example.com", int64(1), time.Now(), "Alice", "Dhaka", "engineer").
		AddRow("f-2", "bob@example.com", int64(1), time.Now(), "Alice", "Dhaka", "engineer")
	mock.ExpectQuery(q).WithArgs("bob@example.com").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "bob@example.com")
	if err != nil || len(got) != 2 {
		t.Fatalf("ListByOwner: len=%d err=%v", len(got), err)
	}
	if got[0].Name != "Alice" || got[0].PermanentDivision != "Dhaka" {
		t.Fatalf("joined fields: %+v", got[0])
	}
}

func TestDelete_OwnerScoped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)DELETE\s+FROM\s+favorites\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_email\s*=\s*\$2`

	mock.ExpectExec(q).
		WithArgs("f-1", "bob@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Delete(context.Background(), "f-1", "bob@example.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// somebody else's record
	mock.ExpectExec(q).
		WithArgs("f-1", "carol@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(context.Background(), "f-1", "carol@example.com"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
