package sqlstore

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/domain"
	"github.com/phrazzld/tasklist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCreate(t *testing.T) {
	for _, d := range dialects {
		t.Run(d.Name(), func(t *testing.T) {
			q := newUserQueries(d)

			t.Run("success", func(t *testing.T) {
				db, mock := newMockDB(t)
				mock.ExpectExec(q.insert).
					WithArgs(sqlmock.AnyArg(), "thiago").
					WillReturnResult(sqlmock.NewResult(0, 1))

				id, err := NewUserStore(db, d, nil).Create(context.Background(), domain.User{Name: "thiago"})
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, id)
				assert.NoError(t, mock.ExpectationsWereMet())
			})

			t.Run("name too long", func(t *testing.T) {
				db, mock := newMockDB(t)

				_, err := NewUserStore(db, d, nil).Create(context.Background(),
					domain.User{Name: strings.Repeat("a", 33)})
				assert.ErrorIs(t, err, domain.ErrUserNameTooLong)
				assert.NoError(t, mock.ExpectationsWereMet())
			})

			t.Run("identifier collision draws a new ID", func(t *testing.T) {
				db, mock := newMockDB(t)
				var first any
				mock.ExpectExec(q.insert).
					WithArgs(captureArg(&first), "thiago").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
				mock.ExpectExec(q.insert).
					WithArgs(sqlmock.AnyArg(), "thiago").
					WillReturnResult(sqlmock.NewResult(0, 1))

				id, err := NewUserStore(db, d, nil).Create(context.Background(), domain.User{Name: "thiago"})
				require.NoError(t, err)
				assert.NotEqual(t, first, d.EncodeID(id))
				assert.NoError(t, mock.ExpectationsWereMet())
			})

			t.Run("duplicate key", func(t *testing.T) {
				db, mock := newMockDB(t)
				for i := 0; i < maxCreateAttempts; i++ {
					mock.ExpectExec(q.insert).WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
				}

				_, err := NewUserStore(db, d, nil).Create(context.Background(), domain.User{Name: "thiago"})
				assert.ErrorIs(t, err, store.ErrDuplicate)

				var storeErr *store.StoreError
				require.ErrorAs(t, err, &storeErr)
				assert.Equal(t, "user", storeErr.Entity)
				assert.Equal(t, "create", storeErr.Operation)
				assert.NoError(t, mock.ExpectationsWereMet())
			})

			t.Run("other failures are not retried", func(t *testing.T) {
				db, mock := newMockDB(t)
				mock.ExpectExec(q.insert).WillReturnError(&mysql.MySQLError{Number: 1406, Message: "Data too long"})

				_, err := NewUserStore(db, d, nil).Create(context.Background(), domain.User{Name: "thiago"})
				assert.Error(t, err)
				assert.NotErrorIs(t, err, store.ErrDuplicate)
				assert.NoError(t, mock.ExpectationsWereMet())
			})
		})
	}
}

func TestUserStoreGet(t *testing.T) {
	for _, d := range dialects {
		t.Run(d.Name(), func(t *testing.T) {
			q := newUserQueries(d)
			id := uuid.New()

			t.Run("found", func(t *testing.T) {
				db, mock := newMockDB(t)
				mock.ExpectQuery(q.exists).WithArgs(d.EncodeID(id)).WillReturnRows(existsRows(true))
				mock.ExpectQuery(q.get).WithArgs(d.EncodeID(id)).
					WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("thiago"))

				user, err := NewUserStore(db, d, nil).Get(context.Background(), id)
				require.NoError(t, err)
				assert.Equal(t, domain.User{ID: id, Name: "thiago"}, user)
				assert.NoError(t, mock.ExpectationsWereMet())
			})

			t.Run("not found", func(t *testing.T) {
				db, mock := newMockDB(t)
				mock.ExpectQuery(q.exists).WithArgs(d.EncodeID(id)).WillReturnRows(existsRows(false))

				_, err := NewUserStore(db, d, nil).Get(context.Background(), id)
				assert.ErrorIs(t, err, store.ErrUserNotFound)
				assert.NoError(t, mock.ExpectationsWereMet())
			})
		})
	}
}

func TestUserStoreList(t *testing.T) {
	for _, d := range dialects {
		t.Run(d.Name(), func(t *testing.T) {
			q := newUserQueries(d)
			u1, u2 := uuid.New(), uuid.New()

			db, mock := newMockDB(t)
			mock.ExpectQuery(q.list).WillReturnRows(sqlmock.NewRows([]string{"uuid", "name"}).
				AddRow(d.EncodeID(u1), "thiago").
				AddRow(d.EncodeID(u2), "ana"))

			users, err := NewUserStore(db, d, nil).List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, map[uuid.UUID]domain.User{
				u1: {ID: u1, Name: "thiago"},
				u2: {ID: u2, Name: "ana"},
			}, users)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserStoreReplace(t *testing.T) {
	for _, d := range dialects {
		t.Run(d.Name(), func(t *testing.T) {
			q := newUserQueries(d)
			id := uuid.New()

			t.Run("success", func(t *testing.T) {
				db, mock := newMockDB(t)
				mock.ExpectBegin()
				mock.ExpectQuery(q.exists).WithArgs(d.EncodeID(id)).WillReturnRows(existsRows(true))
				mock.ExpectExec(q.update).WithArgs("ana", d.EncodeID(id)).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()

				err := NewUserStore(db, d, nil).Replace(context.Background(), id, domain.User{Name: "ana"})
				require.NoError(t, err)
				assert.NoError(t, mock.ExpectationsWereMet())
			})

			t.Run("missing user", func(t *testing.T) {
				db, mock := newMockDB(t)
				mock.ExpectBegin()
				mock.ExpectQuery(q.exists).WithArgs(d.EncodeID(id)).WillReturnRows(existsRows(false))
				mock.ExpectRollback()

				err := NewUserStore(db, d, nil).Replace(context.Background(), id, domain.User{Name: "ana"})
				assert.ErrorIs(t, err, store.ErrUserNotFound)
				assert.NoError(t, mock.ExpectationsWereMet())
			})
		})
	}
}

func TestUserStoreDelete(t *testing.T) {
	for _, d := range dialects {
		t.Run(d.Name(), func(t *testing.T) {
			q := newUserQueries(d)
			id := uuid.New()

			t.Run("success", func(t *testing.T) {
				db, mock := newMockDB(t)
				mock.ExpectBegin()
				mock.ExpectQuery(q.exists).WithArgs(d.EncodeID(id)).WillReturnRows(existsRows(true))
				mock.ExpectExec(q.delete).WithArgs(d.EncodeID(id)).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()

				require.NoError(t, NewUserStore(db, d, nil).Delete(context.Background(), id))
				assert.NoError(t, mock.ExpectationsWereMet())
			})

			t.Run("missing user", func(t *testing.T) {
				db, mock := newMockDB(t)
				mock.ExpectBegin()
				mock.ExpectQuery(q.exists).WithArgs(d.EncodeID(id)).WillReturnRows(existsRows(false))
				mock.ExpectRollback()

				err := NewUserStore(db, d, nil).Delete(context.Background(), id)
				assert.ErrorIs(t, err, store.ErrUserNotFound)
				assert.NoError(t, mock.ExpectationsWereMet())
			})
		})
	}
}

func TestUserStoreDeleteAll(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(newUserQueries(MySQL).deleteAll).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, NewUserStore(db, MySQL, nil).DeleteAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
