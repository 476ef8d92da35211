package sqlstore

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenerSessionSharesConnection(t *testing.T) {
	db, mock := newMockDB(t)
	tq, uq := newTaskQueries(MySQL), newUserQueries(MySQL)
	owner := uuid.New()

	mock.ExpectExec(uq.insert).WithArgs(sqlmock.AnyArg(), "thiago").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectBegin()
	mock.ExpectQuery(tq.ownerExists).WithArgs(MySQL.EncodeID(owner)).WillReturnRows(existsRows(true))
	mock.ExpectExec(tq.insert).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	session, err := NewOpener(db, MySQL, nil).Open(context.Background())
	require.NoError(t, err)

	_, err = session.Users().Create(context.Background(), domainUser("thiago"))
	require.NoError(t, err)
	_, err = session.Tasks().Create(context.Background(), domainTask(owner))
	require.NoError(t, err)

	assert.NoError(t, session.Close())
	assert.NoError(t, session.Close(), "second close is a no-op")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenerFailsOnClosedPool(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectClose()
	require.NoError(t, db.Close())

	session, err := NewOpener(db, Postgres, nil).Open(context.Background())
	assert.Nil(t, session)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open session")
}

func TestOpenerImplementsInterface(t *testing.T) {
	db, _ := newMockDB(t)
	var opener store.SessionOpener = NewOpener(db, Postgres, nil)
	assert.NotNil(t, opener)
	assert.Panics(t, func() { NewOpener(nil, Postgres, nil) })
}
