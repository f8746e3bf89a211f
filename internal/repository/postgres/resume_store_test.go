package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/common"
)

func newResumeStore(t *testing.T) (*ResumeStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewResumeStore(db), mock
}

func TestResumeStoreWritesFileRowLast(t *testing.T) {
	store, mock := newResumeStore(t)
	content := []byte("%PDF-1.4 resume body")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resume_chunks").
		WithArgs(sqlmock.AnyArg(), 0, content).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO resume_files").
		WithArgs(sqlmock.AnyArg(), "cv.pdf", "application/pdf", int64(len(content)), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := store.Store(context.Background(), bytes.NewReader(content), "cv.pdf", "application/pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumeStoreSplitsLargePayload(t *testing.T) {
	store, mock := newResumeStore(t)
	content := bytes.Repeat([]byte("a"), chunkSize+10)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resume_chunks").
		WithArgs(sqlmock.AnyArg(), 0, content[:chunkSize]).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO resume_chunks").
		WithArgs(sqlmock.AnyArg(), 1, content[chunkSize:]).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO resume_files").
		WithArgs(sqlmock.AnyArg(), "cv.pdf", "application/pdf", int64(len(content)), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := store.Store(context.Background(), bytes.NewReader(content), "cv.pdf", "application/pdf")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumeStoreRollsBackOnChunkFailure(t *testing.T) {
	store, mock := newResumeStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resume_chunks").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := store.Store(context.Background(), bytes.NewReader([]byte("body")), "cv.pdf", "application/pdf")
	require.Error(t, err)
	assert.True(t, common.Is(err, common.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumeStoreRetrieveStreamsChunksInOrder(t *testing.T) {
	store, mock := newResumeStore(t)
	id := common.NewUUID()
	now := time.Now().UTC()

	mock.ExpectQuery("FROM resume_files WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "filename", "content_type", "length", "created_at"}).
			AddRow(id, "cv.pdf", "application/pdf", int64(10), now))
	mock.ExpectQuery("FROM resume_chunks WHERE file_id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow([]byte("01234")).
			AddRow([]byte("56789")))

	meta, reader, err := store.Retrieve(context.Background(), id)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "application/pdf", meta.ContentType)
	assert.Equal(t, int64(10), meta.Length)

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("0123456789"), content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumeStoreRetrieveUnknownID(t *testing.T) {
	store, mock := newResumeStore(t)
	id := common.NewUUID()

	mock.ExpectQuery("FROM resume_files WHERE id").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, _, err := store.Retrieve(context.Background(), id)
	require.Error(t, err)
	assert.True(t, common.Is(err, common.CodeNotFound))
	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "File not found", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
