package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/resume"
)

const chunkSize = 255 * 1024

// ResumeStore keeps resume binaries in two tables: resume_files carries the
// metadata, resume_chunks the payload split into fixed-size pieces. Both are
// written in one transaction with the file row last, so a file id only becomes
// visible once every byte is durable.
type ResumeStore struct {
	db *sql.DB
}

func NewResumeStore(db *sql.DB) *ResumeStore {
	return &ResumeStore{db: db}
}

func (s *ResumeStore) Store(ctx context.Context, r io.Reader, filename, contentType string) (common.UUID, error) {
	id := common.NewUUID()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to store resume", err)
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	buf := make([]byte, chunkSize)
	for seq := 0; ; seq++ {
		n, readErr := io.ReadFull(r, buf)
		if n > 0 {
			if _, err := tx.ExecContext(ctx, `INSERT INTO resume_chunks (file_id, seq, data) VALUES ($1, $2, $3)`, id, seq, buf[:n]); err != nil {
				return "", common.NewError(common.CodeInternal, "failed to store resume", err)
			}
			total += int64(n)
		}
		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return "", common.NewError(common.CodeInternal, "failed to read resume", readErr)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO resume_files (id, filename, content_type, length, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, filename, contentType, total, time.Now().UTC()); err != nil {
		return "", common.NewError(common.CodeInternal, "failed to store resume", err)
	}
	if err := tx.Commit(); err != nil {
		return "", common.NewError(common.CodeInternal, "failed to store resume", err)
	}
	return id, nil
}

func (s *ResumeStore) Retrieve(ctx context.Context, id common.UUID) (*resume.File, io.ReadCloser, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, filename, content_type, length, created_at FROM resume_files WHERE id = $1`, id)
	var f resume.File
	if err := row.Scan(&f.ID, &f.Filename, &f.ContentType, &f.Length, &f.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, common.NewError(common.CodeNotFound, "File not found", err)
		}
		return nil, nil, common.NewError(common.CodeInternal, "failed to load resume", err)
	}
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM resume_chunks WHERE file_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, nil, common.NewError(common.CodeInternal, "failed to load resume", err)
	}
	return &f, &chunkReader{rows: rows}, nil
}

func (s *ResumeStore) Delete(ctx context.Context, id common.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete resume", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM resume_chunks WHERE file_id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete resume", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM resume_files WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete resume", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete resume", err)
	}
	if affected == 0 {
		return common.NewError(common.CodeNotFound, "File not found", nil)
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete resume", err)
	}
	return nil
}

// chunkReader streams chunk rows in sequence order. It holds a connection
// until closed.
type chunkReader struct {
	rows *sql.Rows
	buf  []byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if !r.rows.Next() {
			if err := r.rows.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		if err := r.rows.Scan(&r.buf); err != nil {
			return 0, err
		}
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

func (r *chunkReader) Close() error {
	return r.rows.Close()
}
