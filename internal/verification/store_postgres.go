package verification

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dErrors "github.com/HasbiyallahuJafaru/E-KYC/pkg/domain-errors"
	"github.com/HasbiyallahuJafaru/E-KYC/pkg/platform/sentinel"
)

// PostgresStore persists verifications in Postgres. Input and result are
// stored as JSONB so the schema survives additive changes to either.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, v Verification) error {
	input, result, err := marshalPayloads(v)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO verifications (id, type, status, input, result, failure_code, failure_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.Type, v.Status, input, result, v.FailureCode, v.FailureReason, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "insert verification")
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, v Verification) error {
	input, result, err := marshalPayloads(v)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE verifications
		SET status = $2, input = $3, result = $4, failure_code = $5, failure_reason = $6, updated_at = $7
		WHERE id = $1`,
		v.ID, v.Status, input, result, v.FailureCode, v.FailureReason, v.UpdatedAt,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "update verification")
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Verification, error) {
	var (
		v      Verification
		input  []byte
		result []byte
	)
	row := s.pool.QueryRow(ctx, `
		SELECT id, type, status, input, result, failure_code, failure_reason, created_at, updated_at
		FROM verifications WHERE id = $1`, id)
	err := row.Scan(&v.ID, &v.Type, &v.Status, &input, &result, &v.FailureCode, &v.FailureReason, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Verification{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Verification{}, dErrors.Wrap(err, dErrors.CodeInternal, "select verification")
	}
	if err := json.Unmarshal(input, &v.Input); err != nil {
		return Verification{}, dErrors.Wrap(err, dErrors.CodeInternal, "decode verification input")
	}
	if len(result) > 0 {
		v.Result = &Result{}
		if err := json.Unmarshal(result, v.Result); err != nil {
			return Verification{}, dErrors.Wrap(err, dErrors.CodeInternal, "decode verification result")
		}
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v, nil
}

func marshalPayloads(v Verification) (input []byte, result []byte, err error) {
	input, err = json.Marshal(v.Input)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode verification input")
	}
	if v.Result != nil {
		result, err = json.Marshal(v.Result)
		if err != nil {
			return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode verification result")
		}
	}
	return input, result, nil
}

var _ Store = (*PostgresStore)(nil)
