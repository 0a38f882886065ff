package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/booking/model"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/logger"
	gRepo "shareit/shared/repository"
	"time"

	"github.com/Masterminds/squirrel"
)

const (
	colID        = model.TableName + "." + model.FieldID
	colItemID    = model.TableName + "." + model.FieldItemID
	colBookerID  = model.TableName + "." + model.FieldBookerID
	colStartDate = model.TableName + "." + model.FieldStartDate
	colEndDate   = model.TableName + "." + model.FieldEndDate
	colStatus    = model.TableName + "." + model.FieldStatus

	lockSuffix = "FOR UPDATE OF " + model.TableName
)

// Decider inspects the locked booking and returns the status to move it to.
type Decider func(current model.Booking) (model.Status, error)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Transition(ctx context.Context, id, actor string, at time.Time, decide Decider) (model.Booking, error)
	LastApproved(ctx context.Context, itemID string, now time.Time) (*model.Booking, error)
	NextApproved(ctx context.Context, itemID string, now time.Time) (*model.Booking, error)
	HasCompleted(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
	psql squirrel.StatementBuilderType
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
		psql:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *repositoryImpl) selectBookings() squirrel.SelectBuilder {
	return r.psql.
		Select(r.SelectColumns()...).
		From(r.Table()).
		JoinClause(r.Join())
}

func (r *repositoryImpl) lockQuery(id string) squirrel.SelectBuilder {
	return r.selectBookings().
		Where(squirrel.Eq{colID: id}).
		Suffix(lockSuffix)
}

// Transition reads the booking under a row lock, asks decide for the next status
// and writes it in the same transaction. Concurrent callers queue on the lock and
// the later one observes the status the earlier one committed.
func (r *repositoryImpl) Transition(ctx context.Context, id, actor string, at time.Time, decide Decider) (res model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	at = at.UTC()

	tx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to begin booking transition: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	query, args, err := r.lockQuery(id).ToSql()
	if err != nil {
		return res, fmt.Errorf("failed to build booking lock query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.GetContext(ctx, &res, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, failure.NotFoundf(model.EntityName, id) // nolint:wrapcheck
		}

		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to lock booking: %w", err)
	}

	next, err := decide(res)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	update := map[string]any{
		model.FieldStatus:        next,
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: actor,
	}

	if err = r.UpdateTx(ctx, tx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return res, fmt.Errorf("failed to write booking status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to commit booking transition: %w", err)
	}

	res.Status = next
	res.ModifiedAt = at
	res.ModifiedBy = actor

	return res, nil
}

func (r *repositoryImpl) lastApprovedQuery(itemID string, now time.Time) squirrel.SelectBuilder {
	return r.selectBookings().
		Where(squirrel.Eq{colItemID: itemID}).
		Where(squirrel.Eq{colStatus: model.StatusApproved}).
		Where(squirrel.LtOrEq{colStartDate: now.UTC()}).
		OrderBy(colStartDate+" DESC", colEndDate+" DESC", colID+" DESC").
		Limit(1)
}

func (r *repositoryImpl) nextApprovedQuery(itemID string, now time.Time) squirrel.SelectBuilder {
	return r.selectBookings().
		Where(squirrel.Eq{colItemID: itemID}).
		Where(squirrel.Eq{colStatus: model.StatusApproved}).
		Where(squirrel.Gt{colStartDate: now.UTC()}).
		OrderBy(colStartDate+" ASC", colID+" ASC").
		Limit(1)
}

func (r *repositoryImpl) hasCompletedQuery(itemID, bookerID string, now time.Time) squirrel.SelectBuilder {
	return r.psql.
		Select("1").
		From(r.Table()).
		Where(squirrel.Eq{colItemID: itemID}).
		Where(squirrel.Eq{colBookerID: bookerID}).
		Where(squirrel.Eq{colStatus: model.StatusApproved}).
		Where(squirrel.Lt{colEndDate: now.UTC()}).
		Limit(1).
		Prefix("SELECT EXISTS (").
		Suffix(")")
}

func (r *repositoryImpl) LastApproved(ctx context.Context, itemID string, now time.Time) (*model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.LastApproved")
	defer scope.End()

	return r.first(ctx, scope, r.lastApprovedQuery(itemID, now))
}

func (r *repositoryImpl) NextApproved(ctx context.Context, itemID string, now time.Time) (*model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.NextApproved")
	defer scope.End()

	return r.first(ctx, scope, r.nextApprovedQuery(itemID, now))
}

// first returns nil without error when the query matches nothing.
func (r *repositoryImpl) first(ctx context.Context, scope otel.Scope, builder squirrel.SelectBuilder) (*model.Booking, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build booking query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var booking model.Booking

	err = r.db.Read.GetContext(ctx, &booking, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *repositoryImpl) HasCompleted(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasCompleted")
	defer scope.End()

	query, args, err := r.hasCompletedQuery(itemID, bookerID, now).ToSql()
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to build completed booking query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool

	if err = r.db.Read.GetContext(ctx, &exist, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check completed booking: %w", err)
	}

	return exist, nil
}
