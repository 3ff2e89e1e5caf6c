package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/internal/infrastructure/database"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

const joinRequestColumns = "r.id, r.league_id, r.user_id, r.message, r.tier, r.positions, r.status, r.submitted_at, r.resolved_at, r.resolved_by"

// JoinRequestRepository は参加申請リポジトリの実装です
type JoinRequestRepository struct {
	*database.BaseRepository
}

// NewJoinRequestRepository は新しいJoinRequestRepositoryを作成します
func NewJoinRequestRepository(txManager *database.TxManager) *JoinRequestRepository {
	return &JoinRequestRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create は参加申請を作成します
// 保留中の申請が既にある場合は部分一意インデックスによりConflictを返します
func (r *JoinRequestRepository) Create(ctx context.Context, request *entity.JoinRequest) error {
	_, err := r.Querier(ctx).Exec(ctx, `
		INSERT INTO join_requests (id, league_id, user_id, message, tier, positions, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		request.ID, request.LeagueID, request.UserID, request.Message, request.Tier,
		request.Positions, request.Status.String(), request.SubmittedAt,
	)
	return r.mapError(err)
}

// FindByID はIDで参加申請を検索します
func (r *JoinRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	row := r.Querier(ctx).QueryRow(ctx, "SELECT "+joinRequestColumns+" FROM join_requests r WHERE r.id = $1", id)
	request, err := scanJoinRequest(row)
	if err != nil {
		return nil, r.mapError(err)
	}
	return request, nil
}

// FindPendingByLeagueAndUser は保留中の参加申請を検索します
func (r *JoinRequestRepository) FindPendingByLeagueAndUser(ctx context.Context, leagueID, userID uuid.UUID) (*entity.JoinRequest, error) {
	row := r.Querier(ctx).QueryRow(ctx, "SELECT "+joinRequestColumns+`
		FROM join_requests r
		WHERE r.league_id = $1 AND r.user_id = $2 AND r.status = 'pending'`,
		leagueID, userID,
	)
	request, err := scanJoinRequest(row)
	if err != nil {
		return nil, r.mapError(err)
	}
	return request, nil
}

// ListPendingWithProfiles は保留中の申請を新しい順にプロフィール付きで返します
func (r *JoinRequestRepository) ListPendingWithProfiles(ctx context.Context, leagueID uuid.UUID) ([]*entity.JoinRequestWithProfile, error) {
	rows, err := r.Querier(ctx).Query(ctx, "SELECT "+joinRequestColumns+`,
		       p.display_name, p.tier, p.positions, p.avatar_url
		FROM join_requests r
		LEFT JOIN player_profiles p ON p.user_id = r.user_id
		WHERE r.league_id = $1 AND r.status = 'pending'
		ORDER BY r.submitted_at DESC, r.id`,
		leagueID,
	)
	if err != nil {
		return nil, r.mapError(err)
	}
	defer rows.Close()

	result := make([]*entity.JoinRequestWithProfile, 0)
	for rows.Next() {
		var (
			displayName, tier, avatarURL *string
			positions                    []string
		)
		request, err := scanJoinRequest(rows, &displayName, &tier, &positions, &avatarURL)
		if err != nil {
			return nil, r.mapError(err)
		}

		item := &entity.JoinRequestWithProfile{Request: request}
		if displayName != nil {
			item.Profile = &entity.PlayerProfile{
				UserID:      request.UserID,
				DisplayName: *displayName,
				Tier:        deref(tier),
				Positions:   positions,
				AvatarURL:   deref(avatarURL),
			}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(err)
	}
	return result, nil
}

// ResolvePending は保留中の申請を確定状態に更新します
// status='pending'を条件とするため、同時に解決された場合はConflictを返します
func (r *JoinRequestRepository) ResolvePending(ctx context.Context, request *entity.JoinRequest) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE join_requests
		SET status = $2, resolved_at = $3, resolved_by = $4
		WHERE id = $1 AND status = 'pending'`,
		request.ID, request.Status.String(), request.ResolvedAt, request.ResolvedBy,
	)
	if err != nil {
		return r.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflictError("join request is no longer pending")
	}
	return nil
}

// DeletePending は保留中の申請を削除します
func (r *JoinRequestRepository) DeletePending(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Querier(ctx).Exec(ctx, "DELETE FROM join_requests WHERE id = $1 AND status = 'pending'", id)
	if err != nil {
		return r.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflictError("join request is no longer pending")
	}
	return nil
}

// DeleteByLeagueID はリーグの全申請を削除します
func (r *JoinRequestRepository) DeleteByLeagueID(ctx context.Context, leagueID uuid.UUID) error {
	_, err := r.Querier(ctx).Exec(ctx, "DELETE FROM join_requests WHERE league_id = $1", leagueID)
	return r.mapError(err)
}

func (r *JoinRequestRepository) mapError(err error) error {
	return toAppError(r.HandleError(err), "join request", "a pending join request already exists for this league")
}

func scanJoinRequest(row pgx.Row, extra ...any) (*entity.JoinRequest, error) {
	var (
		id, leagueID, userID uuid.UUID
		message, tier        string
		positions            []string
		status               string
		submittedAt          time.Time
		resolvedAt           *time.Time
		resolvedBy           *uuid.UUID
	)
	dest := append([]any{&id, &leagueID, &userID, &message, &tier, &positions, &status, &submittedAt, &resolvedAt, &resolvedBy}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return entity.ReconstructJoinRequest(
		id, leagueID, userID, message, tier, positions,
		valueobject.JoinRequestStatus(status), submittedAt, resolvedAt, resolvedBy,
	), nil
}
