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

const leagueColumns = "l.id, l.name, l.description, l.region, l.type, l.accepting, l.rules, l.owner_id, l.created_at, l.updated_at"

// LeagueRepository はリーグリポジトリの実装です
type LeagueRepository struct {
	*database.BaseRepository
}

// NewLeagueRepository は新しいLeagueRepositoryを作成します
func NewLeagueRepository(txManager *database.TxManager) *LeagueRepository {
	return &LeagueRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create はリーグを作成します
func (r *LeagueRepository) Create(ctx context.Context, league *entity.League) error {
	_, err := r.Querier(ctx).Exec(ctx, `
		INSERT INTO leagues (id, name, description, region, type, accepting, rules, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		league.ID, league.Name.Value(), league.Description, league.Region, league.Type,
		league.Accepting, league.Rules, league.OwnerID, league.CreatedAt, league.UpdatedAt,
	)
	return r.mapError(err)
}

// FindByID はIDでリーグを検索します
func (r *LeagueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.League, error) {
	row := r.Querier(ctx).QueryRow(ctx, "SELECT "+leagueColumns+" FROM leagues l WHERE l.id = $1", id)
	league, err := scanLeague(row)
	if err != nil {
		return nil, r.mapError(err)
	}
	return league, nil
}

// FindByIDForUpdate はリーグ行をロックして取得します。トランザクション内で呼び出すこと
func (r *LeagueRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.League, error) {
	row := r.Querier(ctx).QueryRow(ctx, "SELECT "+leagueColumns+" FROM leagues l WHERE l.id = $1 FOR UPDATE", id)
	league, err := scanLeague(row)
	if err != nil {
		return nil, r.mapError(err)
	}
	return league, nil
}

// Update はリーグ設定を更新します
// owner_idはUpdateOwnerでのみ変更する
func (r *LeagueRepository) Update(ctx context.Context, league *entity.League) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE leagues
		SET name = $2, description = $3, region = $4, type = $5, accepting = $6,
		    rules = $7, updated_at = $8
		WHERE id = $1`,
		league.ID, league.Name.Value(), league.Description, league.Region, league.Type,
		league.Accepting, league.Rules, league.UpdatedAt,
	)
	if err != nil {
		return r.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("league")
	}
	return nil
}

// UpdateOwner はオーナー参照のみを更新します
func (r *LeagueRepository) UpdateOwner(ctx context.Context, leagueID, ownerID uuid.UUID, updatedAt time.Time) error {
	tag, err := r.Querier(ctx).Exec(ctx,
		"UPDATE leagues SET owner_id = $2, updated_at = $3 WHERE id = $1",
		leagueID, ownerID, updatedAt,
	)
	if err != nil {
		return r.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("league")
	}
	return nil
}

// Delete はリーグを削除します
func (r *LeagueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Querier(ctx).Exec(ctx, "DELETE FROM leagues WHERE id = $1", id)
	if err != nil {
		return r.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("league")
	}
	return nil
}

// FindByMemberID はユーザーが所属するリーグをロール付きで加入順に返します
func (r *LeagueRepository) FindByMemberID(ctx context.Context, userID uuid.UUID) ([]*entity.LeagueWithRole, error) {
	rows, err := r.Querier(ctx).Query(ctx, `
		SELECT `+leagueColumns+`, m.role, m.joined_at
		FROM leagues l
		JOIN league_memberships m ON m.league_id = l.id
		WHERE m.user_id = $1
		ORDER BY m.joined_at, l.id`, userID)
	if err != nil {
		return nil, r.mapError(err)
	}
	defer rows.Close()

	result := make([]*entity.LeagueWithRole, 0)
	for rows.Next() {
		var (
			item     entity.LeagueWithRole
			role     string
			joinedAt time.Time
		)
		league, err := scanLeague(rows, &role, &joinedAt)
		if err != nil {
			return nil, r.mapError(err)
		}
		item.League = league
		item.Role = valueobject.LeagueRole(role)
		item.JoinedAt = joinedAt
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(err)
	}
	return result, nil
}

// FindIDsWithoutSingleOwner はownerのメンバーシップがちょうど1件ではないリーグのIDを返します
func (r *LeagueRepository) FindIDsWithoutSingleOwner(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.Querier(ctx).Query(ctx, `
		SELECT l.id
		FROM leagues l
		LEFT JOIN league_memberships m ON m.league_id = l.id AND m.role = 'owner'
		GROUP BY l.id
		HAVING COUNT(m.id) <> 1
		ORDER BY l.id`)
	if err != nil {
		return nil, r.mapError(err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, r.mapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(err)
	}
	return ids, nil
}

func (r *LeagueRepository) mapError(err error) error {
	return toAppError(r.HandleError(err), "league", "league already exists")
}

// scanLeague はleagueColumnsの順に読み取り、extraに追加の列を読み取ります
func scanLeague(row pgx.Row, extra ...any) (*entity.League, error) {
	var (
		id                             uuid.UUID
		name, description, region, typ string
		accepting                      bool
		rules                          []string
		ownerID                        uuid.UUID
		createdAt, updatedAt           time.Time
	)
	dest := append([]any{&id, &name, &description, &region, &typ, &accepting, &rules, &ownerID, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return entity.ReconstructLeague(
		id,
		valueobject.ReconstructLeagueName(name),
		description,
		region,
		typ,
		accepting,
		rules,
		ownerID,
		createdAt,
		updatedAt,
	), nil
}
