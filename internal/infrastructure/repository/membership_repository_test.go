package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/internal/infrastructure/database"
	"github.com/koseha/ryg-web-sub000/internal/infrastructure/repository"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

func TestMembershipRepository_Create_SecondOwner_InvariantViolation(t *testing.T) {
	txManager, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(txManager)
	m := entity.NewMembership(uuid.New(), uuid.New(), valueobject.LeagueRoleOwner, testNow)

	mock.ExpectExec(`INSERT INTO league_memberships`).
		WithArgs(m.ID, m.LeagueID, m.UserID, "owner", testNow).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: database.ConstraintSingleOwner})

	err := repo.Create(context.Background(), m)

	assert.Equal(t, apperror.CodeInvariantViolation, apperror.CodeOf(err))
}

func TestMembershipRepository_Create_Duplicate_Conflict(t *testing.T) {
	txManager, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(txManager)
	m := entity.NewMembership(uuid.New(), uuid.New(), valueobject.LeagueRoleMember, testNow)

	mock.ExpectExec(`INSERT INTO league_memberships`).
		WithArgs(anyArgs(5)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: database.ConstraintMembershipUnique})

	err := repo.Create(context.Background(), m)

	assert.True(t, apperror.IsConflict(err))
}

func TestMembershipRepository_FindByLeagueAndUser(t *testing.T) {
	txManager, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(txManager)
	leagueID, userID, id := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT id, role, joined_at FROM league_memberships`).
		WithArgs(leagueID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "role", "joined_at"}).AddRow(id, "admin", testNow))

	m, err := repo.FindByLeagueAndUser(context.Background(), leagueID, userID)

	require.NoError(t, err)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, valueobject.LeagueRoleAdmin, m.Role)
}

func TestMembershipRepository_FindByLeagueAndUser_NotFound(t *testing.T) {
	txManager, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(txManager)

	mock.ExpectQuery(`FROM league_memberships`).WithArgs(anyArgs(2)...).WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByLeagueAndUser(context.Background(), uuid.New(), uuid.New())

	assert.True(t, apperror.IsNotFound(err))
}

func TestMembershipRepository_FindByLeagueAndUserForUpdate_LocksRow(t *testing.T) {
	txManager, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(txManager)
	leagueID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(`WHERE league_id = \$1 AND user_id = \$2 FOR UPDATE`).
		WithArgs(leagueID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "role", "joined_at"}).AddRow(uuid.New(), "owner", testNow))

	m, err := repo.FindByLeagueAndUserForUpdate(context.Background(), leagueID, userID)

	require.NoError(t, err)
	assert.Equal(t, valueobject.LeagueRoleOwner, m.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_ListWithProfiles(t *testing.T) {
	txManager, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(txManager)
	leagueID := uuid.New()
	withProfile, withoutProfile := uuid.New(), uuid.New()
	adminRole := valueobject.LeagueRoleAdmin
	role := "admin"

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(leagueID, &role, "gold", "mid").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	cols := []string{"id", "user_id", "role", "joined_at", "p_user_id", "display_name", "tier", "positions", "avatar_url", "updated_at"}
	name, tier := "Faker", "gold"
	mock.ExpectQuery(`ORDER BY m.joined_at, m.id`).
		WithArgs(leagueID, &role, "gold", "mid", 2, 10).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(uuid.New(), withProfile, "admin", testNow, &withProfile, &name, &tier, []string{"mid"}, nil, &testNow).
			AddRow(uuid.New(), withoutProfile, "admin", testNow, nil, nil, nil, nil, nil, nil))

	members, total, err := repo.ListWithProfiles(context.Background(), leagueID,
		entity.MemberFilter{Role: &adminRole, Tier: "gold", Position: "mid"}, 2, 10)

	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, members, 2)
	require.NotNil(t, members[0].Profile)
	assert.Equal(t, "Faker", members[0].Profile.DisplayName)
	assert.Equal(t, []string{"mid"}, members[0].Profile.Positions)
	assert.Nil(t, members[1].Profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Stats(t *testing.T) {
	txManager, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(txManager)
	leagueID := uuid.New()

	mock.ExpectQuery(`FILTER \(WHERE role = 'admin'\)`).
		WithArgs(leagueID).
		WillReturnRows(pgxmock.NewRows([]string{"total", "admins"}).AddRow(9, 2))

	stats, err := repo.Stats(context.Background(), leagueID)

	require.NoError(t, err)
	assert.Equal(t, entity.MemberStats{TotalMembers: 9, AdminCount: 2}, stats)
}

func TestMembershipRepository_OwnerSwap_InTransaction(t *testing.T) {
	txManager, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(txManager)
	leagueID, ownerID, adminID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`SET role = 'admin'`).
		WithArgs(leagueID, ownerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`SET role = 'owner'`).
		WithArgs(leagueID, adminID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
		if err := repo.DemoteOwner(ctx, leagueID, ownerID); err != nil {
			return err
		}
		return repo.PromoteAdminToOwner(ctx, leagueID, adminID)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_DemoteOwner_AlreadyDemoted_ConflictAndRollback(t *testing.T) {
	txManager, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(txManager)
	leagueID, ownerID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`SET role = 'admin'`).
		WithArgs(leagueID, ownerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.DemoteOwner(ctx, leagueID, ownerID)
	})

	assert.True(t, apperror.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_PromoteAdminToOwner_NotAdmin_Conflict(t *testing.T) {
	txManager, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(txManager)

	mock.ExpectExec(`SET role = 'owner'`).
		WithArgs(anyArgs(2)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.PromoteAdminToOwner(context.Background(), uuid.New(), uuid.New())

	assert.True(t, apperror.IsConflict(err))
}
