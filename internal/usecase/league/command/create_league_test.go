package command_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/internal/usecase/league/command"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
	"github.com/koseha/ryg-web-sub000/tests/testutil/mocks"
)

type createLeagueTestDeps struct {
	leagueRepo     *mocks.MockLeagueRepository
	membershipRepo *mocks.MockMembershipRepository
	txManager      *mocks.MockTransactionManager
	activity       *mocks.RecordingActivityRecorder
}

func newCreateLeagueTestDeps(t *testing.T) *createLeagueTestDeps {
	t.Helper()
	return &createLeagueTestDeps{
		leagueRepo:     mocks.NewMockLeagueRepository(t),
		membershipRepo: mocks.NewMockMembershipRepository(t),
		txManager:      mocks.NewMockTransactionManager(t),
		activity:       mocks.NewRecordingActivityRecorder(),
	}
}

func (d *createLeagueTestDeps) newCommand() *command.CreateLeagueCommand {
	return command.NewCreateLeagueCommand(
		d.leagueRepo,
		service.NewMembershipRegistry(d.membershipRepo),
		d.txManager,
		d.activity,
		newTestClock(),
	)
}

func validCreateLeagueInput(ownerID uuid.UUID) command.CreateLeagueInput {
	return command.CreateLeagueInput{
		Name:        "  Busan Night League ",
		Description: "ranked practice",
		Region:      "KR",
		Type:        "5v5",
		Rules:       []string{" no smurfs "},
		OwnerID:     ownerID,
	}
}

func TestCreateLeagueCommand_Execute_ValidInput_CreatesLeagueWithOwner(t *testing.T) {
	ctx := context.Background()
	deps := newCreateLeagueTestDeps(t)
	ownerID := uuid.New()

	deps.leagueRepo.On("Create", ctx, mock.AnythingOfType("*entity.League")).Return(nil)
	deps.membershipRepo.On("Exists", ctx, mock.AnythingOfType("uuid.UUID"), ownerID).Return(false, nil)
	deps.membershipRepo.On("OwnerExists", ctx, mock.AnythingOfType("uuid.UUID")).Return(false, nil)
	deps.membershipRepo.On("Create", ctx, mock.AnythingOfType("*entity.Membership")).Return(nil)

	output, err := deps.newCommand().Execute(ctx, validCreateLeagueInput(ownerID))

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "Busan Night League", output.League.Name.Value())
	assert.True(t, output.League.Accepting)
	assert.Equal(t, []string{"no smurfs"}, output.League.Rules)
	assert.Equal(t, ownerID, output.League.OwnerID)
	assert.Equal(t, testNow, output.League.CreatedAt)
	assert.Equal(t, valueobject.LeagueRoleOwner, output.Membership.Role)
	assert.Equal(t, output.League.ID, output.Membership.LeagueID)
	assert.Equal(t, 1, deps.txManager.Committed)
	assert.Equal(t, []entity.ActivityAction{entity.ActivityLeagueCreated}, deps.activity.Actions())
}

func TestCreateLeagueCommand_Execute_InvalidFields_ValidationError(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *command.CreateLeagueInput)
	}{
		{"empty name", func(in *command.CreateLeagueInput) { in.Name = "   " }},
		{"long name", func(in *command.CreateLeagueInput) { in.Name = strings.Repeat("a", 101) }},
		{"long description", func(in *command.CreateLeagueInput) { in.Description = strings.Repeat("a", 1001) }},
		{"empty region", func(in *command.CreateLeagueInput) { in.Region = "" }},
		{"empty type", func(in *command.CreateLeagueInput) { in.Type = "" }},
		{"empty rule", func(in *command.CreateLeagueInput) { in.Rules = []string{"ok", " "} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newCreateLeagueTestDeps(t)
			input := validCreateLeagueInput(uuid.New())
			tt.modify(&input)

			output, err := deps.newCommand().Execute(context.Background(), input)

			assert.Nil(t, output)
			assertAppErrorCode(t, err, apperror.CodeValidationError)
			assert.Empty(t, deps.activity.Events())
		})
	}
}

func TestCreateLeagueCommand_Execute_MembershipFails_RolledBack(t *testing.T) {
	ctx := context.Background()
	deps := newCreateLeagueTestDeps(t)
	ownerID := uuid.New()
	dbErr := errors.New("connection reset")

	deps.leagueRepo.On("Create", ctx, mock.AnythingOfType("*entity.League")).Return(nil)
	deps.membershipRepo.On("Exists", ctx, mock.AnythingOfType("uuid.UUID"), ownerID).Return(false, dbErr)

	output, err := deps.newCommand().Execute(ctx, validCreateLeagueInput(ownerID))

	require.ErrorIs(t, err, dbErr)
	assert.Nil(t, output)
	assert.Equal(t, 1, deps.txManager.RolledBack)
	assert.Empty(t, deps.activity.Events())
}
