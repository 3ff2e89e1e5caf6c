package di

import (
	"github.com/jonboulle/clockwork"

	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/internal/infrastructure/database"
	infraRepo "github.com/koseha/ryg-web-sub000/internal/infrastructure/repository"
	leaguecmd "github.com/koseha/ryg-web-sub000/internal/usecase/league/command"
	leagueqry "github.com/koseha/ryg-web-sub000/internal/usecase/league/query"
	"github.com/koseha/ryg-web-sub000/pkg/config"
)

// LeagueUseCases はリーグ関連のUseCaseを保持します
type LeagueUseCases struct {
	// League Commands
	CreateLeague      *leaguecmd.CreateLeagueCommand
	UpdateLeague      *leaguecmd.UpdateLeagueCommand
	DeleteLeague      *leaguecmd.DeleteLeagueCommand
	TransferOwnership *leaguecmd.TransferOwnershipCommand

	// Join Request Commands
	SubmitJoinRequest   *leaguecmd.SubmitJoinRequestCommand
	ResolveJoinRequest  *leaguecmd.ResolveJoinRequestCommand
	WithdrawJoinRequest *leaguecmd.WithdrawJoinRequestCommand

	// Member Commands
	ChangeMemberRole *leaguecmd.ChangeMemberRoleCommand
	RemoveMember     *leaguecmd.RemoveMemberCommand
	LeaveLeague      *leaguecmd.LeaveLeagueCommand

	// Queries
	GetLeague        *leagueqry.GetLeagueQuery
	ListMyLeagues    *leagueqry.ListMyLeaguesQuery
	ListMembers      *leagueqry.ListMembersQuery
	ListJoinRequests *leagueqry.ListJoinRequestsQuery
	GetMyJoinRequest *leagueqry.GetMyJoinRequestQuery
}

// LeagueRepositories はリーグ関連のリポジトリを保持します
type LeagueRepositories struct {
	LeagueRepo      repository.LeagueRepository
	MembershipRepo  repository.MembershipRepository
	JoinRequestRepo repository.JoinRequestRepository
}

// NewLeagueRepositories は新しいLeagueRepositoriesを作成します
func NewLeagueRepositories(txManager *database.TxManager) *LeagueRepositories {
	return &LeagueRepositories{
		LeagueRepo:      infraRepo.NewLeagueRepository(txManager),
		MembershipRepo:  infraRepo.NewMembershipRepository(txManager),
		JoinRequestRepo: infraRepo.NewJoinRequestRepository(txManager),
	}
}

// NewLeagueUseCases は新しいLeagueUseCasesを作成します
func NewLeagueUseCases(
	repos *LeagueRepositories,
	txManager repository.TransactionManager,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
	policy config.LeagueConfig,
) *LeagueUseCases {
	registry := service.NewMembershipRegistry(repos.MembershipRepo)
	submitPolicy := leaguecmd.SubmitPolicy{EnforceAccepting: policy.EnforceAccepting}

	return &LeagueUseCases{
		// League Commands
		CreateLeague:      leaguecmd.NewCreateLeagueCommand(repos.LeagueRepo, registry, txManager, activity, clock),
		UpdateLeague:      leaguecmd.NewUpdateLeagueCommand(repos.LeagueRepo, registry, txManager, activity, clock),
		DeleteLeague:      leaguecmd.NewDeleteLeagueCommand(repos.LeagueRepo, registry, repos.JoinRequestRepo, txManager, activity, clock),
		TransferOwnership: leaguecmd.NewTransferOwnershipCommand(repos.LeagueRepo, registry, txManager, activity, clock),

		// Join Request Commands
		SubmitJoinRequest:   leaguecmd.NewSubmitJoinRequestCommand(repos.LeagueRepo, registry, repos.JoinRequestRepo, activity, clock, submitPolicy),
		ResolveJoinRequest:  leaguecmd.NewResolveJoinRequestCommand(repos.JoinRequestRepo, registry, txManager, activity, clock),
		WithdrawJoinRequest: leaguecmd.NewWithdrawJoinRequestCommand(repos.JoinRequestRepo, activity, clock),

		// Member Commands
		ChangeMemberRole: leaguecmd.NewChangeMemberRoleCommand(repos.LeagueRepo, registry, txManager, activity, clock),
		RemoveMember:     leaguecmd.NewRemoveMemberCommand(repos.LeagueRepo, registry, activity, clock),
		LeaveLeague:      leaguecmd.NewLeaveLeagueCommand(registry, activity, clock),

		// Queries
		GetLeague:        leagueqry.NewGetLeagueQuery(repos.LeagueRepo, registry),
		ListMyLeagues:    leagueqry.NewListMyLeaguesQuery(repos.LeagueRepo),
		ListMembers:      leagueqry.NewListMembersQuery(repos.LeagueRepo, registry),
		ListJoinRequests: leagueqry.NewListJoinRequestsQuery(repos.LeagueRepo, registry, repos.JoinRequestRepo),
		GetMyJoinRequest: leagueqry.NewGetMyJoinRequestQuery(repos.JoinRequestRepo),
	}
}
