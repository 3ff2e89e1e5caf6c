package authz

import (
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

// Operation はリーグに対する操作を表す型
type Operation string

const (
	OperationCreateLeague       Operation = "create_league"
	OperationUpdateLeague       Operation = "update_league"
	OperationDeleteLeague       Operation = "delete_league"
	OperationViewMembers        Operation = "view_members"
	OperationViewJoinRequests   Operation = "view_join_requests"
	OperationResolveJoinRequest Operation = "resolve_join_request"
	OperationChangeMemberRole   Operation = "change_member_role"
	OperationRemoveMember       Operation = "remove_member"
	OperationTransferOwnership  Operation = "transfer_ownership"
	OperationLeaveLeague        Operation = "leave_league"
)

// NoRole はメンバーシップを持たないユーザー、または対象が無い操作を表します
const NoRole valueobject.LeagueRole = ""

// CanPerform はactorRoleのユーザーがtargetRoleの対象に対してopを実行できるかを判定します
// 副作用のない純粋関数で、状態の読み込みは呼び出し側が行う
func CanPerform(actorRole valueobject.LeagueRole, op Operation, targetRole valueobject.LeagueRole) bool {
	switch op {
	case OperationCreateLeague:
		return true
	case OperationUpdateLeague, OperationDeleteLeague:
		return actorRole.IsOwner()
	case OperationViewMembers:
		return actorRole.IsValid()
	case OperationViewJoinRequests, OperationResolveJoinRequest:
		return actorRole.IsStaff()
	case OperationChangeMemberRole:
		return actorRole.IsOwner() && targetRole.IsValid() && !targetRole.IsOwner()
	case OperationRemoveMember:
		return actorRole.IsStaff() && targetRole.IsValid() && !targetRole.IsOwner()
	case OperationTransferOwnership:
		return actorRole.IsOwner() && targetRole.IsAdmin()
	case OperationLeaveLeague:
		return actorRole.IsValid() && !actorRole.IsOwner()
	default:
		return false
	}
}

// CanAssignRole はロール変更の結果がOwnerを生まないかを含めて判定します
func CanAssignRole(actorRole, currentRole, newRole valueobject.LeagueRole) bool {
	if !newRole.IsValid() || newRole.IsOwner() {
		return false
	}
	return CanPerform(actorRole, OperationChangeMemberRole, currentRole)
}

// Authorize はCanPerformが拒否した場合にForbiddenエラーを返します
func Authorize(actorRole valueobject.LeagueRole, op Operation, targetRole valueobject.LeagueRole) error {
	if CanPerform(actorRole, op, targetRole) {
		return nil
	}
	return apperror.NewForbiddenError(denialMessage(actorRole, op, targetRole))
}

func denialMessage(actorRole valueobject.LeagueRole, op Operation, targetRole valueobject.LeagueRole) string {
	if !actorRole.IsValid() && op != OperationCreateLeague {
		return "not a member of this league"
	}
	switch op {
	case OperationUpdateLeague:
		return "only the owner can update league settings"
	case OperationDeleteLeague:
		return "only the owner can delete the league"
	case OperationViewJoinRequests:
		return "only the owner or an admin can view join requests"
	case OperationResolveJoinRequest:
		return "only the owner or an admin can resolve join requests"
	case OperationChangeMemberRole:
		if targetRole.IsOwner() {
			return "cannot change the owner's role; transfer ownership instead"
		}
		return "only the owner can change member roles"
	case OperationRemoveMember:
		if targetRole.IsOwner() {
			return "cannot remove the owner"
		}
		return "only the owner or an admin can remove members"
	case OperationTransferOwnership:
		return "only the owner can transfer ownership"
	case OperationLeaveLeague:
		return "owner cannot leave the league; transfer ownership first"
	default:
		return "operation not permitted"
	}
}
