package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/koseha/ryg-web-sub000/internal/interface/dto/request"
	"github.com/koseha/ryg-web-sub000/internal/interface/dto/response"
	"github.com/koseha/ryg-web-sub000/internal/interface/presenter"
	leaguecmd "github.com/koseha/ryg-web-sub000/internal/usecase/league/command"
	leagueqry "github.com/koseha/ryg-web-sub000/internal/usecase/league/query"
)

// MemberHandler はリーグメンバー関連のHTTPハンドラーです
type MemberHandler struct {
	changeRoleCmd   *leaguecmd.ChangeMemberRoleCommand
	removeMemberCmd *leaguecmd.RemoveMemberCommand
	leaveLeagueCmd  *leaguecmd.LeaveLeagueCommand

	listMembersQuery *leagueqry.ListMembersQuery
}

// NewMemberHandler は新しいMemberHandlerを作成します
func NewMemberHandler(
	changeRoleCmd *leaguecmd.ChangeMemberRoleCommand,
	removeMemberCmd *leaguecmd.RemoveMemberCommand,
	leaveLeagueCmd *leaguecmd.LeaveLeagueCommand,
	listMembersQuery *leagueqry.ListMembersQuery,
) *MemberHandler {
	return &MemberHandler{
		changeRoleCmd:    changeRoleCmd,
		removeMemberCmd:  removeMemberCmd,
		leaveLeagueCmd:   leaveLeagueCmd,
		listMembersQuery: listMembersQuery,
	}
}

// ListMembers はメンバー一覧を取得します
// @Summary メンバー一覧
// @Description 参加順に返します。statsは絞り込み前のリーグ全体の集計です
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path string true "リーグID"
// @Param page query int false "ページ番号" default(1)
// @Param limit query int false "1ページあたりの件数" default(20)
// @Param role query string false "ロール" Enums(owner, admin, member)
// @Param tier query string false "ティア"
// @Param position query string false "ポジション"
// @Success 200 {object} presenter.Response{data=[]response.MemberResponse}
// @Failure 403 {object} middleware.ErrorResponse
// @Router /leagues/{id}/members [get]
func (h *MemberHandler) ListMembers(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req request.ListMembersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.listMembersQuery.Execute(c.Request().Context(), leagueqry.ListMembersInput{
		LeagueID: leagueID,
		UserID:   userID,
		Page:     req.Page,
		Limit:    req.Limit,
		Role:     req.Role,
		Tier:     req.Tier,
		Position: req.Position,
	})
	if err != nil {
		return err
	}

	return presenter.List(c,
		response.ToMemberListResponse(output.Members),
		presenter.NewPagination(output.Page, output.Limit, output.Total),
		response.ToMemberStatsResponse(output.Stats),
	)
}

// ChangeRole はメンバーのロールを変更します
// @Summary ロール変更
// @Description オーナーのみ実行できます。オーナーロールの付与・剥奪はできません
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "リーグID"
// @Param userId path string true "ユーザーID"
// @Param body body request.ChangeMemberRoleRequest true "新しいロール"
// @Success 200 {object} presenter.Response{data=response.ChangeMemberRoleResponse}
// @Failure 403 {object} middleware.ErrorResponse
// @Router /leagues/{id}/members/{userId}/role [patch]
func (h *MemberHandler) ChangeRole(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	targetID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return err
	}

	var req request.ChangeMemberRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.changeRoleCmd.Execute(c.Request().Context(), leaguecmd.ChangeMemberRoleInput{
		LeagueID:     leagueID,
		ActorID:      actorID,
		TargetUserID: targetID,
		NewRole:      req.Role,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ChangeMemberRoleResponse{
		Membership: response.ToMembershipResponse(output.Membership),
		Changed:    output.Changed,
	})
}

// RemoveMember はメンバーをリーグから除名します
// @Router /leagues/{id}/members/{userId} [delete]
func (h *MemberHandler) RemoveMember(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	targetID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return err
	}

	if err := h.removeMemberCmd.Execute(c.Request().Context(), leaguecmd.RemoveMemberInput{
		LeagueID:     leagueID,
		ActorID:      actorID,
		TargetUserID: targetID,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// Leave はリーグから脱退します。オーナーは先に権限を譲渡する必要があります
// @Router /leagues/{id}/leave [post]
func (h *MemberHandler) Leave(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.leaveLeagueCmd.Execute(c.Request().Context(), leaguecmd.LeaveLeagueInput{
		LeagueID: leagueID,
		UserID:   userID,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}
