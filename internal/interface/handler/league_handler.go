package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/koseha/ryg-web-sub000/internal/interface/dto/request"
	"github.com/koseha/ryg-web-sub000/internal/interface/dto/response"
	"github.com/koseha/ryg-web-sub000/internal/interface/presenter"
	leaguecmd "github.com/koseha/ryg-web-sub000/internal/usecase/league/command"
	leagueqry "github.com/koseha/ryg-web-sub000/internal/usecase/league/query"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

// LeagueHandler はリーグ関連のHTTPハンドラーです
type LeagueHandler struct {
	// Commands
	createLeagueCmd      *leaguecmd.CreateLeagueCommand
	updateLeagueCmd      *leaguecmd.UpdateLeagueCommand
	deleteLeagueCmd      *leaguecmd.DeleteLeagueCommand
	transferOwnershipCmd *leaguecmd.TransferOwnershipCommand

	// Queries
	getLeagueQuery     *leagueqry.GetLeagueQuery
	listMyLeaguesQuery *leagueqry.ListMyLeaguesQuery
}

// NewLeagueHandler は新しいLeagueHandlerを作成します
func NewLeagueHandler(
	createLeagueCmd *leaguecmd.CreateLeagueCommand,
	updateLeagueCmd *leaguecmd.UpdateLeagueCommand,
	deleteLeagueCmd *leaguecmd.DeleteLeagueCommand,
	transferOwnershipCmd *leaguecmd.TransferOwnershipCommand,
	getLeagueQuery *leagueqry.GetLeagueQuery,
	listMyLeaguesQuery *leagueqry.ListMyLeaguesQuery,
) *LeagueHandler {
	return &LeagueHandler{
		createLeagueCmd:      createLeagueCmd,
		updateLeagueCmd:      updateLeagueCmd,
		deleteLeagueCmd:      deleteLeagueCmd,
		transferOwnershipCmd: transferOwnershipCmd,
		getLeagueQuery:       getLeagueQuery,
		listMyLeaguesQuery:   listMyLeaguesQuery,
	}
}

// CreateLeague はリーグを作成します
// @Summary リーグ作成
// @Description 新しいリーグを作成し、作成者をオーナーとして登録します
// @Tags Leagues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body request.CreateLeagueRequest true "リーグ情報"
// @Success 201 {object} presenter.Response{data=response.LeagueWithRoleResponse}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /leagues [post]
func (h *LeagueHandler) CreateLeague(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req request.CreateLeagueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.createLeagueCmd.Execute(c.Request().Context(), leaguecmd.CreateLeagueInput{
		Name:        req.Name,
		Description: req.Description,
		Region:      req.Region,
		Type:        req.Type,
		Rules:       req.Rules,
		OwnerID:     userID,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToLeagueWithRoleResponse(output.League, output.Membership.Role))
}

// ListMyLeagues はユーザーが所属するリーグ一覧を取得します
// @Summary 所属リーグ一覧取得
// @Tags Leagues
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response{data=[]response.LeagueWithRoleResponse}
// @Failure 401 {object} middleware.ErrorResponse
// @Router /leagues/mine [get]
func (h *LeagueHandler) ListMyLeagues(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	output, err := h.listMyLeaguesQuery.Execute(c.Request().Context(), leagueqry.ListMyLeaguesInput{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToMyLeagueListResponse(output.Leagues))
}

// GetLeague はリーグ詳細を取得します
// @Summary リーグ詳細取得
// @Tags Leagues
// @Produce json
// @Security BearerAuth
// @Param id path string true "リーグID"
// @Success 200 {object} presenter.Response{data=response.LeagueWithRoleResponse}
// @Failure 404 {object} middleware.ErrorResponse
// @Router /leagues/{id} [get]
func (h *LeagueHandler) GetLeague(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	output, err := h.getLeagueQuery.Execute(c.Request().Context(), leagueqry.GetLeagueInput{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToLeagueWithRoleResponse(output.League, output.MyRole))
}

// UpdateLeague はリーグ設定を更新します
// @Summary リーグ設定更新
// @Description オーナーのみ実行できます。指定したフィールドのみ更新します
// @Tags Leagues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "リーグID"
// @Param body body request.UpdateLeagueRequest true "更新内容"
// @Success 200 {object} presenter.Response{data=response.LeagueResponse}
// @Failure 403 {object} middleware.ErrorResponse
// @Router /leagues/{id} [patch]
func (h *LeagueHandler) UpdateLeague(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req request.UpdateLeagueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.updateLeagueCmd.Execute(c.Request().Context(), leaguecmd.UpdateLeagueInput{
		LeagueID:    leagueID,
		ActorID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Region:      req.Region,
		Type:        req.Type,
		Accepting:   req.Accepting,
		Rules:       req.Rules,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToLeagueResponse(output.League))
}

// DeleteLeague はリーグを削除します
// @Summary リーグ削除
// @Description オーナーのみ実行できます。参加申請とメンバーシップも削除されます
// @Tags Leagues
// @Security BearerAuth
// @Param id path string true "リーグID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Router /leagues/{id} [delete]
func (h *LeagueHandler) DeleteLeague(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deleteLeagueCmd.Execute(c.Request().Context(), leaguecmd.DeleteLeagueInput{
		LeagueID: leagueID,
		ActorID:  userID,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// TransferOwnership はオーナー権限を管理者に譲渡します
// @Summary オーナー権限譲渡
// @Description 後継者は事前に管理者である必要があります。譲渡後、元のオーナーは管理者になります
// @Tags Leagues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "リーグID"
// @Param body body request.TransferOwnershipRequest true "後継者"
// @Success 200 {object} presenter.Response{data=response.TransferOwnershipResponse}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /leagues/{id}/transfer-ownership [post]
func (h *LeagueHandler) TransferOwnership(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req request.TransferOwnershipRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	successorID, err := uuid.Parse(req.SuccessorID)
	if err != nil {
		return apperror.NewFieldValidationError("successor_id", "must be a valid UUID")
	}

	output, err := h.transferOwnershipCmd.Execute(c.Request().Context(), leaguecmd.TransferOwnershipInput{
		LeagueID:       leagueID,
		CurrentOwnerID: userID,
		SuccessorID:    successorID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.TransferOwnershipResponse{
		League:        response.ToLeagueResponse(output.League),
		NewOwner:      response.ToMembershipResponse(output.NewOwnerMembership),
		PreviousOwner: response.ToMembershipResponse(output.OldOwnerMembership),
	})
}
