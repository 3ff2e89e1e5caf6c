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

// JoinRequestHandler は参加申請関連のHTTPハンドラーです
type JoinRequestHandler struct {
	submitCmd   *leaguecmd.SubmitJoinRequestCommand
	resolveCmd  *leaguecmd.ResolveJoinRequestCommand
	withdrawCmd *leaguecmd.WithdrawJoinRequestCommand

	listQuery  *leagueqry.ListJoinRequestsQuery
	getMyQuery *leagueqry.GetMyJoinRequestQuery
}

// NewJoinRequestHandler は新しいJoinRequestHandlerを作成します
func NewJoinRequestHandler(
	submitCmd *leaguecmd.SubmitJoinRequestCommand,
	resolveCmd *leaguecmd.ResolveJoinRequestCommand,
	withdrawCmd *leaguecmd.WithdrawJoinRequestCommand,
	listQuery *leagueqry.ListJoinRequestsQuery,
	getMyQuery *leagueqry.GetMyJoinRequestQuery,
) *JoinRequestHandler {
	return &JoinRequestHandler{
		submitCmd:   submitCmd,
		resolveCmd:  resolveCmd,
		withdrawCmd: withdrawCmd,
		listQuery:   listQuery,
		getMyQuery:  getMyQuery,
	}
}

// Submit はリーグへの参加を申請します
// @Summary 参加申請
// @Description user_idを省略した場合は認証ユーザー自身の申請になります
// @Tags JoinRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "リーグID"
// @Param body body request.SubmitJoinRequestRequest true "申請内容"
// @Success 201 {object} presenter.Response{data=response.SubmitJoinRequestResponse}
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /leagues/{id}/join-requests [post]
func (h *JoinRequestHandler) Submit(c echo.Context) error {
	callerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req request.SubmitJoinRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	applicantID := callerID
	if req.UserID != "" {
		applicantID, err = uuid.Parse(req.UserID)
		if err != nil {
			return apperror.NewFieldValidationError("user_id", "must be a valid UUID")
		}
	}

	output, err := h.submitCmd.Execute(c.Request().Context(), leaguecmd.SubmitJoinRequestInput{
		LeagueID:    leagueID,
		UserID:      applicantID,
		RequestedBy: callerID,
		Tier:        req.Tier,
		Positions:   req.Positions,
		Message:     req.Message,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.SubmitJoinRequestResponse{
		Request:         response.ToJoinRequestResponse(output.Request),
		LeagueAccepting: output.LeagueAccepting,
	})
}

// ListPending は保留中の参加申請一覧を取得します
// @Summary 参加申請一覧
// @Description オーナーと管理者のみ実行できます。新しい順に返します
// @Tags JoinRequests
// @Produce json
// @Security BearerAuth
// @Param id path string true "リーグID"
// @Success 200 {object} presenter.Response{data=[]response.PendingJoinRequestResponse}
// @Failure 403 {object} middleware.ErrorResponse
// @Router /leagues/{id}/join-requests [get]
func (h *JoinRequestHandler) ListPending(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	output, err := h.listQuery.Execute(c.Request().Context(), leagueqry.ListJoinRequestsInput{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToPendingJoinRequestListResponse(output.Requests))
}

// GetMine は自分の保留中の参加申請を取得します
// @Router /leagues/{id}/join-requests/mine [get]
func (h *JoinRequestHandler) GetMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	joinRequest, err := h.getMyQuery.Execute(c.Request().Context(), leagueqry.GetMyJoinRequestInput{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToJoinRequestResponse(joinRequest))
}

// WithdrawMine はリーグ指定で自分の参加申請を取り下げます
// @Router /leagues/{id}/join-requests/mine [delete]
func (h *JoinRequestHandler) WithdrawMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	leagueID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.withdrawCmd.Execute(c.Request().Context(), leaguecmd.WithdrawJoinRequestInput{
		LeagueID: leagueID,
		UserID:   userID,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// WithdrawByID は申請ID指定で参加申請を取り下げます
// @Router /join-requests/{id} [delete]
func (h *JoinRequestHandler) WithdrawByID(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	requestID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.withdrawCmd.Execute(c.Request().Context(), leaguecmd.WithdrawJoinRequestInput{
		RequestID: requestID,
		UserID:    userID,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// Resolve は参加申請を承認または却下します
// @Summary 参加申請の承認・却下
// @Description 承認時は同一トランザクションでメンバーシップを作成します
// @Tags JoinRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "申請ID"
// @Param body body request.ResolveJoinRequestRequest true "判定"
// @Success 200 {object} presenter.Response{data=response.ResolveJoinRequestResponse}
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /join-requests/{id}/resolve [post]
func (h *JoinRequestHandler) Resolve(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	requestID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req request.ResolveJoinRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.resolveCmd.Execute(c.Request().Context(), leaguecmd.ResolveJoinRequestInput{
		RequestID: requestID,
		ActorID:   userID,
		Decision:  req.Decision,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToResolveJoinRequestResponse(output.Request, output.Membership))
}
