package request

// SubmitJoinRequestRequest は参加申請リクエストです
// user_idを省略した場合は認証ユーザー自身の申請になります
type SubmitJoinRequestRequest struct {
	UserID    string   `json:"user_id" validate:"omitempty,uuid"`
	Tier      string   `json:"tier" validate:"required,nonblank,max=30"`
	Positions []string `json:"positions" validate:"required,min=1,max=5,unique,dive,nonblank,max=30"`
	Message   string   `json:"message" validate:"required,nonblank,max=500"`
}

// ResolveJoinRequestRequest は参加申請の承認・却下リクエストです
type ResolveJoinRequestRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}
