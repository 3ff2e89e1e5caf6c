package request

// ChangeMemberRoleRequest はロール変更リクエストです
type ChangeMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=owner admin member"`
}

// ListMembersRequest はメンバー一覧のクエリパラメータです
type ListMembersRequest struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Role     string `query:"role" validate:"omitempty,oneof=owner admin member"`
	Tier     string `query:"tier" validate:"omitempty,max=30"`
	Position string `query:"position" validate:"omitempty,max=30"`
}
