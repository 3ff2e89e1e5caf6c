package request

// CreateLeagueRequest はリーグ作成リクエストです
type CreateLeagueRequest struct {
	Name        string   `json:"name" validate:"required,nonblank,max=100"`
	Description string   `json:"description" validate:"max=1000"`
	Region      string   `json:"region" validate:"required,nonblank,max=50"`
	Type        string   `json:"type" validate:"required,nonblank,max=50"`
	Rules       []string `json:"rules" validate:"max=20,dive,nonblank,max=200"`
}

// UpdateLeagueRequest はリーグ更新リクエストです
// 指定されたフィールドのみ更新します
type UpdateLeagueRequest struct {
	Name        *string   `json:"name" validate:"omitempty,nonblank,max=100"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
	Region      *string   `json:"region" validate:"omitempty,nonblank,max=50"`
	Type        *string   `json:"type" validate:"omitempty,nonblank,max=50"`
	Accepting   *bool     `json:"accepting"`
	Rules       *[]string `json:"rules" validate:"omitempty,max=20,dive,nonblank,max=200"`
}

// TransferOwnershipRequest は所有権譲渡リクエストです
type TransferOwnershipRequest struct {
	SuccessorID string `json:"successor_id" validate:"required,uuid"`
}
