package response

import (
	"rentfleet/internal/usecase/queries"
)

type LoginResponse struct {
	AccessToken string                      `json:"accessToken"`
	User        *queries.AuthorizedUserView `json:"user"`
}
